package export

import (
	"bytes"
	"fmt"

	"github.com/cmlabs-hris/hris-dar-go/internal/pkg/timeline"
	"github.com/xuri/excelize/v2"
)

const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	timelineSheet   = "Timeline"
	headerRow       = 4
)

var timelineHeaders = []string{
	"Date", "Holiday", "Lane", "Total Lanes", "Start", "End", "Minutes", "Title", "Type", "Description",
}

// Day is one packed calendar date.
type Day struct {
	Date       string
	Holiday    string
	Placements []timeline.Placement
}

// TimelineWorkbook describes a multi-day lane export.
type TimelineWorkbook struct {
	Title    string
	Subtitle string
	Days     []Day
}

// WriteTimeline renders the workbook as xlsx bytes: one sheet, one row per
// placement, and a single row for days without tasks.
func WriteTimeline(wb TimelineWorkbook) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(timelineSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	holidayStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FCE4D6"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create holiday style: %w", err)
	}

	f.SetCellValue(timelineSheet, "A1", wb.Title)
	f.MergeCell(timelineSheet, "A1", "J1")
	f.SetCellStyle(timelineSheet, "A1", "J1", titleStyle)
	f.SetRowHeight(timelineSheet, 1, 22)
	f.SetCellValue(timelineSheet, "A2", wb.Subtitle)

	for i, h := range timelineHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(timelineSheet, cell, h)
		f.SetCellStyle(timelineSheet, cell, cell, headerStyle)
	}

	row := headerRow + 1
	for _, day := range wb.Days {
		rows := dayRows(day)
		for _, values := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetSheetRow(timelineSheet, cell, &values); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row, err)
			}
			if day.Holiday != "" {
				last, _ := excelize.CoordinatesToCellName(len(timelineHeaders), row)
				f.SetCellStyle(timelineSheet, cell, last, holidayStyle)
			}
			row++
		}
	}

	f.SetColWidth(timelineSheet, "A", "A", 12)
	f.SetColWidth(timelineSheet, "B", "B", 20)
	f.SetColWidth(timelineSheet, "C", "G", 10)
	f.SetColWidth(timelineSheet, "H", "H", 32)
	f.SetColWidth(timelineSheet, "I", "I", 14)
	f.SetColWidth(timelineSheet, "J", "J", 48)
	f.SetPanes(timelineSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: fmt.Sprintf("A%d", headerRow+1),
		ActivePane:  "bottomLeft",
	})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}

func dayRows(day Day) [][]interface{} {
	if len(day.Placements) == 0 {
		return [][]interface{}{{day.Date, day.Holiday, "", 0}}
	}

	rows := make([][]interface{}, 0, len(day.Placements))
	for _, p := range day.Placements {
		rows = append(rows, []interface{}{
			day.Date,
			day.Holiday,
			p.LaneIndex + 1,
			p.TotalLanes,
			p.StartTime,
			p.EndTime,
			p.Duration(),
			p.Title,
			p.Type,
			p.Description,
		})
	}
	return rows
}
