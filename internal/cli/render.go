package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cmlabs-hris/hris-dar-go/internal/pkg/timeline"
)

// slotMinutes is the width of one chart column.
const slotMinutes = 15

const emptySlot = '·'

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	laneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	axisStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	typeColors = map[string]lipgloss.Color{
		"meeting":     lipgloss.Color("12"),
		"development": lipgloss.Color("10"),
		"review":      lipgloss.Color("13"),
		"support":     lipgloss.Color("11"),
	}
)

func typeStyle(taskType string) lipgloss.Style {
	if c, ok := typeColors[taskType]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
}

// typeGlyph marks a task's cells with the first letter of its type.
func typeGlyph(taskType string) rune {
	if taskType == "" {
		return '#'
	}
	return []rune(strings.ToUpper(taskType))[0]
}

// span returns the columns a placement covers relative to windowStart.
// Tasks shorter than a slot, including reversed ones, still get one column.
func span(p timeline.Placement, windowStart int) (int, int) {
	from := (p.Start() - windowStart) / slotMinutes
	to := (p.End() - windowStart + slotMinutes - 1) / slotMinutes
	if to <= from {
		to = from + 1
	}
	return from, to
}

func window(placements []timeline.Placement) (int, int) {
	start, end := 24*60, 0
	for _, p := range placements {
		start = min(start, p.Start(), p.End())
		end = max(end, p.Start(), p.End())
	}
	start -= start % slotMinutes
	if end%slotMinutes != 0 {
		end += slotMinutes - end%slotMinutes
	}
	if end <= start {
		end = start + slotMinutes
	}
	return start, end
}

// renderDay draws one row per lane with one column per quarter hour,
// followed by a legend of the tasks in packing order.
func renderDay(d packedDay) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s  %d lane(s)", d.Date, d.TotalLanes)))
	b.WriteString("\n")

	if len(d.Placements) == 0 {
		b.WriteString("  no tasks")
		return b.String()
	}

	windowStart, windowEnd := window(d.Placements)
	cols := (windowEnd - windowStart) / slotMinutes
	prefix := fmt.Sprintf("lane %-3d│", 0)
	pad := strings.Repeat(" ", lipgloss.Width(prefix))

	axis := []rune(strings.Repeat(" ", cols+2))
	for col := 0; col < cols; col++ {
		minute := windowStart + col*slotMinutes
		if minute%60 == 0 {
			copy(axis[col:], []rune(fmt.Sprintf("%02d", minute/60)))
		}
	}
	b.WriteString(pad + axisStyle.Render(strings.TrimRight(string(axis), " ")) + "\n")

	grid := make([][]int, d.TotalLanes)
	for lane := range grid {
		grid[lane] = make([]int, cols)
		for col := range grid[lane] {
			grid[lane][col] = -1
		}
	}
	for i, p := range d.Placements {
		from, to := span(p, windowStart)
		for col := from; col < to && col < cols; col++ {
			grid[p.LaneIndex][col] = i
		}
	}

	for lane, row := range grid {
		b.WriteString(laneStyle.Render(fmt.Sprintf("lane %-3d│", lane+1)))
		for col := 0; col < cols; {
			owner := row[col]
			run := col
			for run < cols && row[run] == owner {
				run++
			}
			if owner < 0 {
				b.WriteString(strings.Repeat(string(emptySlot), run-col))
			} else {
				t := d.Placements[owner]
				b.WriteString(typeStyle(t.Type).Render(strings.Repeat(string(typeGlyph(t.Type)), run-col)))
			}
			col = run
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for i, p := range d.Placements {
		line := fmt.Sprintf("  lane %d  %s-%s  %s", p.LaneIndex+1, p.StartTime, p.EndTime, p.Title)
		if p.Type != "" {
			line += " (" + p.Type + ")"
		}
		if p.Duration() < 0 {
			line += " [ends before it starts]"
		}
		b.WriteString(line)
		if i < len(d.Placements)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
