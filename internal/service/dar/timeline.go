package dar

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-dar-go/internal/domain/dar"
	"github.com/cmlabs-hris/hris-dar-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-dar-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dar-go/internal/pkg/export"
	"github.com/cmlabs-hris/hris-dar-go/internal/pkg/timeline"
)

func dateKey(t time.Time) string { return t.Format(time.DateOnly) }

// packDay lays out one day's tasks. Days are never packed together.
func packDay(date string, tasks []dar.Task, report *dar.Report, holidayName string) dar.DayTimelineResponse {
	input := make([]timeline.Task, len(tasks))
	for i, t := range tasks {
		input[i] = t.TimelineTask()
	}
	placements := timeline.Pack(input)

	day := dar.DayTimelineResponse{
		Date:       date,
		TotalLanes: timeline.LaneCount(placements),
		Tasks:      placements,
	}
	if holidayName != "" {
		name := holidayName
		day.IsHoliday = true
		day.HolidayName = &name
	}
	if report != nil {
		reportID, status := report.ID, string(report.Status)
		day.ReportID = &reportID
		day.ReportStatus = &status
	}
	return day
}

func holidayNames(holidays []holiday.Holiday) map[string]string {
	names := make(map[string]string, len(holidays))
	for _, h := range holidays {
		names[dateKey(h.Date)] = h.Name
	}
	return names
}

// GetDayTimeline implements dar.DARService.
func (s *DARServiceImpl) GetDayTimeline(ctx context.Context, req dar.DayTimelineRequest) (dar.DayTimelineResponse, error) {
	if err := req.Validate(); err != nil {
		return dar.DayTimelineResponse{}, err
	}
	id, err := user.IdentityFromContext(ctx)
	if err != nil {
		return dar.DayTimelineResponse{}, err
	}
	employeeID, err := targetEmployee(id, req.EmployeeID)
	if err != nil {
		return dar.DayTimelineResponse{}, err
	}
	date, _ := time.Parse(time.DateOnly, req.Date)

	rng, err := s.loadRange(ctx, id.CompanyID, employeeID, date, date)
	if err != nil {
		return dar.DayTimelineResponse{}, err
	}
	return rng.Days[0], nil
}

// GetRangeTimeline implements dar.DARService.
func (s *DARServiceImpl) GetRangeTimeline(ctx context.Context, req dar.RangeTimelineRequest) (dar.RangeTimelineResponse, error) {
	if err := req.Validate(); err != nil {
		return dar.RangeTimelineResponse{}, err
	}
	id, err := user.IdentityFromContext(ctx)
	if err != nil {
		return dar.RangeTimelineResponse{}, err
	}
	employeeID, err := targetEmployee(id, req.EmployeeID)
	if err != nil {
		return dar.RangeTimelineResponse{}, err
	}
	start, end := req.Range()

	return s.loadRange(ctx, id.CompanyID, employeeID, start, end)
}

// loadRange builds one packed entry per calendar date in [start, end].
func (s *DARServiceImpl) loadRange(ctx context.Context, companyID, employeeID string, start, end time.Time) (dar.RangeTimelineResponse, error) {
	reports, err := s.reports.ListByEmployeeBetween(ctx, companyID, employeeID, start, end)
	if err != nil {
		return dar.RangeTimelineResponse{}, err
	}
	tasks, err := s.tasks.ListByEmployeeBetween(ctx, companyID, employeeID, start, end)
	if err != nil {
		return dar.RangeTimelineResponse{}, err
	}
	holidays, err := s.holidays.ListBetween(ctx, companyID, start, end)
	if err != nil {
		return dar.RangeTimelineResponse{}, err
	}

	reportByDate := make(map[string]*dar.Report, len(reports))
	for i := range reports {
		reportByDate[dateKey(reports[i].ReportDate)] = &reports[i]
	}
	tasksByDate := make(map[string][]dar.Task)
	for _, t := range tasks {
		key := dateKey(t.Date)
		tasksByDate[key] = append(tasksByDate[key], t.Task)
	}
	names := holidayNames(holidays)

	response := dar.RangeTimelineResponse{
		EmployeeID: employeeID,
		StartDate:  dateKey(start),
		EndDate:    dateKey(end),
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := dateKey(d)
		day := packDay(key, tasksByDate[key], reportByDate[key], names[key])
		response.MaxLanes = max(response.MaxLanes, day.TotalLanes)
		response.Days = append(response.Days, day)
	}
	return response, nil
}

// ExportTimeline implements dar.DARService.
func (s *DARServiceImpl) ExportTimeline(ctx context.Context, req dar.RangeTimelineRequest) (dar.ExportFile, error) {
	id, err := user.IdentityFromContext(ctx)
	if err != nil {
		return dar.ExportFile{}, err
	}
	if !id.Can(user.PermissionReportExport) {
		return dar.ExportFile{}, user.ErrInsufficientPermissions
	}

	rng, err := s.GetRangeTimeline(ctx, req)
	if err != nil {
		return dar.ExportFile{}, err
	}

	wb := export.TimelineWorkbook{
		Title:    "Daily Activity Timeline",
		Subtitle: fmt.Sprintf("Employee %s, %s to %s, %d lanes at most", rng.EmployeeID, rng.StartDate, rng.EndDate, rng.MaxLanes),
		Days:     make([]export.Day, 0, len(rng.Days)),
	}
	for _, day := range rng.Days {
		exported := export.Day{Date: day.Date, Placements: day.Tasks}
		if day.HolidayName != nil {
			exported.Holiday = *day.HolidayName
		}
		wb.Days = append(wb.Days, exported)
	}

	content, err := export.WriteTimeline(wb)
	if err != nil {
		return dar.ExportFile{}, fmt.Errorf("failed to render timeline export: %w", err)
	}
	return dar.ExportFile{
		Filename:    fmt.Sprintf("dar-timeline_%s_%s.xlsx", rng.StartDate, rng.EndDate),
		ContentType: export.XLSXContentType,
		Content:     content,
	}, nil
}
