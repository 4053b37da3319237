package dar

import (
	"context"
)

type DARService interface {
	// Tasks
	CreateTask(ctx context.Context, req CreateTaskRequest) (TaskResponse, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (TaskResponse, error)
	DeleteTask(ctx context.Context, id string) error
	SaveDay(ctx context.Context, req SaveDayRequest) (SaveDayResponse, error)

	// Reports
	GetReport(ctx context.Context, id string) (ReportResponse, error)
	ListReports(ctx context.Context, filter ReportFilter) (ListReportResponse, error)
	SubmitReport(ctx context.Context, id string) (ReportResponse, error)
	ReviewReport(ctx context.Context, req ReviewReportRequest) (ReportResponse, error)

	// Timeline
	GetDayTimeline(ctx context.Context, req DayTimelineRequest) (DayTimelineResponse, error)
	GetRangeTimeline(ctx context.Context, req RangeTimelineRequest) (RangeTimelineResponse, error)
	ExportTimeline(ctx context.Context, req RangeTimelineRequest) (ExportFile, error)
}
