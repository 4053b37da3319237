package dar

import (
	"context"
	"time"
)

type ReportRepository interface {
	Create(ctx context.Context, report Report) (Report, error)
	GetByID(ctx context.Context, id, companyID string) (Report, error)
	GetByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (Report, error)
	ListByEmployeeBetween(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]Report, error)
	List(ctx context.Context, companyID string, filter ReportFilter) ([]Report, int64, error)
	UpdateStatus(ctx context.Context, report Report) error
	Touch(ctx context.Context, id string) error
}

type TaskRepository interface {
	Create(ctx context.Context, task Task) (Task, error)
	GetByID(ctx context.Context, id string) (Task, error)
	GetByReportID(ctx context.Context, reportID string) ([]Task, error)
	ListByEmployeeBetween(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]DatedTask, error)
	Update(ctx context.Context, task Task) (Task, error)
	Delete(ctx context.Context, id string) error
}
