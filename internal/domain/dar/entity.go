package dar

import (
	"time"

	"github.com/cmlabs-hris/hris-dar-go/internal/pkg/timeline"
)

type ReportStatus string

const (
	ReportStatusDraft     ReportStatus = "draft"
	ReportStatusSubmitted ReportStatus = "submitted"
	ReportStatusApproved  ReportStatus = "approved"
	ReportStatusRejected  ReportStatus = "rejected"
)

var ReportStatusValues = []string{
	string(ReportStatusDraft),
	string(ReportStatusSubmitted),
	string(ReportStatusApproved),
	string(ReportStatusRejected),
}

// Editable reports whether tasks may still be changed by the employee.
func (s ReportStatus) Editable() bool {
	return s == ReportStatusDraft || s == ReportStatusRejected
}

type TaskType string

const (
	TaskTypeMeeting     TaskType = "meeting"
	TaskTypeDevelopment TaskType = "development"
	TaskTypeReview      TaskType = "review"
	TaskTypeSupport     TaskType = "support"
	TaskTypeOther       TaskType = "other"
)

var TaskTypeValues = []string{
	string(TaskTypeMeeting),
	string(TaskTypeDevelopment),
	string(TaskTypeReview),
	string(TaskTypeSupport),
	string(TaskTypeOther),
}

// Report is one employee's daily activity report.
type Report struct {
	ID          string
	CompanyID   string
	EmployeeID  string
	ReportDate  time.Time
	Status      ReportStatus
	ReviewerID  *string
	ReviewNote  *string
	SubmittedAt *time.Time
	ReviewedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Tasks []Task
}

type Task struct {
	ID          string
	ReportID    string
	StartTime   string // HH:MM
	EndTime     string // HH:MM
	Title       string
	Type        TaskType
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DatedTask is a task joined with its report's date.
type DatedTask struct {
	Date time.Time
	Task
}

func (t Task) TimelineTask() timeline.Task {
	return timeline.Task{
		ID:          t.ID,
		StartTime:   t.StartTime,
		EndTime:     t.EndTime,
		Title:       t.Title,
		Type:        string(t.Type),
		Description: t.Description,
	}
}

// SameContent reports whether two tasks differ only in bookkeeping fields.
func (t Task) SameContent(o Task) bool {
	return t.StartTime == o.StartTime &&
		t.EndTime == o.EndTime &&
		t.Title == o.Title &&
		t.Type == o.Type &&
		t.Description == o.Description
}
