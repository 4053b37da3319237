package dar

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-dar-go/internal/pkg/timeline"
	"github.com/cmlabs-hris/hris-dar-go/internal/pkg/validator"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
	MaxTasksPerDay       = 100
	MaxTimelineDays      = 31
)

// TaskInput is the editable part of a task.
type TaskInput struct {
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// validate appends field errors under prefix (e.g. "tasks[2].").
func (t *TaskInput) validate(errs *validator.ValidationErrors, prefix string) {
	if validator.IsEmpty(t.StartTime) {
		errs.Add(prefix+"start_time", "start_time is required")
	} else if _, ok := validator.IsValidTime(t.StartTime); !ok {
		errs.Add(prefix+"start_time", "start_time must be a valid time in HH:MM format")
	}
	if validator.IsEmpty(t.EndTime) {
		errs.Add(prefix+"end_time", "end_time is required")
	} else if _, ok := validator.IsValidTime(t.EndTime); !ok {
		errs.Add(prefix+"end_time", "end_time must be a valid time in HH:MM format")
	}

	if validator.IsEmpty(t.Title) {
		errs.Add(prefix+"title", "title is required")
	} else if !validator.MaxLength(t.Title, MaxTitleLength) {
		errs.Add(prefix+"title", fmt.Sprintf("title must not exceed %d characters", MaxTitleLength))
	}

	if t.Type == "" {
		t.Type = string(TaskTypeOther)
	}
	if !validator.IsInSlice(t.Type, TaskTypeValues) {
		errs.Add(prefix+"type", "type must be one of: "+strings.Join(TaskTypeValues, ", "))
	}

	if !validator.MaxLength(t.Description, MaxDescriptionLength) {
		errs.Add(prefix+"description", fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength))
	}
}

func (t TaskInput) toTask() Task {
	return Task{
		StartTime:   t.StartTime,
		EndTime:     t.EndTime,
		Title:       strings.TrimSpace(t.Title),
		Type:        TaskType(t.Type),
		Description: strings.TrimSpace(t.Description),
	}
}

type CreateTaskRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
	TaskInput
}

func (r *CreateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	validateDate(&errs, "date", r.Date)
	r.TaskInput.validate(&errs, "")

	return errs.OrNil()
}

// Task converts the request into an unsaved task.
func (r CreateTaskRequest) Task() Task { return r.TaskInput.toTask() }

type UpdateTaskRequest struct {
	ID string `json:"-"`
	TaskInput
}

func (r *UpdateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	r.TaskInput.validate(&errs, "")

	return errs.OrNil()
}

func (r UpdateTaskRequest) Task() Task {
	t := r.TaskInput.toTask()
	t.ID = r.ID
	return t
}

// DayTaskInput is one entry of a whole-day save. An empty ID creates a task.
type DayTaskInput struct {
	ID string `json:"id,omitempty"`
	TaskInput
}

func (d DayTaskInput) Task() Task {
	t := d.TaskInput.toTask()
	t.ID = d.ID
	return t
}

type SaveDayRequest struct {
	Date  string         `json:"date"`
	Tasks []DayTaskInput `json:"tasks"`
}

func (r *SaveDayRequest) Validate() error {
	var errs validator.ValidationErrors

	validateDate(&errs, "date", r.Date)
	if len(r.Tasks) > MaxTasksPerDay {
		errs.Add("tasks", fmt.Sprintf("a day may hold at most %d tasks", MaxTasksPerDay))
	}

	seen := make(map[string]bool, len(r.Tasks))
	for i := range r.Tasks {
		prefix := fmt.Sprintf("tasks[%d].", i)
		t := &r.Tasks[i]
		if t.ID != "" {
			if !validator.IsValidUUID(t.ID) {
				errs.Add(prefix+"id", "id must be a valid UUID")
			} else if seen[t.ID] {
				errs.Add(prefix+"id", "id appears more than once")
			}
			seen[t.ID] = true
		}
		t.TaskInput.validate(&errs, prefix)
	}

	return errs.OrNil()
}

type ReviewDecision string

const (
	ReviewApprove ReviewDecision = "approve"
	ReviewReject  ReviewDecision = "reject"
)

type ReviewReportRequest struct {
	ID       string `json:"-"`
	Decision string `json:"decision"`
	Note     string `json:"note"`
}

func (r *ReviewReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	switch ReviewDecision(r.Decision) {
	case ReviewApprove:
	case ReviewReject:
		if validator.IsEmpty(r.Note) {
			errs.Add("note", "note is required when rejecting a report")
		}
	default:
		errs.Add("decision", "decision must be one of: approve, reject")
	}
	if !validator.MaxLength(r.Note, MaxDescriptionLength) {
		errs.Add("note", fmt.Sprintf("note must not exceed %d characters", MaxDescriptionLength))
	}

	return errs.OrNil()
}

type ReportFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *ReportFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs.Add("limit", "limit must not exceed 100")
	}

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if f.Status != nil && !validator.IsInSlice(*f.Status, ReportStatusValues) {
		errs.Add("status", "status must be one of: "+strings.Join(ReportStatusValues, ", "))
	}

	var start, end time.Time
	if f.StartDate != nil {
		start = validateDate(&errs, "start_date", *f.StartDate)
	}
	if f.EndDate != nil {
		end = validateDate(&errs, "end_date", *f.EndDate)
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		errs.Add("end_date", "end_date must not be before start_date")
	}

	return errs.OrNil()
}

// Offset returns the row offset for the current page.
func (f ReportFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type DayTimelineRequest struct {
	EmployeeID string `json:"employee_id,omitempty"` // empty means the caller
	Date       string `json:"date"`
}

func (r *DayTimelineRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	validateDate(&errs, "date", r.Date)

	return errs.OrNil()
}

type RangeTimelineRequest struct {
	EmployeeID string `json:"employee_id,omitempty"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (r *RangeTimelineRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	start := validateDate(&errs, "start_date", r.StartDate)
	end := validateDate(&errs, "end_date", r.EndDate)
	if !start.IsZero() && !end.IsZero() {
		switch {
		case end.Before(start):
			errs.Add("end_date", "end_date must not be before start_date")
		case end.Sub(start) >= MaxTimelineDays*24*time.Hour:
			errs.Add("end_date", fmt.Sprintf("range must not exceed %d days", MaxTimelineDays))
		}
	}

	return errs.OrNil()
}

// Range returns the parsed bounds. Call after Validate.
func (r RangeTimelineRequest) Range() (time.Time, time.Time) {
	start, _ := time.Parse(time.DateOnly, r.StartDate)
	end, _ := time.Parse(time.DateOnly, r.EndDate)
	return start, end
}

func validateDate(errs *validator.ValidationErrors, field, value string) time.Time {
	if validator.IsEmpty(value) {
		errs.Add(field, field+" is required")
		return time.Time{}
	}
	d, ok := validator.IsValidDate(value)
	if !ok {
		errs.Add(field, field+" must be a valid date in YYYY-MM-DD format")
		return time.Time{}
	}
	return d
}

// ==================== RESPONSES ====================

type TaskResponse struct {
	ID          string `json:"id"`
	ReportID    string `json:"report_id"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type ReportResponse struct {
	ID          string         `json:"id"`
	EmployeeID  string         `json:"employee_id"`
	ReportDate  string         `json:"report_date"`
	Status      string         `json:"status"`
	ReviewerID  *string        `json:"reviewer_id,omitempty"`
	ReviewNote  *string        `json:"review_note,omitempty"`
	SubmittedAt *string        `json:"submitted_at,omitempty"`
	ReviewedAt  *string        `json:"reviewed_at,omitempty"`
	Tasks       []TaskResponse `json:"tasks,omitempty"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}

type ListReportResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Reports    []ReportResponse `json:"reports"`
}

type SaveDayResponse struct {
	Created int            `json:"created"`
	Updated int            `json:"updated"`
	Deleted int            `json:"deleted"`
	Report  ReportResponse `json:"report"`
}

type DayTimelineResponse struct {
	Date         string               `json:"date"`
	IsHoliday    bool                 `json:"is_holiday"`
	HolidayName  *string              `json:"holiday_name,omitempty"`
	ReportID     *string              `json:"report_id,omitempty"`
	ReportStatus *string              `json:"report_status,omitempty"`
	TotalLanes   int                  `json:"total_lanes"`
	Tasks        []timeline.Placement `json:"tasks"`
}

type RangeTimelineResponse struct {
	EmployeeID string                `json:"employee_id"`
	StartDate  string                `json:"start_date"`
	EndDate    string                `json:"end_date"`
	MaxLanes   int                   `json:"max_lanes"`
	Days       []DayTimelineResponse `json:"days"`
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
