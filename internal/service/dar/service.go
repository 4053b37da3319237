package dar

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/hris-dar-go/internal/domain/dar"
	"github.com/cmlabs-hris/hris-dar-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-dar-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dar-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-dar-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type DARServiceImpl struct {
	db       database.Transactor
	reports  dar.ReportRepository
	tasks    dar.TaskRepository
	holidays holiday.HolidayRepository
	now      func() time.Time
}

func NewDARService(db database.Transactor, reportRepository dar.ReportRepository, taskRepository dar.TaskRepository, holidayRepository holiday.HolidayRepository) dar.DARService {
	return &DARServiceImpl{
		db:       db,
		reports:  reportRepository,
		tasks:    taskRepository,
		holidays: holidayRepository,
		now:      time.Now,
	}
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}

// editorIdentity is the caller acting on their own report.
func editorIdentity(ctx context.Context) (user.Identity, error) {
	id, err := user.IdentityFromContext(ctx)
	if err != nil {
		return user.Identity{}, err
	}
	if !id.Can(user.PermissionReportEditOwn) {
		return user.Identity{}, user.ErrInsufficientPermissions
	}
	if id.EmployeeID == "" {
		return user.Identity{}, dar.ErrEmployeeRequired
	}
	return id, nil
}

// targetEmployee resolves whose reports are read. An empty employeeID means
// the caller; anyone else requires report.view_all.
func targetEmployee(id user.Identity, employeeID string) (string, error) {
	if employeeID == "" || employeeID == id.EmployeeID {
		if id.EmployeeID == "" {
			return "", dar.ErrEmployeeRequired
		}
		if !id.Can(user.PermissionReportViewOwn) {
			return "", user.ErrInsufficientPermissions
		}
		return id.EmployeeID, nil
	}
	if !id.Can(user.PermissionReportViewAll) {
		return "", dar.ErrReportAccessDenied
	}
	return employeeID, nil
}

// ownReport loads a report for editing by its employee. Must run inside a
// transaction when followed by writes.
func (s *DARServiceImpl) ownReport(ctx context.Context, id user.Identity, reportID string) (dar.Report, error) {
	report, err := s.reports.GetByID(ctx, reportID, id.CompanyID)
	if err != nil {
		return dar.Report{}, err
	}
	if report.EmployeeID != id.EmployeeID {
		return dar.Report{}, dar.ErrReportAccessDenied
	}
	return report, nil
}

// reportForDate returns the caller's report for date, creating a draft on
// first use.
func (s *DARServiceImpl) reportForDate(ctx context.Context, id user.Identity, date time.Time) (dar.Report, error) {
	report, err := s.reports.GetByEmployeeAndDate(ctx, id.CompanyID, id.EmployeeID, date)
	if err == nil {
		return report, nil
	}
	if !errors.Is(err, dar.ErrReportNotFound) {
		return dar.Report{}, err
	}

	reportID, err := newID()
	if err != nil {
		return dar.Report{}, err
	}
	return s.reports.Create(ctx, dar.Report{
		ID:         reportID,
		CompanyID:  id.CompanyID,
		EmployeeID: id.EmployeeID,
		ReportDate: date,
		Status:     dar.ReportStatusDraft,
	})
}

// editableTask loads a task together with its report and checks the caller
// may change it.
func (s *DARServiceImpl) editableTask(ctx context.Context, id user.Identity, taskID string) (dar.Task, dar.Report, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return dar.Task{}, dar.Report{}, err
	}
	report, err := s.ownReport(ctx, id, task.ReportID)
	if err != nil {
		if errors.Is(err, dar.ErrReportNotFound) {
			// A task of another company is reported as missing.
			return dar.Task{}, dar.Report{}, dar.ErrTaskNotFound
		}
		return dar.Task{}, dar.Report{}, err
	}
	if !report.Status.Editable() {
		return dar.Task{}, dar.Report{}, dar.ErrReportNotEditable
	}
	return task, report, nil
}

// CreateTask implements dar.DARService.
func (s *DARServiceImpl) CreateTask(ctx context.Context, req dar.CreateTaskRequest) (dar.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return dar.TaskResponse{}, err
	}
	id, err := editorIdentity(ctx)
	if err != nil {
		return dar.TaskResponse{}, err
	}
	date, _ := time.Parse(time.DateOnly, req.Date)

	var created dar.Task
	err = s.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		report, err := s.reportForDate(txCtx, id, date)
		if err != nil {
			return err
		}
		if !report.Status.Editable() {
			return dar.ErrReportNotEditable
		}

		existing, err := s.tasks.GetByReportID(txCtx, report.ID)
		if err != nil {
			return err
		}
		if len(existing) >= dar.MaxTasksPerDay {
			var errs validator.ValidationErrors
			errs.Add("tasks", fmt.Sprintf("a day may hold at most %d tasks", dar.MaxTasksPerDay))
			return errs
		}

		task := req.Task()
		task.ReportID = report.ID
		if task.ID, err = newID(); err != nil {
			return err
		}
		if created, err = s.tasks.Create(txCtx, task); err != nil {
			return err
		}
		return s.reports.Touch(txCtx, report.ID)
	})
	if err != nil {
		return dar.TaskResponse{}, err
	}

	return toTaskResponse(created), nil
}

// UpdateTask implements dar.DARService.
func (s *DARServiceImpl) UpdateTask(ctx context.Context, req dar.UpdateTaskRequest) (dar.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return dar.TaskResponse{}, err
	}
	id, err := editorIdentity(ctx)
	if err != nil {
		return dar.TaskResponse{}, err
	}

	var updated dar.Task
	err = s.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, report, err := s.editableTask(txCtx, id, req.ID)
		if err != nil {
			return err
		}

		task := req.Task()
		task.ReportID = current.ReportID
		if current.SameContent(task) {
			updated = current
			return nil
		}
		if updated, err = s.tasks.Update(txCtx, task); err != nil {
			return err
		}
		return s.reports.Touch(txCtx, report.ID)
	})
	if err != nil {
		return dar.TaskResponse{}, err
	}

	return toTaskResponse(updated), nil
}

// DeleteTask implements dar.DARService.
func (s *DARServiceImpl) DeleteTask(ctx context.Context, taskID string) error {
	if !validator.IsValidUUID(taskID) {
		var errs validator.ValidationErrors
		errs.Add("id", "id must be a valid UUID")
		return errs
	}
	id, err := editorIdentity(ctx)
	if err != nil {
		return err
	}

	return s.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		_, report, err := s.editableTask(txCtx, id, taskID)
		if err != nil {
			return err
		}
		if err := s.tasks.Delete(txCtx, taskID); err != nil {
			return err
		}
		return s.reports.Touch(txCtx, report.ID)
	})
}

// SaveDay implements dar.DARService.
func (s *DARServiceImpl) SaveDay(ctx context.Context, req dar.SaveDayRequest) (dar.SaveDayResponse, error) {
	if err := req.Validate(); err != nil {
		return dar.SaveDayResponse{}, err
	}
	id, err := editorIdentity(ctx)
	if err != nil {
		return dar.SaveDayResponse{}, err
	}
	date, _ := time.Parse(time.DateOnly, req.Date)

	incoming := make([]dar.Task, len(req.Tasks))
	for i, t := range req.Tasks {
		incoming[i] = t.Task()
	}

	var response dar.SaveDayResponse
	err = s.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		report, err := s.reportForDate(txCtx, id, date)
		if err != nil {
			return err
		}
		if !report.Status.Editable() {
			return dar.ErrReportNotEditable
		}

		stored, err := s.tasks.GetByReportID(txCtx, report.ID)
		if err != nil {
			return err
		}
		plan, err := planDay(stored, incoming)
		if err != nil {
			return err
		}

		for _, taskID := range plan.delete {
			if err := s.tasks.Delete(txCtx, taskID); err != nil {
				return err
			}
		}
		for _, t := range plan.update {
			if _, err := s.tasks.Update(txCtx, t); err != nil {
				return err
			}
		}
		for _, t := range plan.create {
			t.ReportID = report.ID
			if t.ID, err = newID(); err != nil {
				return err
			}
			if _, err := s.tasks.Create(txCtx, t); err != nil {
				return err
			}
		}
		if !plan.empty() {
			if err := s.reports.Touch(txCtx, report.ID); err != nil {
				return err
			}
		}

		if report.Tasks, err = s.tasks.GetByReportID(txCtx, report.ID); err != nil {
			return err
		}
		response = dar.SaveDayResponse{
			Created: len(plan.create),
			Updated: len(plan.update),
			Deleted: len(plan.delete),
			Report:  toReportResponse(report),
		}
		return nil
	})
	if err != nil {
		return dar.SaveDayResponse{}, err
	}

	return response, nil
}

// GetReport implements dar.DARService.
func (s *DARServiceImpl) GetReport(ctx context.Context, reportID string) (dar.ReportResponse, error) {
	id, err := user.IdentityFromContext(ctx)
	if err != nil {
		return dar.ReportResponse{}, err
	}

	report, err := s.reports.GetByID(ctx, reportID, id.CompanyID)
	if err != nil {
		return dar.ReportResponse{}, err
	}
	if _, err := targetEmployee(id, report.EmployeeID); err != nil {
		return dar.ReportResponse{}, err
	}

	if report.Tasks, err = s.tasks.GetByReportID(ctx, report.ID); err != nil {
		return dar.ReportResponse{}, err
	}
	return toReportResponse(report), nil
}

// ListReports implements dar.DARService. Callers without report.view_all only
// ever see their own reports.
func (s *DARServiceImpl) ListReports(ctx context.Context, filter dar.ReportFilter) (dar.ListReportResponse, error) {
	if err := filter.Validate(); err != nil {
		return dar.ListReportResponse{}, err
	}
	id, err := user.IdentityFromContext(ctx)
	if err != nil {
		return dar.ListReportResponse{}, err
	}

	if !id.Can(user.PermissionReportViewAll) {
		employeeID := ""
		if filter.EmployeeID != nil {
			employeeID = *filter.EmployeeID
		}
		own, err := targetEmployee(id, employeeID)
		if err != nil {
			return dar.ListReportResponse{}, err
		}
		filter.EmployeeID = &own
	}

	reports, total, err := s.reports.List(ctx, id.CompanyID, filter)
	if err != nil {
		return dar.ListReportResponse{}, err
	}

	responses := make([]dar.ReportResponse, 0, len(reports))
	for _, r := range reports {
		responses = append(responses, toReportResponse(r))
	}
	return dar.ListReportResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Reports:    responses,
	}, nil
}

// SubmitReport implements dar.DARService.
func (s *DARServiceImpl) SubmitReport(ctx context.Context, reportID string) (dar.ReportResponse, error) {
	id, err := editorIdentity(ctx)
	if err != nil {
		return dar.ReportResponse{}, err
	}

	var report dar.Report
	err = s.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		if report, err = s.ownReport(txCtx, id, reportID); err != nil {
			return err
		}
		if !report.Status.Editable() {
			return dar.ErrReportNotEditable
		}
		if report.Tasks, err = s.tasks.GetByReportID(txCtx, report.ID); err != nil {
			return err
		}
		if len(report.Tasks) == 0 {
			return dar.ErrReportEmpty
		}

		now := s.now()
		report.Status = dar.ReportStatusSubmitted
		report.SubmittedAt = &now
		report.ReviewerID, report.ReviewNote, report.ReviewedAt = nil, nil, nil
		return s.reports.UpdateStatus(txCtx, report)
	})
	if err != nil {
		return dar.ReportResponse{}, err
	}

	return toReportResponse(report), nil
}

// ReviewReport implements dar.DARService.
func (s *DARServiceImpl) ReviewReport(ctx context.Context, req dar.ReviewReportRequest) (dar.ReportResponse, error) {
	if err := req.Validate(); err != nil {
		return dar.ReportResponse{}, err
	}
	id, err := user.IdentityFromContext(ctx)
	if err != nil {
		return dar.ReportResponse{}, err
	}
	if !id.Can(user.PermissionReportReview) {
		return dar.ReportResponse{}, user.ErrManagerAccessRequired
	}

	var report dar.Report
	err = s.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		if report, err = s.reports.GetByID(txCtx, req.ID, id.CompanyID); err != nil {
			return err
		}
		if id.EmployeeID != "" && report.EmployeeID == id.EmployeeID {
			return dar.ErrSelfReviewForbidden
		}
		if report.Status != dar.ReportStatusSubmitted {
			return dar.ErrReportNotSubmitted
		}

		now := s.now()
		report.Status = dar.ReportStatusApproved
		if dar.ReviewDecision(req.Decision) == dar.ReviewReject {
			report.Status = dar.ReportStatusRejected
		}
		reviewer := id.UserID
		report.ReviewerID = &reviewer
		report.ReviewedAt = &now
		report.ReviewNote = nil
		if req.Note != "" {
			note := req.Note
			report.ReviewNote = &note
		}
		if err := s.reports.UpdateStatus(txCtx, report); err != nil {
			return err
		}
		report.Tasks, err = s.tasks.GetByReportID(txCtx, report.ID)
		return err
	})
	if err != nil {
		return dar.ReportResponse{}, err
	}

	return toReportResponse(report), nil
}

const timestampLayout = "2006-01-02 15:04:05"

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(timestampLayout)
	return &s
}

func toTaskResponse(t dar.Task) dar.TaskResponse {
	return dar.TaskResponse{
		ID:          t.ID,
		ReportID:    t.ReportID,
		StartTime:   t.StartTime,
		EndTime:     t.EndTime,
		Title:       t.Title,
		Type:        string(t.Type),
		Description: t.Description,
		CreatedAt:   t.CreatedAt.Format(timestampLayout),
		UpdatedAt:   t.UpdatedAt.Format(timestampLayout),
	}
}

func toReportResponse(r dar.Report) dar.ReportResponse {
	var tasks []dar.TaskResponse
	for _, t := range r.Tasks {
		tasks = append(tasks, toTaskResponse(t))
	}
	return dar.ReportResponse{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		ReportDate:  r.ReportDate.Format("2006-01-02"),
		Status:      string(r.Status),
		ReviewerID:  r.ReviewerID,
		ReviewNote:  r.ReviewNote,
		SubmittedAt: formatTimePtr(r.SubmittedAt),
		ReviewedAt:  formatTimePtr(r.ReviewedAt),
		Tasks:       tasks,
		CreatedAt:   r.CreatedAt.Format(timestampLayout),
		UpdatedAt:   r.UpdatedAt.Format(timestampLayout),
	}
}
