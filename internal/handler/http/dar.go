package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-dar-go/internal/domain/dar"
	"github.com/cmlabs-hris/hris-dar-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DARHandler interface {
	CreateTask(w http.ResponseWriter, r *http.Request)
	UpdateTask(w http.ResponseWriter, r *http.Request)
	DeleteTask(w http.ResponseWriter, r *http.Request)
	SaveDay(w http.ResponseWriter, r *http.Request)

	ListReports(w http.ResponseWriter, r *http.Request)
	GetReport(w http.ResponseWriter, r *http.Request)
	SubmitReport(w http.ResponseWriter, r *http.Request)
	ReviewReport(w http.ResponseWriter, r *http.Request)

	GetDayTimeline(w http.ResponseWriter, r *http.Request)
	GetRangeTimeline(w http.ResponseWriter, r *http.Request)
	ExportTimeline(w http.ResponseWriter, r *http.Request)
}

type DARHandlerImpl struct {
	darService dar.DARService
}

func NewDARHandler(darService dar.DARService) DARHandler {
	return &DARHandlerImpl{darService: darService}
}

// CreateTask implements DARHandler.
func (d *DARHandlerImpl) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req dar.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateTask decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	task, err := d.darService.CreateTask(r.Context(), req)
	if err != nil {
		slog.Error("CreateTask service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Activity task created successfully", task)
}

// UpdateTask implements DARHandler.
func (d *DARHandlerImpl) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req dar.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateTask decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	task, err := d.darService.UpdateTask(r.Context(), req)
	if err != nil {
		slog.Error("UpdateTask service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Activity task updated successfully", task)
}

// DeleteTask implements DARHandler.
func (d *DARHandlerImpl) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Task ID is required", nil)
		return
	}

	if err := d.darService.DeleteTask(r.Context(), id); err != nil {
		slog.Error("DeleteTask service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Activity task deleted successfully", nil)
}

// SaveDay implements DARHandler.
func (d *DARHandlerImpl) SaveDay(w http.ResponseWriter, r *http.Request) {
	var req dar.SaveDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SaveDay decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Date = chi.URLParam(r, "date")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := d.darService.SaveDay(r.Context(), req)
	if err != nil {
		slog.Error("SaveDay service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Activity day saved successfully", result)
}

// ListReports implements DARHandler.
func (d *DARHandlerImpl) ListReports(w http.ResponseWriter, r *http.Request) {
	var filter dar.ReportFilter
	query := r.URL.Query()

	if employeeID := query.Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if status := query.Get("status"); status != "" {
		filter.Status = &status
	}
	if startDate := query.Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := query.Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}
	if page := query.Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil {
			filter.Page = p
		}
	}
	if limit := query.Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			filter.Limit = l
		}
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := d.darService.ListReports(r.Context(), filter)
	if err != nil {
		slog.Error("ListReports service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Reports, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// GetReport implements DARHandler.
func (d *DARHandlerImpl) GetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Report ID is required", nil)
		return
	}

	report, err := d.darService.GetReport(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

// SubmitReport implements DARHandler.
func (d *DARHandlerImpl) SubmitReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Report ID is required", nil)
		return
	}

	report, err := d.darService.SubmitReport(r.Context(), id)
	if err != nil {
		slog.Error("SubmitReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Activity report submitted successfully", report)
}

// ReviewReport implements DARHandler.
func (d *DARHandlerImpl) ReviewReport(w http.ResponseWriter, r *http.Request) {
	var req dar.ReviewReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ReviewReport decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	report, err := d.darService.ReviewReport(r.Context(), req)
	if err != nil {
		slog.Error("ReviewReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Activity report reviewed successfully", report)
}

// GetDayTimeline implements DARHandler.
func (d *DARHandlerImpl) GetDayTimeline(w http.ResponseWriter, r *http.Request) {
	req := dar.DayTimelineRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Date:       r.URL.Query().Get("date"),
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	day, err := d.darService.GetDayTimeline(r.Context(), req)
	if err != nil {
		slog.Error("GetDayTimeline service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, day)
}

func rangeTimelineRequest(r *http.Request) dar.RangeTimelineRequest {
	query := r.URL.Query()
	return dar.RangeTimelineRequest{
		EmployeeID: query.Get("employee_id"),
		StartDate:  query.Get("start_date"),
		EndDate:    query.Get("end_date"),
	}
}

// GetRangeTimeline implements DARHandler.
func (d *DARHandlerImpl) GetRangeTimeline(w http.ResponseWriter, r *http.Request) {
	req := rangeTimelineRequest(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := d.darService.GetRangeTimeline(r.Context(), req)
	if err != nil {
		slog.Error("GetRangeTimeline service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportTimeline implements DARHandler.
func (d *DARHandlerImpl) ExportTimeline(w http.ResponseWriter, r *http.Request) {
	req := rangeTimelineRequest(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := d.darService.ExportTimeline(r.Context(), req)
	if err != nil {
		slog.Error("ExportTimeline service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file.Filename, file.ContentType, file.Content)
}
