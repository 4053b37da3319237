package http

import (
	"net/http"
	"testing"

	"github.com/cmlabs-hris/hris-dar-go/internal/domain/dar"
	"github.com/cmlabs-hris/hris-dar-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTask() map[string]string {
	return map[string]string{
		"date":       "2025-03-03",
		"start_time": "09:00",
		"end_time":   "10:30",
		"title":      "Standup",
		"type":       "meeting",
	}
}

func TestCreateTask(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/tasks", s.token(t, user.RoleEmployee), validTask())

	require.Equal(t, http.StatusCreated, rec.Code)
	data := decodeResponse(t, rec).Data.(map[string]interface{})
	assert.Equal(t, testTaskID, data["id"])
	assert.Equal(t, "2025-03-03", s.dar.lastCreate.Date)
	assert.Equal(t, "Standup", s.dar.lastCreate.Title)
}

func TestCreateTask_Rejections(t *testing.T) {
	badTime := validTask()
	badTime["end_time"] = "25:00"

	cases := []struct {
		name    string
		role    user.Role
		body    map[string]string
		svcErr  error
		want    int
		wantKey string
	}{
		{"validation", user.RoleEmployee, badTime, nil, http.StatusUnprocessableEntity, "end_time"},
		{"not editable", user.RoleEmployee, validTask(), dar.ErrReportNotEditable, http.StatusConflict, ""},
		{"no employee profile", user.RoleOwner, validTask(), dar.ErrEmployeeRequired, http.StatusForbidden, ""},
		{"pending role", user.RolePending, validTask(), nil, http.StatusForbidden, ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newTestServer(t)
			s.dar.err = c.svcErr

			rec := s.do(t, http.MethodPost, "/api/v1/tasks", s.token(t, c.role), c.body)

			assert.Equal(t, c.want, rec.Code)
			resp := decodeResponse(t, rec)
			assert.False(t, resp.Success)
			if c.wantKey != "" {
				require.NotNil(t, resp.Error)
				assert.Contains(t, resp.Error.Details, c.wantKey)
			}
		})
	}
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/timeline/day?date=2025-03-03", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/timeline/day?date=2025-03-03", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateAndDeleteTask(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RoleEmployee)

	body := validTask()
	delete(body, "date")
	body["title"] = "Planning"
	rec := s.do(t, http.MethodPut, "/api/v1/tasks/"+testTaskID, token, body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Planning", decodeResponse(t, rec).Data.(map[string]interface{})["title"])

	rec = s.do(t, http.MethodDelete, "/api/v1/tasks/"+testTaskID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testTaskID, s.dar.deleted)

	s.dar.err = dar.ErrTaskNotFound
	rec = s.do(t, http.MethodDelete, "/api/v1/tasks/"+testTaskID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSaveDay_TakesDateFromPath(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPut, "/api/v1/days/2025-03-04", s.token(t, user.RoleEmployee), map[string]interface{}{
		"date": "1999-01-01",
		"tasks": []map[string]string{
			{"start_time": "09:00", "end_time": "10:00", "title": "A"},
			{"start_time": "09:30", "end_time": "11:00", "title": "B"},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025-03-04", s.dar.lastSave.Date)
	assert.Len(t, s.dar.lastSave.Tasks, 2)
	assert.EqualValues(t, 2, decodeResponse(t, rec).Data.(map[string]interface{})["created"])
}

func TestListReports_PaginationMeta(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/reports?page=2&limit=10&status=submitted", s.token(t, user.RoleManager), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 10, resp.Meta.Limit)
	assert.EqualValues(t, 1, resp.Meta.TotalItems)
	require.NotNil(t, s.dar.lastFilter.Status)
	assert.Equal(t, "submitted", *s.dar.lastFilter.Status)
}

func TestListReports_InvalidStatus(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/reports?status=archived", s.token(t, user.RoleManager), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestReviewReport_ManagerOnly(t *testing.T) {
	s := newTestServer(t)
	body := map[string]string{"decision": "approve"}

	rec := s.do(t, http.MethodPost, "/api/v1/reports/"+testReportID+"/review", s.token(t, user.RoleEmployee), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/reports/"+testReportID+"/review", s.token(t, user.RoleManager), body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "approved", decodeResponse(t, rec).Data.(map[string]interface{})["status"])

	s.dar.err = dar.ErrSelfReviewForbidden
	rec = s.do(t, http.MethodPost, "/api/v1/reports/"+testReportID+"/review", s.token(t, user.RoleManager), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSubmitReport(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RoleEmployee)

	rec := s.do(t, http.MethodPost, "/api/v1/reports/"+testReportID+"/submit", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	s.dar.err = dar.ErrReportEmpty
	rec = s.do(t, http.MethodPost, "/api/v1/reports/"+testReportID+"/submit", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDayTimeline(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RoleEmployee)

	rec := s.do(t, http.MethodGet, "/api/v1/timeline/day?date=2025-03-03", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decodeResponse(t, rec).Data.(map[string]interface{})["total_lanes"])

	rec = s.do(t, http.MethodGet, "/api/v1/timeline/day", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	s.dar.err = dar.ErrReportAccessDenied
	rec = s.do(t, http.MethodGet, "/api/v1/timeline/day?date=2025-03-03&employee_id="+testUserID, token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRangeTimeline_TooLong(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/timeline/range?start_date=2025-01-01&end_date=2025-03-01", s.token(t, user.RoleEmployee), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, s.dar.lastRange.StartDate)
}

func TestExportTimeline_Attachment(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/timeline/export?start_date=2025-03-01&end_date=2025-03-07", s.token(t, user.RoleEmployee), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="dar-timeline_2025-03-01_2025-03-07.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK", rec.Body.String())
}
