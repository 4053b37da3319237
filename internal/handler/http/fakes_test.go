package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hris-dar-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-dar-go/internal/domain/dar"
	"github.com/cmlabs-hris/hris-dar-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-dar-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dar-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-dar-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

const (
	testCompanyID  = "0192a1b2-0000-7000-8000-000000000001"
	testEmployeeID = "0192a1b2-0000-7000-8000-000000000002"
	testUserID     = "0192a1b2-0000-7000-8000-000000000003"
	testReportID   = "0192a1b2-0000-7000-8000-000000000004"
	testTaskID     = "0192a1b2-0000-7000-8000-000000000005"
)

type fakeAuthService struct {
	loginErr  error
	logoutErr error
	loggedOut []string
}

func (f *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if f.loginErr != nil {
		return auth.TokenResponse{}, f.loginErr
	}
	return auth.TokenResponse{
		AccessToken:           "access-" + req.Email,
		AccessTokenExpiresIn:  3600,
		RefreshToken:          "refresh-" + req.Email,
		RefreshTokenExpiresIn: 4102444800,
	}, nil
}

func (f *fakeAuthService) LoginWithGoogle(ctx context.Context, email string, googleID string, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	return auth.TokenResponse{AccessToken: "google-" + email, AccessTokenExpiresIn: 3600}, nil
}

func (f *fakeAuthService) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if req.RefreshToken == "revoked" {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}
	return auth.AccessTokenResponse{AccessToken: "fresh", AccessTokenExpiresIn: 3600}, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, refreshToken string) error {
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.loggedOut = append(f.loggedOut, refreshToken)
	return nil
}

// fakeDARService records the last request and returns err when set.
type fakeDARService struct {
	err        error
	lastCreate dar.CreateTaskRequest
	lastSave   dar.SaveDayRequest
	lastFilter dar.ReportFilter
	lastRange  dar.RangeTimelineRequest
	deleted    string
}

func (f *fakeDARService) CreateTask(ctx context.Context, req dar.CreateTaskRequest) (dar.TaskResponse, error) {
	f.lastCreate = req
	if f.err != nil {
		return dar.TaskResponse{}, f.err
	}
	return dar.TaskResponse{ID: testTaskID, ReportID: testReportID, StartTime: req.StartTime, EndTime: req.EndTime, Title: req.Title, Type: req.Type}, nil
}

func (f *fakeDARService) UpdateTask(ctx context.Context, req dar.UpdateTaskRequest) (dar.TaskResponse, error) {
	if f.err != nil {
		return dar.TaskResponse{}, f.err
	}
	return dar.TaskResponse{ID: req.ID, Title: req.Title}, nil
}

func (f *fakeDARService) DeleteTask(ctx context.Context, id string) error {
	f.deleted = id
	return f.err
}

func (f *fakeDARService) SaveDay(ctx context.Context, req dar.SaveDayRequest) (dar.SaveDayResponse, error) {
	f.lastSave = req
	if f.err != nil {
		return dar.SaveDayResponse{}, f.err
	}
	return dar.SaveDayResponse{Created: len(req.Tasks), Report: dar.ReportResponse{ID: testReportID, ReportDate: req.Date}}, nil
}

func (f *fakeDARService) GetReport(ctx context.Context, id string) (dar.ReportResponse, error) {
	if f.err != nil {
		return dar.ReportResponse{}, f.err
	}
	return dar.ReportResponse{ID: id}, nil
}

func (f *fakeDARService) ListReports(ctx context.Context, filter dar.ReportFilter) (dar.ListReportResponse, error) {
	f.lastFilter = filter
	if f.err != nil {
		return dar.ListReportResponse{}, f.err
	}
	return dar.ListReportResponse{
		TotalCount: 1,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: 1,
		Reports:    []dar.ReportResponse{{ID: testReportID}},
	}, nil
}

func (f *fakeDARService) SubmitReport(ctx context.Context, id string) (dar.ReportResponse, error) {
	if f.err != nil {
		return dar.ReportResponse{}, f.err
	}
	return dar.ReportResponse{ID: id, Status: string(dar.ReportStatusSubmitted)}, nil
}

func (f *fakeDARService) ReviewReport(ctx context.Context, req dar.ReviewReportRequest) (dar.ReportResponse, error) {
	if f.err != nil {
		return dar.ReportResponse{}, f.err
	}
	return dar.ReportResponse{ID: req.ID, Status: string(dar.ReportStatusApproved)}, nil
}

func (f *fakeDARService) GetDayTimeline(ctx context.Context, req dar.DayTimelineRequest) (dar.DayTimelineResponse, error) {
	if f.err != nil {
		return dar.DayTimelineResponse{}, f.err
	}
	return dar.DayTimelineResponse{Date: req.Date, TotalLanes: 2}, nil
}

func (f *fakeDARService) GetRangeTimeline(ctx context.Context, req dar.RangeTimelineRequest) (dar.RangeTimelineResponse, error) {
	f.lastRange = req
	if f.err != nil {
		return dar.RangeTimelineResponse{}, f.err
	}
	return dar.RangeTimelineResponse{StartDate: req.StartDate, EndDate: req.EndDate, MaxLanes: 3}, nil
}

func (f *fakeDARService) ExportTimeline(ctx context.Context, req dar.RangeTimelineRequest) (dar.ExportFile, error) {
	if f.err != nil {
		return dar.ExportFile{}, f.err
	}
	return dar.ExportFile{
		Filename:    "dar-timeline_" + req.StartDate + "_" + req.EndDate + ".xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     []byte("PK"),
	}, nil
}

type fakeHolidayService struct {
	err     error
	created []holiday.CreateHolidayRequest
}

func (f *fakeHolidayService) CreateHoliday(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if f.err != nil {
		return holiday.HolidayResponse{}, f.err
	}
	f.created = append(f.created, req)
	return holiday.HolidayResponse{ID: testTaskID, Date: req.Date, Name: req.Name}, nil
}

func (f *fakeHolidayService) GetHoliday(ctx context.Context, id string) (holiday.HolidayResponse, error) {
	if f.err != nil {
		return holiday.HolidayResponse{}, f.err
	}
	return holiday.HolidayResponse{ID: id}, nil
}

func (f *fakeHolidayService) ListHolidays(ctx context.Context, filter holiday.HolidayFilter) ([]holiday.HolidayResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []holiday.HolidayResponse{{ID: testTaskID, Date: "2025-01-01", Name: "New Year"}}, nil
}

func (f *fakeHolidayService) UpdateHoliday(ctx context.Context, req holiday.UpdateHolidayRequest) (holiday.HolidayResponse, error) {
	if f.err != nil {
		return holiday.HolidayResponse{}, f.err
	}
	return holiday.HolidayResponse{ID: req.ID}, nil
}

func (f *fakeHolidayService) DeleteHoliday(ctx context.Context, id string) error {
	return f.err
}

type testServer struct {
	router   *chi.Mux
	jwt      jwt.Service
	auth     *fakeAuthService
	dar      *fakeDARService
	holidays *fakeHolidayService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	jwtService, err := jwt.NewJWTService("handler-test-secret", "1h", "24h")
	require.NoError(t, err)

	s := &testServer{
		jwt:      jwtService,
		auth:     &fakeAuthService{},
		dar:      &fakeDARService{},
		holidays: &fakeHolidayService{},
	}
	s.router = NewRouter(
		RouterConfig{AppName: "hris-dar-test", Env: "test", LogOutput: io.Discard, AllowedOrigins: []string{"http://localhost:3000"}},
		jwtService,
		NewAuthHandler(jwtService, s.auth, nil, "http://localhost:3000"),
		NewDARHandler(s.dar),
		NewHolidayHandler(s.holidays),
	)
	return s
}

func (s *testServer) token(t *testing.T, role user.Role) string {
	t.Helper()
	company, employee := testCompanyID, testEmployeeID
	token, _, err := s.jwt.GenerateAccessToken(jwt.AccessClaims{
		UserID:     testUserID,
		Email:      "jane@example.com",
		EmployeeID: &employee,
		CompanyID:  &company,
		Role:       role,
	})
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}
