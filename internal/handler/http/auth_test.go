package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hris-dar-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-dar-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_SetsRefreshCookie(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "jane@example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "access-jane@example.com", resp.Data.(map[string]interface{})["access_token"])
	assert.NotContains(t, rec.Body.String(), "refresh-jane@example.com")

	var refresh *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "refresh_token" {
			refresh = c
		}
	}
	require.NotNil(t, refresh)
	assert.Equal(t, "refresh-jane@example.com", refresh.Value)
	assert.True(t, refresh.HttpOnly)
}

func TestLogin_Rejections(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		loginErr error
		want     int
	}{
		{"malformed json", `{"email":`, nil, http.StatusBadRequest},
		{"invalid email", `{"email":"nope","password":"x"}`, nil, http.StatusUnprocessableEntity},
		{"wrong password", `{"email":"jane@example.com","password":"x"}`, auth.ErrInvalidCredentials, http.StatusUnauthorized},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newTestServer(t)
			s.auth.loginErr = c.loginErr

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(c.body))
			rec := httptest.NewRecorder()
			s.router.ServeHTTP(rec, req)

			assert.Equal(t, c.want, rec.Code)
			assert.False(t, decodeResponse(t, rec).Success)
		})
	}
}

func TestRefreshToken_FromCookie(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "valid"})
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "fresh", decodeResponse(t, rec).Data.(map[string]interface{})["access_token"])
}

func TestRefreshToken_RevokedFromBody(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refresh_token": "revoked"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout_RevokesAccessToken(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RoleEmployee)

	rec := s.do(t, http.MethodGet, "/api/v1/reports", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "refresh-1"})
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"refresh-1"}, s.auth.loggedOut)
	assert.True(t, s.jwt.IsTokenRevoked(token))

	rec = s.do(t, http.MethodGet, "/api/v1/reports", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout_MissingCookie(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/auth/logout", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, s.auth.loggedOut)
}

func TestGoogleLogin_Disabled(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/auth/login/oauth/google", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/auth/oauth/callback/google?code=abc&state=x", "", nil)
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "http://localhost:3000/auth/callback/google?error=google_sign_in_disabled", rec.Header().Get("Location"))
}
