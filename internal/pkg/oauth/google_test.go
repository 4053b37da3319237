package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestRedirectURL_CarriesState(t *testing.T) {
	svc := NewGoogleService("client-id", "client-secret", "http://localhost:8080/callback", []string{"email"})

	state, err := svc.GenerateState()
	require.NoError(t, err)
	assert.NotEmpty(t, state)

	u, err := url.Parse(svc.RedirectURL(state))
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, state, q.Get("state"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "http://localhost:8080/callback", q.Get("redirect_uri"))
}

func TestUserInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"g-1","email":"jane@example.com","verified_email":true}`))
	}))
	defer srv.Close()

	svc := NewGoogleService("id", "secret", "http://cb", []string{"email"})
	svc.userInfoURL = srv.URL

	info, err := svc.UserInfo(context.Background(), &oauth2.Token{AccessToken: "tok", TokenType: "Bearer"})
	require.NoError(t, err)
	assert.Equal(t, GoogleInformation{GoogleID: "g-1", Email: "jane@example.com", VerifiedEmail: true}, info)
}

func TestUserInfo_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	svc := NewGoogleService("id", "secret", "http://cb", nil)
	svc.userInfoURL = srv.URL

	_, err := svc.UserInfo(context.Background(), &oauth2.Token{AccessToken: "tok"})
	assert.Error(t, err)
}
