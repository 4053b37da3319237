package user

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithClaims(t *testing.T, claims map[string]interface{}) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("secret"), nil)
	token, _, err := ja.Encode(claims)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestIdentityFromContext(t *testing.T) {
	ctx := contextWithClaims(t, map[string]interface{}{
		"user_id":     "u-1",
		"employee_id": "e-1",
		"company_id":  "c-1",
		"role":        "manager",
	})

	id, err := IdentityFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: "u-1", EmployeeID: "e-1", CompanyID: "c-1", Role: RoleManager}, id)
	assert.True(t, id.Can(PermissionReportReview))
}

func TestIdentityFromContext_MissingCompany(t *testing.T) {
	ctx := contextWithClaims(t, map[string]interface{}{"user_id": "u-1", "role": "pending"})

	_, err := IdentityFromContext(ctx)
	assert.ErrorIs(t, err, ErrCompanyIDRequired)
}

func TestIdentityFromContext_NoToken(t *testing.T) {
	_, err := IdentityFromContext(context.Background())
	assert.Error(t, err)
}
