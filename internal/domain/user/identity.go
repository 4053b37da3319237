package user

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

// Identity is the caller as described by the verified access token.
type Identity struct {
	UserID     string
	EmployeeID string
	CompanyID  string
	Role       Role
}

func (i Identity) Can(p Permission) bool {
	return HasPermission(i.Role, p)
}

// IdentityFromContext reads the access token claims placed on ctx by the
// jwtauth verifier. A company is always required; employee may be empty.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	var id Identity
	id.UserID, _ = claims["user_id"].(string)
	id.EmployeeID, _ = claims["employee_id"].(string)
	id.CompanyID, _ = claims["company_id"].(string)
	role, _ := claims["role"].(string)
	id.Role = Role(role)

	if id.CompanyID == "" {
		return Identity{}, ErrCompanyIDRequired
	}
	return id, nil
}
