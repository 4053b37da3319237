package user

import "time"

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Reviews reports, manages holidays
	RoleEmployee Role = "employee" // Records own activity
	RolePending  Role = "pending"  // Still in onboarding
)

type User struct {
	ID              string
	CompanyID       *string
	EmployeeID      *string
	Email           string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsManager checks if user is manager or owner
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleOwner
}

// CanReview checks if user can approve or reject activity reports
func (u *User) CanReview() bool {
	return u.IsManager()
}
