package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/hris-dar-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-dar-go/internal/domain/dar"
	"github.com/cmlabs-hris/hris-dar-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-dar-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dar-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenCookieNotFound):
		Unauthorized(w, "Refresh token cookie not found")
	case errors.Is(err, auth.ErrStateMismatch):
		BadRequest(w, "OAuth state mismatch", nil)
	case errors.Is(err, auth.ErrGoogleAccountNotLinked):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrGoogleEmailNotVerified):
		Forbidden(w, "Google email not verified")
	case errors.Is(err, auth.ErrGoogleSignInDisabled):
		NotFound(w, "Google sign-in is not configured")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrCompanyIDRequired):
		Forbidden(w, "Company membership required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrOwnerAccessRequired):
		Forbidden(w, "Owner access required")

	// Activity report errors
	case errors.Is(err, dar.ErrReportNotFound):
		NotFound(w, "Activity report not found")
	case errors.Is(err, dar.ErrTaskNotFound):
		NotFound(w, "Activity task not found")
	case errors.Is(err, dar.ErrReportAccessDenied):
		Forbidden(w, "Activity report belongs to another employee")
	case errors.Is(err, dar.ErrSelfReviewForbidden):
		Forbidden(w, "Reviewers cannot review their own report")
	case errors.Is(err, dar.ErrEmployeeRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, dar.ErrReportNotEditable):
		Conflict(w, "Activity report is no longer editable")
	case errors.Is(err, dar.ErrReportNotSubmitted):
		Conflict(w, "Activity report has not been submitted")
	case errors.Is(err, dar.ErrReportExists):
		Conflict(w, "Activity report for this date already exists")
	case errors.Is(err, dar.ErrReportEmpty):
		BadRequest(w, "Activity report has no tasks", nil)

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayDateExists):
		Conflict(w, "A holiday is already registered on this date")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
