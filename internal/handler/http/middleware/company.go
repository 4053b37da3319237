package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hris-dar-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-dar-go/internal/handler/http/response"
)

// RequireCompany rejects tokens of users not yet attached to a company.
func RequireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := user.IdentityFromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrCompanyIDRequired)
			return
		}
		if id.Role == user.RolePending {
			response.HandleError(w, user.ErrInsufficientPermissions)
			return
		}

		next.ServeHTTP(w, r)
	})
}
