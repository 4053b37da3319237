package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hris-dar-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-dar-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-dar-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// RevocationChecker reports access tokens revoked by logout.
type RevocationChecker interface {
	IsTokenRevoked(token string) bool
}

// AuthRequired accepts only verified, unrevoked access tokens. It must run
// after jwtauth.Verifier.
func AuthRequired(revoked RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != jwt.TokenTypeAccess {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if revoked != nil && revoked.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
