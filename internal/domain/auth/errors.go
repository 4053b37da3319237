package auth

import "errors"

var (
	ErrInvalidCredentials         = errors.New("invalid email or password")
	ErrInvalidToken               = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked        = errors.New("refresh token has been revoked")
	ErrRefreshTokenCookieNotFound = errors.New("refresh token cookie not found")
	ErrUserNotFound               = errors.New("user not found")
	ErrGoogleAccountNotLinked     = errors.New("no account is registered for this google email")
	ErrGoogleEmailNotVerified     = errors.New("google email is not verified")
	ErrStateMismatch              = errors.New("oauth state mismatch")
	ErrGoogleSignInDisabled       = errors.New("google sign-in is not configured")
)
