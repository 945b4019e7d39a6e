package auth

import "errors"

var (
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrSessionRequired       = errors.New("no active session, please log in")
	ErrOAuthNotConfigured    = errors.New("google sign-in is not configured")
	ErrGoogleEmailUnverified = errors.New("google account email is not verified")

	// OAuth callback
	ErrGoogleAccessDeniedByUser = errors.New("google access denied by user")
	ErrStateCookieEmpty         = errors.New("state cookie is empty")
	ErrStateParamEmpty          = errors.New("state parameter is empty")
	ErrStateMismatch            = errors.New("state mismatch")
	ErrCodeValueEmpty           = errors.New("code value is empty")
)
