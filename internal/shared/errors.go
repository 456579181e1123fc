package shared

import "errors"

var (
	// ErrSessionMissing is returned when a request carries no loaded session.
	ErrSessionMissing = errors.New("session missing")
	// ErrCSRFTokenMissing is returned when the request or session holds no token.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch is returned when the submitted token is not the session's.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)
