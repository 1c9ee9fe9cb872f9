package session

import "errors"

var (
	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionNotFound indicates the token is unknown.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates the token was valid but has expired.
	ErrSessionExpired = errors.New("session expired")
)
