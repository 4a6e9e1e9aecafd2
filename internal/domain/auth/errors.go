package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrMissingCaller      = errors.New("caller identity missing from request context")
	ErrUserNotFound       = errors.New("user not found")
	ErrHRAccessRequired   = errors.New("hr or admin privilege required")
)
