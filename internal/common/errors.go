// Package common defines shared constants and sentinel errors used across
// client and server layers of bloglist. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Input errors. Concrete failures are reported as *ValidationError and
	// *ConflictError, which unwrap to these.
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")

	// Auth errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrUnknownUser  = errors.New("unknown user")
)

// ValidationError reports missing or malformed input. Message is safe to
// return to API clients.
type ValidationError struct {
	Message string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ConflictError reports a uniqueness violation.
type ConflictError struct {
	Message string
}

func NewConflictError(msg string) *ConflictError {
	return &ConflictError{Message: msg}
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Unwrap() error { return ErrConflict }

// IsUnauthorized reports whether err means the caller could not be
// identified or is not allowed to act on the resource.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrorUnauthorized) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrUnknownUser)
}
