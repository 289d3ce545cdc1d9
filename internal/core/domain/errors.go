package domain

import "errors"

var (
	// ErrUnauthenticated covers missing, invalid or expired tokens, unknown
	// users and login credential mismatches. Callers must not be able to tell
	// these cases apart.
	ErrUnauthenticated = errors.New("could not validate credentials")
	ErrForbidden       = errors.New("access forbidden")
	ErrValidation      = errors.New("validation failed")
	ErrTooManyAttempts = errors.New("too many login attempts")

	// ErrStoreUnavailable is returned by repositories when the record store
	// cannot be reached.
	ErrStoreUnavailable = errors.New("record store unavailable")

	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrFeedbackNotFound = errors.New("feedback not found")
)

// ValidationError carries a human-readable reason for a rejected input.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Message string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
