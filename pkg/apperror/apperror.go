// Package apperror defines the error kinds returned by the application layer.
// Handlers map them to HTTP status codes with errors.Is.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrDuplicateUser      = errors.New("duplicate user")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInternal           = errors.New("internal error")
)

type AppError struct {
	Err     error             // kind, one of the sentinels above
	Message string            // human-readable message returned to clients
	Field   string            // optional: field causing the error
	Details map[string]string // optional: per-field validation messages
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Validation(field, message string) *AppError {
	return &AppError{Err: ErrValidation, Message: message, Field: field}
}

// ValidationDetails reports several invalid fields at once.
func ValidationDetails(message string, details map[string]string) *AppError {
	return &AppError{Err: ErrValidation, Message: message, Details: details}
}

func DuplicateUser() *AppError {
	return &AppError{Err: ErrDuplicateUser, Message: "user already exists", Field: "email"}
}

// InvalidCredentials carries the same message whatever the cause.
func InvalidCredentials() *AppError {
	return &AppError{Err: ErrInvalidCredentials, Message: "invalid credentials"}
}

func Unauthenticated(message string) *AppError {
	return &AppError{Err: ErrUnauthenticated, Message: message}
}

func NotFound(resource string) *AppError {
	return &AppError{Err: ErrNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func Forbidden(message string) *AppError {
	return &AppError{Err: ErrForbidden, Message: message}
}

// Internal wraps an unexpected failure. The cause is kept for logging only.
func Internal(cause error) *AppError {
	return &AppError{Err: fmt.Errorf("%w: %w", ErrInternal, cause), Message: "internal server error"}
}
