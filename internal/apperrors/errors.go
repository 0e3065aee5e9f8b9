// Package apperrors defines the sentinel errors every layer of the service
// agrees on. Services return them (possibly wrapped with fmt.Errorf and %w),
// handlers map them to HTTP responses with errors.Is.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers unknown email, wrong password AND a
	// deactivated account. The three must stay indistinguishable to the
	// caller so the login endpoint cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInactiveAccount wraps ErrInvalidCredentials so the response layer
	// collapses it into the generic message while logs keep the real cause.
	ErrInactiveAccount = fmt.Errorf("account is deactivated: %w", ErrInvalidCredentials)

	// ErrPermissionDenied means authenticated but lacking the required role.
	ErrPermissionDenied = errors.New("permission denied")

	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail maps the users.email unique violation.
	ErrDuplicateEmail = errors.New("a user with this email already exists")

	ErrValidation = errors.New("validation failed")

	// ErrSelfAction guards the acting admin's own account against
	// delete, deactivate and demote.
	ErrSelfAction = errors.New("action not permitted on your own account")
)

// Validationf wraps ErrValidation with a formatted detail message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// SelfActionf wraps ErrSelfAction with a formatted detail message.
func SelfActionf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrSelfAction}, args...)...)
}
