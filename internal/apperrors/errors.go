package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
// Ownership-scoped lookups deliberately collapse "missing" and "not yours"
// into this error so callers cannot probe for resource existence.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthenticated indicates a missing or garbled credential.
var ErrUnauthenticated = errors.New("authentication required")

// ErrForbidden indicates a valid credential with insufficient privilege or an
// ownership mismatch.
var ErrForbidden = errors.New("forbidden")

// ErrInsufficientFunds indicates a debit larger than the account balance.
// Expected, caller-recoverable condition, not a failure.
var ErrInsufficientFunds = errors.New("insufficient funds")

// AppError wraps a lower level failure with an HTTP-ish code and a message
// that is safe to surface. The wrapped error is reachable via errors.Unwrap.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
