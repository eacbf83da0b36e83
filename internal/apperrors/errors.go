package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state
// of the resource (e.g. closing an already closed exercise).
var ErrConflict = errors.New("conflicting state")

// ErrConfiguration indicates that an expected chart-of-accounts entry or tax
// setting is missing. Callers must treat this as a hard failure, not retry.
var ErrConfiguration = errors.New("accounting configuration error")

// ErrImbalance indicates that computed entry lines do not sum to equal debits
// and credits. Nothing is persisted when this is returned.
var ErrImbalance = errors.New("journal entry does not balance")

// AppError carries an HTTP-ish status code alongside the wrapped cause, so
// outer layers can map failures without string matching.
type AppError struct {
	Code    int
	Message string
	Err     error
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
