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

// ErrForbidden indicates the acting user lacks the role required for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the operation conflicts with the resource's current state.
var ErrConflict = errors.New("conflict with current state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// Workflow errors. These are precondition failures: they are always returned
// before any persistence happens, never after a partial write.
var (
	// ErrInvalidTransition indicates the requested action is not legal for the
	// record's current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrMissingReason indicates a denial/rejection was attempted without reviewer notes.
	ErrMissingReason = errors.New("reviewer notes required for denial")

	// ErrInvalidScope indicates a series-scoped action on a non-recurring record.
	ErrInvalidScope = errors.New("series scope not valid for this record")

	// ErrInvalidAmount indicates an approved amount outside [0, requestedAmount].
	ErrInvalidAmount = errors.New("approved amount out of range")

	// ErrStaleState indicates the record's status changed under a concurrent
	// reviewer between read and write.
	ErrStaleState = errors.New("record was modified concurrently")
)

// AppError wraps lower-level failures (typically from the persistence layer)
// with an HTTP-ish code and a message safe to log.
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

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound under errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewConflictError creates an AppError that matches ErrDuplicate under errors.Is.
func NewConflictError(message string) *AppError {
	return &AppError{Code: 409, Message: message, Err: ErrDuplicate}
}

// NewValidationFailedError creates an AppError that matches ErrValidation under errors.Is.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// NewForbiddenError creates an AppError that matches ErrForbidden under errors.Is.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: 403, Message: message, Err: ErrForbidden}
}

// NewUnauthorizedError creates an AppError that matches ErrUnauthorized under errors.Is.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: 401, Message: message, Err: ErrUnauthorized}
}
