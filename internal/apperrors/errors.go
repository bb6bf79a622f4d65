package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrForbidden indicates the acting user lacks permission for the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrConflict indicates a date/slot collision or an administratively blocked date.
var ErrConflict = errors.New("reservation conflict")

// ErrDuplicateRefund indicates a completed refund already exists for the reservation.
var ErrDuplicateRefund = errors.New("a completed refund already exists for this reservation")

// ErrNoValidPayments indicates the reservation has no valid payments to refund against.
var ErrNoValidPayments = errors.New("no valid payments found for this reservation")

// ErrNoActiveRate indicates no active rate exists for the category in either time mode.
var ErrNoActiveRate = errors.New("no active rate configured")

// ErrInternal indicates an unexpected internal or storage-layer failure.
var ErrInternal = errors.New("internal error")

// AppError wraps an underlying error with an HTTP-ish status code and a
// caller-safe message. Repositories use it to surface storage failures without
// leaking driver details.
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
