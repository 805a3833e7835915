package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found,
// or exists under a different tenant (existence is not revealed).
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller lacks the permission code an operation requires.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected failure that is not the caller's fault.
var ErrInternal = errors.New("internal error")

// ErrPeriodClosed indicates the accounting period for the requested date is not OPEN.
var ErrPeriodClosed = errors.New("accounting period is closed")

// ErrNoPeriodForDate indicates no accounting period covers the requested date.
var ErrNoPeriodForDate = errors.New("no accounting period for date")

// ErrCutoverViolation indicates an operation dated before the tenant's cutover boundary.
var ErrCutoverViolation = errors.New("date falls before the cutover boundary")

// ErrInvalidStateTransition indicates the entry's current status does not permit
// the attempted transition, including the loser of a concurrent transition race.
var ErrInvalidStateTransition = errors.New("invalid state transition")

// ErrSoDViolation indicates the same user would occupy two conflicting roles on one entry.
var ErrSoDViolation = errors.New("segregation of duties violation")

// ErrBudgetBlocked indicates the entry's aggregate budget status is BLOCK.
var ErrBudgetBlocked = errors.New("budget control blocked")

// ErrBudgetJustificationRequired indicates a WARN budget outcome with no override justification.
var ErrBudgetJustificationRequired = errors.New("budget override justification required")

// ErrLegacyMissingDimensions indicates a reversal was blocked because the original
// entry predates dimension enforcement and lacks required dimension coding.
var ErrLegacyMissingDimensions = errors.New("legacy entry is missing required dimensions")

// FieldError carries a line-level validation failure so callers can point
// the user at the offending journal line and field.
type FieldError struct {
	LineNumber int    `json:"lineNumber,omitempty"`
	Field      string `json:"field"`
	Message    string `json:"message"`
}

func (e *FieldError) Error() string {
	if e.LineNumber > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.LineNumber, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrValidation) match any field error.
func (e *FieldError) Unwrap() error {
	return ErrValidation
}

// NewFieldError builds a FieldError for a specific journal line (0 for entry-level).
func NewFieldError(lineNumber int, field, message string) *FieldError {
	return &FieldError{LineNumber: lineNumber, Field: field, Message: message}
}

// AppError wraps a lower-level failure with an HTTP-ish status code and message.
// Used by the repository layer where the failure is infrastructural rather than
// a business rule.
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

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
