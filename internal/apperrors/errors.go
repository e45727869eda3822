package apperrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal is used for failures that are not the caller's fault.
var ErrInternal = errors.New("internal error")

// ErrConflict is returned when an optimistic version check fails.
var ErrConflict = errors.New("concurrent modification")

// Loan ledger errors.
var (
	ErrInvalidParameters    = errors.New("invalid parameters")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInsufficientPayment  = errors.New("insufficient payment")
	ErrEntryAlreadySettled  = errors.New("entry already settled")
	ErrIndexOutOfRange      = errors.New("installment index out of range")
	ErrDeleteRefused        = errors.New("delete refused")
	ErrNoOverdueEntries     = errors.New("no overdue entries")
	ErrPartialApplication   = errors.New("partially applied")
)

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	if e.Err == nil {
		return ErrInternal
	}
	return e.Err
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// MissingFieldsError lists every required field absent from a payload.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingRequiredField, strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Unwrap() error { return ErrMissingRequiredField }

// InsufficientPaymentError reports how far a payment falls short.
type InsufficientPaymentError struct {
	Required  decimal.Decimal
	Supplied  decimal.Decimal
	Shortfall decimal.Decimal
}

// NewInsufficientPaymentError computes the shortfall from the required and supplied amounts.
func NewInsufficientPaymentError(required, supplied decimal.Decimal) *InsufficientPaymentError {
	return &InsufficientPaymentError{
		Required:  required,
		Supplied:  supplied,
		Shortfall: required.Sub(supplied),
	}
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("%s: required %s, supplied %s, short by %s",
		ErrInsufficientPayment, e.Required.StringFixed(2), e.Supplied.StringFixed(2), e.Shortfall.StringFixed(2))
}

func (e *InsufficientPaymentError) Unwrap() error { return ErrInsufficientPayment }

// DuplicateError names the unique field that was violated.
type DuplicateError struct {
	Field string
	Value string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: %s %q", ErrDuplicate, e.Field, e.Value)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// PartialApplicationError marks a multi-step operation that stopped after
// some steps were committed. CorrelationID ties together the log lines needed
// to reconcile it by hand.
type PartialApplicationError struct {
	CorrelationID string
	Step          string
	Err           error
}

func (e *PartialApplicationError) Error() string {
	return fmt.Sprintf("%s at step %s (correlation %s): %v", ErrPartialApplication, e.Step, e.CorrelationID, e.Err)
}

func (e *PartialApplicationError) Unwrap() []error { return []error{ErrPartialApplication, e.Err} }
