package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the utimer library

var (
	// ErrZeroDuration indicates a requested duration of zero units; the
	// operation cancels any previously armed timer but arms nothing
	ErrZeroDuration = errors.New("duration must be at least one unit")

	// ErrNilCallback indicates that no callback function was supplied
	ErrNilCallback = errors.New("callback cannot be nil")

	// ErrNilPeripheral indicates that no timer peripheral was supplied
	ErrNilPeripheral = errors.New("peripheral cannot be nil")

	// ErrNoTier indicates that a peripheral exposes an empty prescaler table
	ErrNoTier = errors.New("prescaler table is empty")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// IsUsage returns true if the error reports a caller mistake rather than
// a peripheral or configuration fault
func IsUsage(err error) bool {
	return errors.Is(err, ErrZeroDuration) || errors.Is(err, ErrNilCallback)
}

// ValidationError describes a rejected configuration or argument value.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// NewValidationError creates a ValidationError for the given module and field.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a remediation hint and returns the same error.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap allows errors.Is(err, ErrInvalidConfiguration) to match.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}
