package validation

import (
	uterrors "github.com/vnykmshr/utimer/pkg/common/errors"
)

// ValidatePositive validates that an unsigned value is positive (> 0).
// Returns a ValidationError if the value is zero.
func ValidatePositive(module, field string, value uint64) error {
	if value == 0 {
		return uterrors.NewValidationError(module, field, value, "must be positive").
			WithHint("value must be greater than 0")
	}
	return nil
}

// ValidateNotNil validates that an interface value is not nil.
// Returns a ValidationError if the value is nil.
func ValidateNotNil(module, field string, value interface{}) error {
	if value == nil {
		return uterrors.NewValidationError(module, field, nil, "cannot be nil").
			WithHint("provide a valid " + field)
	}
	return nil
}

// ValidateNotEmpty validates that a string value is not empty.
// Returns a ValidationError if the string is empty.
func ValidateNotEmpty(module, field string, value string) error {
	if value == "" {
		return uterrors.NewValidationError(module, field, value, "cannot be empty").
			WithHint("provide a non-empty " + field)
	}
	return nil
}

// ValidateAscending validates that prescaler divisors are strictly ascending.
// Returns a ValidationError naming the offending index otherwise.
func ValidateAscending(module, field string, values []uint32) error {
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			return uterrors.NewValidationError(module, field, values[i], "must be strictly ascending").
				WithHint("order prescaler divisors from finest to coarsest")
		}
	}
	return nil
}
