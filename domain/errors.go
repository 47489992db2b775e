// domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound covers both genuinely absent rows and access denials on reads.
// Collapsing the two keeps private note ids unprobable: a caller can never
// learn that a note exists without being allowed to read it.
var ErrNotFound = errors.New("note not found or not shared")

// ValidationError reports malformed input, caught before any store call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Invalid builds a ValidationError for a field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
