// Package validation defines the error returned when a setter or constructor rejects its input.
package validation

import (
	"errors"
	"fmt"
)

// ErrInvalid matches every *Error through errors.Is.
var ErrInvalid = errors.New("invalid value")

// Error reports which field was rejected and why.
type Error struct {
	Field  string
	Reason string
}

func New(field, reason string) *Error {
	return &Error{Field: field, Reason: reason}
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}
