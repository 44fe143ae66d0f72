package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveUser       = errors.New("user account is inactive")
	ErrUserExists         = errors.New("user already exists")
)

// ValidationError reports a missing or out-of-range field in a create or
// update payload.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// InvalidInputError reports a value that could not be coerced to the type a
// field requires (non-numeric amount, malformed pagination integer).
type InvalidInputError struct {
	Field string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid value for %q", e.Field)
}

func invalidInputErr(field string) error {
	return &InvalidInputError{Field: field}
}
