package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError aggregates every violated constraint of a request so the
// client sees the full list, not just the first failure.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func NewValidationError(messages ...string) error {
	return &ValidationError{Messages: messages}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

// AsValidationError returns the typed validation error when err carries one.
func AsValidationError(err error) (*ValidationError, bool) {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return validationError, ok
}

// NotFoundError signals that a referenced entity id does not resolve.
type NotFoundError struct {
	Entity string
	ID     int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

func NewNotFoundError(entity string, id int) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func IsNotFoundError(err error) bool {
	var notFoundError *NotFoundError
	return errors.As(err, &notFoundError)
}
