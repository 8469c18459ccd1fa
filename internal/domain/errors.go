package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput signals a malformed collection or search configuration.
	ErrInvalidInput = errors.New("invalid input")
)

// InvalidInputError wraps ErrInvalidInput with the rejected detail.
type InvalidInputError struct {
	Detail string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), e.Detail)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// NewInvalidInput creates an invalid input error with a formatted detail.
func NewInvalidInput(format string, args ...any) error {
	return &InvalidInputError{Detail: fmt.Sprintf(format, args...)}
}
