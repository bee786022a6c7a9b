// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors should be used by use cases
// and mapped to appropriate HTTP status codes by handlers.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidKey indicates the configured key material is missing or malformed.
	// Only fixing the process configuration recovers from it.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInternal indicates a failure inside the service that the caller cannot fix.
	ErrInternal = errors.New("internal error")
)

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is like Wrap but formats the message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Define creates a sentinel error whose message is exactly message and which
// matches kind through Is. Use it when the message is shown to end users verbatim.
func Define(kind error, message string) error {
	return &definedError{kind: kind, message: message}
}

type definedError struct {
	kind    error
	message string
}

func (e *definedError) Error() string { return e.message }

func (e *definedError) Unwrap() error { return e.kind }

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
