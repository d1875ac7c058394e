// Package errors provides standardized errors that express what went wrong
// with a decrypt invocation rather than which SDK call produced it. Stage
// packages wrap these sentinels so the CLI can classify failures without
// inspecting provider error types.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors shared by all stages of the decrypt pipeline.
var (
	// ErrNotFound indicates the requested object or key does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied indicates the caller's credentials lack permission.
	ErrAccessDenied = errors.New("access denied")

	// ErrUnavailable indicates a remote service could not be reached or
	// failed transiently. The only retryable class of failure.
	ErrUnavailable = errors.New("unavailable")

	// ErrInvalidInput indicates malformed input: bad metadata, a wrapped
	// key the key service rejects, or ciphertext that fails authentication.
	ErrInvalidInput = errors.New("invalid input")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

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
