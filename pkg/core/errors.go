// Package core provides the main Companion client, tying together memory
// extraction, the persona registry, the personality engine, and optional
// profile persistence.
package core

import (
	"errors"
	"fmt"
)

// Predefined errors for common failure scenarios.
var (
	// ErrInvalidConfig indicates that the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrPersistenceDisabled indicates a profile persistence operation was
	// requested but no profile store is configured.
	ErrPersistenceDisabled = errors.New("profile persistence not configured")
)

// CompanionError wraps errors with operation context.
//
// It records which client operation failed, making error messages more
// informative for debugging.
type CompanionError struct {
	// Op is the name of the operation that failed.
	Op string

	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message in the form
// "companion: <Op>: <Err>".
func (e *CompanionError) Error() string {
	return fmt.Sprintf("companion: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
//
// This allows using errors.Is() and errors.As() with CompanionError.
func (e *CompanionError) Unwrap() error {
	return e.Err
}

// NewCompanionError creates a new CompanionError wrapping the given error.
// If err is nil, returns nil.
func NewCompanionError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &CompanionError{
		Op:  op,
		Err: err,
	}
}
