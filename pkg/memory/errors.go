package memory

import (
	"errors"
	"fmt"
)

// Predefined errors for common failure scenarios.
var (
	// ErrServiceUnavailable indicates a transport or HTTP-layer failure
	// reaching the completion service.
	ErrServiceUnavailable = errors.New("completion service unavailable")

	// ErrMalformedResponse indicates the completion service returned output
	// that could not be parsed as expected.
	ErrMalformedResponse = errors.New("malformed completion response")
)

// SchemaError reports a schema violation in an extracted memory batch.
//
// It names the offending field, the expected constraint (enum membership,
// numeric range, or presence), and the actual value. Out-of-range and
// out-of-enum values are rejected, never coerced.
type SchemaError struct {
	// Field is the path of the offending field, e.g. "preferences[2].confidence".
	Field string

	// Expected describes the violated constraint.
	Expected string

	// Actual is the offending value as found in the input.
	Actual string
}

// Error returns a formatted schema violation message.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema violation: %s: expected %s, got %q", e.Field, e.Expected, e.Actual)
}

func newSchemaError(field, expected, actual string) *SchemaError {
	return &SchemaError{Field: field, Expected: expected, Actual: actual}
}
