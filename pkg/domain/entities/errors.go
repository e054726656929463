package entities

import (
	"fmt"
	"strings"
)

// ValidationError reports a configuration or data defect that makes correct
// computation impossible: a missing recipe link, a missing density for a
// required conversion, no pricing data for a shortfall, or malformed input.
// Ordinary insufficient inventory is never a ValidationError; it is reported
// as a shortfall.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Reason)
}

// NewValidationError creates a ValidationError with a formatted reason.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// CircularReferenceError reports that the composition graph contains a cycle:
// a bundle reappeared as its own ancestor during decomposition. Path holds
// the ancestor chain ending at the offending bundle.
type CircularReferenceError struct {
	Path []BundleID
}

func (e *CircularReferenceError) Error() string {
	parts := make([]string, len(e.Path))
	for i, id := range e.Path {
		parts[i] = string(id)
	}
	return fmt.Sprintf("circular reference in composition graph: %s", strings.Join(parts, " -> "))
}

// MaxDepthExceededError reports bundle nesting deeper than the configured
// limit.
type MaxDepthExceededError struct {
	Limit int
}

func (e *MaxDepthExceededError) Error() string {
	return fmt.Sprintf("composition nesting exceeds maximum depth of %d", e.Limit)
}
