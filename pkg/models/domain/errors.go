package domain

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns missing from an uploaded dataset.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ValidationError reports field values that could not be accepted:
// unparseable numerics, or a reclassification amount outside its bounds.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConsistencyError reports cross-row contradictions in a merged dataset:
// multiple distinct years, or category codes outside the closed set.
type ConsistencyError struct {
	Message string
}

func (e *ConsistencyError) Error() string {
	return e.Message
}

func NewConsistencyError(format string, args ...any) *ConsistencyError {
	return &ConsistencyError{Message: fmt.Sprintf(format, args...)}
}
