package model

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationResult collects field-level validation messages produced
// while constructing a record. Records are never half-built: a result
// with errors means no record was created.
type ValidationResult struct {
	Errors map[string]string
}

// Valid reports whether the input passed validation.
func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Add records a message for a field, keeping the first message when a
// field fails more than one check.
func (r *ValidationResult) Add(field, message string) {
	if r.Errors == nil {
		r.Errors = make(map[string]string)
	}
	if _, exists := r.Errors[field]; !exists {
		r.Errors[field] = message
	}
}

// Err returns nil for a valid result, or a *ValidationError otherwise.
func (r ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return &ValidationError{Fields: r.Errors}
}

// ValidationError is the error form of a failed validation, suitable for
// surfacing field messages to the user.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
