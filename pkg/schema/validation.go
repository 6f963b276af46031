package schema

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationErrorShape is the error body shared by the API and its clients.
type ValidationErrorShape struct {
	// FieldErrors is keyed by JSON field name, e.g. {"email": "Email must be a valid email address"}.
	FieldErrors map[string]string `json:"fieldErrors"`
	// RowErrors holds errors tied to a table row rather than a single field.
	RowErrors []string `json:"rowErrors"`
	// GlobalErrors holds errors that belong to no field, e.g. a malformed body.
	GlobalErrors []string `json:"globalErrors"`
}

// NewValidationErrorShape returns an empty, non-nil shape.
func NewValidationErrorShape() ValidationErrorShape {
	return ValidationErrorShape{
		FieldErrors:  map[string]string{},
		RowErrors:    []string{},
		GlobalErrors: []string{},
	}
}

func (s ValidationErrorShape) HasErrors() bool {
	return len(s.FieldErrors) > 0 || len(s.RowErrors) > 0 || len(s.GlobalErrors) > 0
}

// ValidationError reports that one or more field rules were violated.
type ValidationError struct {
	ValidationErrorShape
}

func NewValidationError() *ValidationError {
	return &ValidationError{ValidationErrorShape: NewValidationErrorShape()}
}

// AddField records msg for field, keeping the first message per field.
func (e *ValidationError) AddField(field, msg string) {
	if _, exists := e.FieldErrors[field]; !exists {
		e.FieldErrors[field] = msg
	}
}

func (e *ValidationError) AddGlobal(msg string) {
	e.GlobalErrors = append(e.GlobalErrors, msg)
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.FieldErrors)+len(e.GlobalErrors)+len(e.RowErrors))
	keys := make([]string, 0, len(e.FieldErrors))
	for k := range e.FieldErrors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.FieldErrors[k]))
	}
	parts = append(parts, e.RowErrors...)
	parts = append(parts, e.GlobalErrors...)
	return "validation failed: " + strings.Join(parts, "; ")
}
