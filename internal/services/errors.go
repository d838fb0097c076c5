package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors surfaced to the HTTP layer
var (
	ErrNotFound            = errors.New("record not found")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrSelfDeleteForbidden = errors.New("you cannot delete your own account")
)

// ValidationError carries field level messages for a rejected request
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates an empty validation error
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a message for a field
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = message
}

// HasErrors reports whether any field was rejected
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
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

// AsValidationError unwraps err into a *ValidationError if it is one
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// isUniqueViolation checks for a unique constraint error from the driver
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
