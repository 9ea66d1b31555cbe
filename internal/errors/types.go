package errors

import (
	"fmt"
	"strings"
)

// ErrorType represents the category of error
type ErrorType int

const (
	ErrorTypeNetwork ErrorType = iota
	ErrorTypeParse
	ErrorTypeNotFound
	ErrorTypeValidation
)

// String returns the string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeNetwork:
		return "network"
	case ErrorTypeParse:
		return "parse"
	case ErrorTypeNotFound:
		return "not_found"
	case ErrorTypeValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Severity controls how an error affects the surrounding operation.
// A warning-severity error reports a problem but lets the caller keep
// the parts of the operation that did succeed.
type Severity int

const (
	SeverityBlocking Severity = iota
	SeverityWarning
)

// AppError represents a structured application error
type AppError struct {
	Type     ErrorType
	Severity Severity
	Title    string
	Message  string
	Cause    error
	Context  map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Title, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsType checks if this error is of the specified type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// IsWarning reports whether this error has warning severity
func (e *AppError) IsWarning() bool {
	return e.Severity == SeverityWarning
}

// WithContext adds context information to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// GetContext retrieves context information from the error
func (e *AppError) GetContext(key string) (interface{}, bool) {
	if e.Context == nil {
		return nil, false
	}
	value, exists := e.Context[key]
	return value, exists
}

// AggregateError wraps the individual failures collected by a bulk
// operation that processes every item before reporting.
type AggregateError struct {
	Title   string
	Details []error
}

// Error implements the error interface
func (e *AggregateError) Error() string {
	if len(e.Details) == 0 {
		return e.Title
	}

	messages := make([]string, 0, len(e.Details))
	for _, detail := range e.Details {
		messages = append(messages, detail.Error())
	}

	return fmt.Sprintf("%s (%d failed): %s", e.Title, len(e.Details), strings.Join(messages, "; "))
}

// Len returns the number of collected failure details
func (e *AggregateError) Len() int {
	return len(e.Details)
}
