package errors

import (
	"errors"
	"fmt"
	"strings"
)

// NewNetworkError creates a new network error for a failed remote operation
func NewNetworkError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeNetwork,
		Title:   "Connection failed",
		Message: fmt.Sprintf("could not reach the server while %s", operation),
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewStatusError creates a network error for an unexpected HTTP status code
func NewStatusError(operation string, status int) *AppError {
	return &AppError{
		Type:    ErrorTypeNetwork,
		Title:   "Server refused the request",
		Message: fmt.Sprintf("the server answered %s with status %d", operation, status),
		Context: map[string]interface{}{
			"operation": operation,
			"status":    status,
		},
	}
}

// NewParseError creates a new parse error for a malformed server response
func NewParseError(what string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeParse,
		Title:   "Unexpected server response",
		Message: fmt.Sprintf("could not read %s from the server response", what),
		Cause:   cause,
		Context: map[string]interface{}{
			"what": what,
		},
	}
}

// NewIssuesNotFoundError creates a warning-severity error naming the issue
// ids that could not be resolved on the server. The message distinguishes
// a single missing issue from several.
func NewIssuesNotFoundError(ids []int) *AppError {
	formatted := make([]string, 0, len(ids))
	for _, id := range ids {
		formatted = append(formatted, fmt.Sprintf("#%d", id))
	}

	var message string
	if len(ids) == 1 {
		message = fmt.Sprintf("issue %s could not be found", formatted[0])
	} else {
		message = fmt.Sprintf("issues %s could not be found", strings.Join(formatted, ", "))
	}

	return &AppError{
		Type:     ErrorTypeNotFound,
		Severity: SeverityWarning,
		Title:    "Unknown issues",
		Message:  message,
		Context: map[string]interface{}{
			"ids": ids,
		},
	}
}

// NewAggregateError creates an aggregate error from the collected details
func NewAggregateError(title string, details []error) *AggregateError {
	return &AggregateError{
		Title:   title,
		Details: details,
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// AsAggregateError converts an error to an AggregateError if possible
func AsAggregateError(err error) (*AggregateError, bool) {
	var aggErr *AggregateError
	if errors.As(err, &aggErr) {
		return aggErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// IsWarning checks if the error only carries warning severity
func IsWarning(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsWarning()
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Message
	}
	if aggErr, ok := AsAggregateError(err); ok {
		return aggErr.Error()
	}
	return err.Error()
}
