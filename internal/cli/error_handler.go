package cli

import (
	"fmt"

	"redmine-hours/internal/errors"
	"redmine-hours/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return fmt.Errorf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage())
	}

	if aggErr, ok := errors.AsAggregateError(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, aggErr.Error())
	}

	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// IsWarning checks if an error only carries warning severity, meaning the
// operation partially succeeded and the command should report rather
// than fail.
func (eh *ErrorHandler) IsWarning(err error) bool {
	return errors.IsWarning(err)
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsNetworkError checks if an error is a network error
func (eh *ErrorHandler) IsNetworkError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNetwork)
}
