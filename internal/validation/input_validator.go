package validation

import (
	"strconv"
	"strings"
	"time"
)

// maxDailyHours is the largest hour amount a single booking may move.
const maxDailyHours = 24

// InputValidator validates the values a user can type on the command
// line before they reach the reconciliation engine.
type InputValidator struct{}

// NewInputValidator creates a new input validator
func NewInputValidator() *InputValidator {
	return &InputValidator{}
}

// ParseIssueIDs parses issue id arguments. Each argument may be a bare
// number, carry a leading '#', or hold several comma-separated ids.
func (iv *InputValidator) ParseIssueIDs(args []string) ([]int, error) {
	validationError := NewValidationError()

	var ids []int
	for _, arg := range args {
		for _, token := range strings.Split(arg, ",") {
			token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "#"))
			if token == "" {
				continue
			}

			id, err := strconv.Atoi(token)
			if err != nil {
				validationError.AddInvalidFormatError("issue_id", token, "a number like 123 or #123")
				continue
			}
			if id <= 0 {
				validationError.AddInvalidValueError("issue_id", token, "must be positive")
				continue
			}
			ids = append(ids, id)
		}
	}

	if len(ids) == 0 && !validationError.HasErrors() {
		validationError.AddRequiredError("issue_id")
	}
	if validationError.HasErrors() {
		return nil, validationError
	}
	return ids, nil
}

// ParseHoursDelta parses and validates an hour amount such as "1.5" or
// "-0.5". Zero and amounts beyond a day are rejected.
func (iv *InputValidator) ParseHoursDelta(arg string) (float64, error) {
	validationError := NewValidationError()

	delta, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil {
		validationError.AddInvalidFormatError("hours", arg, "a decimal number like 1.5")
		return 0, validationError
	}

	if delta == 0 {
		validationError.AddInvalidValueError("hours", arg, "must not be zero")
	}
	if delta > maxDailyHours || delta < -maxDailyHours {
		validationError.AddInvalidRangeError("hours", arg, "a day has at most 24 hours")
	}

	if validationError.HasErrors() {
		return 0, validationError
	}
	return delta, nil
}

// ValidateDoneRatio validates a completion ratio in percent.
func (iv *InputValidator) ValidateDoneRatio(ratio int) error {
	if ratio < 0 || ratio > 100 {
		validationError := NewValidationError()
		validationError.AddInvalidRangeError("done_ratio", ratio, "must be between 0 and 100")
		return validationError
	}
	return nil
}

// ParseDate parses an optional YYYY-MM-DD argument, defaulting to the
// given fallback when empty.
func (iv *InputValidator) ParseDate(arg string, fallback time.Time) (time.Time, error) {
	if strings.TrimSpace(arg) == "" {
		return fallback, nil
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(arg))
	if err != nil {
		validationError := NewValidationError()
		validationError.AddInvalidFormatError("date", arg, "YYYY-MM-DD")
		return time.Time{}, validationError
	}
	return date, nil
}

// ParseMonth parses an optional YYYY-MM argument, defaulting to the
// month of the given fallback when empty.
func (iv *InputValidator) ParseMonth(arg string, fallback time.Time) (time.Time, error) {
	if strings.TrimSpace(arg) == "" {
		return fallback, nil
	}

	month, err := time.Parse("2006-01", strings.TrimSpace(arg))
	if err != nil {
		validationError := NewValidationError()
		validationError.AddInvalidFormatError("month", arg, "YYYY-MM")
		return time.Time{}, validationError
	}
	return month, nil
}
