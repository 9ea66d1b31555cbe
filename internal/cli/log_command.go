package cli

import (
	"context"
	"fmt"

	"redmine-hours/internal/domain"
	"redmine-hours/internal/tracker"
	"redmine-hours/internal/validation"
)

// LogCommand handles the log command
type LogCommand struct {
	manager      *tracker.Manager
	validator    *validation.InputValidator
	errorHandler *ErrorHandler
}

// NewLogCommand creates a new log command handler
func NewLogCommand(r *RootCommand) *LogCommand {
	return &LogCommand{
		manager:      r.manager,
		validator:    r.validator,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the log command
func (c *LogCommand) Execute(ctx context.Context, args []string, comment string, commentSet bool) error {
	ids, err := c.validator.ParseIssueIDs(args[:1])
	if err != nil {
		return c.errorHandler.Handle("log hours", err)
	}
	id := ids[0]

	delta, err := c.validator.ParseHoursDelta(args[1])
	if err != nil {
		return c.errorHandler.Handle("log hours", err)
	}

	if c.manager.CurrentDay().IsZero() {
		if err := c.manager.SelectDay(ctx, timeNow()); err != nil && !isAggregate(err) {
			return c.errorHandler.Handle("select day", err)
		}
	}

	// The only issue we asked for not resolving is blocking here, so
	// a not-found warning fails the command as well.
	if err := c.manager.CreateTimeEntries(ctx, []int{id}); err != nil {
		return c.errorHandler.Handle("log hours", err)
	}

	entry := c.entryFor(id)
	if entry == nil {
		return fmt.Errorf("issue #%d is not on %s", id, c.manager.CurrentDay().Format("2006-01-02"))
	}

	if entry.ChangeHours(delta) == domain.ChangedNothing {
		validationErr := validation.NewValidationError()
		validationErr.AddInvalidValueError("hours", delta,
			fmt.Sprintf("cannot take back %.2f hours, only %.2f booked", -delta, entry.Hours))
		return c.errorHandler.Handle("log hours", validationErr)
	}
	if commentSet {
		entry.SetComments(comment)
	}

	fmt.Printf("#%d on %s: %.2f hours\n", id, entry.SpentOn.Format("2006-01-02"), entry.Hours)
	return nil
}

// entryFor finds the issue's entry on the selected day
func (c *LogCommand) entryFor(id int) *domain.TimeEntry {
	for _, entry := range c.manager.EntriesOn(c.manager.CurrentDay()) {
		if entry.Issue.ID == id {
			return entry
		}
	}
	return nil
}
