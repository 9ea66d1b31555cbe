package cli

import (
	"context"
	"fmt"

	"redmine-hours/internal/errors"
	"redmine-hours/internal/tracker"
	"redmine-hours/internal/validation"
)

// AddCommand handles the add command
type AddCommand struct {
	manager      *tracker.Manager
	validator    *validation.InputValidator
	errorHandler *ErrorHandler
}

// NewAddCommand creates a new add command handler
func NewAddCommand(r *RootCommand) *AddCommand {
	return &AddCommand{
		manager:      r.manager,
		validator:    r.validator,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	ids, err := c.validator.ParseIssueIDs(args)
	if err != nil {
		return c.errorHandler.Handle("add issues", err)
	}

	err = c.manager.CreateTimeEntries(ctx, ids)
	if err != nil && !c.errorHandler.IsWarning(err) {
		return c.errorHandler.Handle("add issues", err)
	}

	date := c.manager.CurrentDay()
	if date.IsZero() {
		date = timeNow()
	}
	fmt.Printf("%d issue(s) on %s\n", len(c.manager.EntriesOn(date)), date.Format("2006-01-02"))

	// Unresolved ids are a warning: the issues that did resolve were
	// still added.
	if err != nil {
		fmt.Printf("Warning: %s\n", errors.GetUserMessage(err))
	}
	return nil
}
