package cli

import (
	"context"
	"fmt"

	"redmine-hours/internal/domain"
	"redmine-hours/internal/tracker"
)

// ReloadCommand handles the reload command
type ReloadCommand struct {
	manager      *tracker.Manager
	errorHandler *ErrorHandler
}

// NewReloadCommand creates a new reload command handler
func NewReloadCommand(r *RootCommand) *ReloadCommand {
	return &ReloadCommand{
		manager:      r.manager,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the reload command. Local changes are dropped without
// asking; status shows beforehand what would be lost.
func (c *ReloadCommand) Execute(ctx context.Context, args []string) error {
	reference := c.manager.CurrentDay()
	if reference.IsZero() {
		reference = timeNow()
	}

	c.manager.ClearAll()

	month := domain.MonthOf(reference)
	if err := c.manager.LoadMonth(ctx, month); err != nil && !isAggregate(err) {
		return c.errorHandler.Handle("reload", err)
	}

	fmt.Printf("Reloaded %s: %.2f hours booked.\n", month, c.manager.SpentInMonth(month))
	return nil
}
