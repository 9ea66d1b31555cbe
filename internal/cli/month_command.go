package cli

import (
	"context"
	"fmt"

	"redmine-hours/internal/domain"
	"redmine-hours/internal/schedule"
	"redmine-hours/internal/tracker"
	"redmine-hours/internal/validation"
)

// MonthCommand handles the month command
type MonthCommand struct {
	manager      *tracker.Manager
	validator    *validation.InputValidator
	errorHandler *ErrorHandler
}

// NewMonthCommand creates a new month command handler
func NewMonthCommand(r *RootCommand) *MonthCommand {
	return &MonthCommand{
		manager:      r.manager,
		validator:    r.validator,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the month command
func (c *MonthCommand) Execute(ctx context.Context, args []string) error {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}

	reference, err := c.validator.ParseMonth(arg, timeNow())
	if err != nil {
		return c.errorHandler.Handle("show the month", err)
	}
	month := domain.MonthOf(reference)

	if err := c.manager.LoadMonth(ctx, month); err != nil {
		return c.errorHandler.Handle("load the month", err)
	}

	c.printMonth(month)
	return nil
}

// printMonth prints one line per day: date, weekday, spent vs expected
// hours and the day's status.
func (c *MonthCommand) printMonth(month domain.Month) {
	today := timeNow()

	fmt.Printf("%s\n", month)
	for _, day := range month.Days() {
		spent := c.manager.SpentOn(day)
		expected := schedule.ExpectedHours(day)
		status := schedule.DayStatus(expected, spent, day, today)

		marker := ""
		if status != schedule.StatusNone {
			marker = "  [" + status.String() + "]"
		}
		fmt.Printf("  %s %s  %5.2f / %5.2f%s\n",
			day.Format("2006-01-02"), day.Format("Mon"), spent, expected, marker)
	}

	fmt.Printf("Total: %.2f of %.2f expected hours\n",
		c.manager.SpentInMonth(month), schedule.ExpectedMonthHours(month))
}
