package cli

import (
	"context"
	"fmt"
	"time"

	"redmine-hours/internal/domain"
	"redmine-hours/internal/errors"
	"redmine-hours/internal/schedule"
	"redmine-hours/internal/tracker"
	"redmine-hours/internal/validation"
)

// DayCommand handles the day command
type DayCommand struct {
	manager      *tracker.Manager
	validator    *validation.InputValidator
	errorHandler *ErrorHandler
}

// NewDayCommand creates a new day command handler
func NewDayCommand(r *RootCommand) *DayCommand {
	return &DayCommand{
		manager:      r.manager,
		validator:    r.validator,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the day command
func (c *DayCommand) Execute(ctx context.Context, args []string) error {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}

	date, err := c.validator.ParseDate(arg, timeNow())
	if err != nil {
		return c.errorHandler.Handle("select the day", err)
	}
	date = domain.DateOf(date)

	// The day is printed even when some issue details failed to load;
	// the successfully loaded issues keep their data.
	selectErr := c.manager.SelectDay(ctx, date)
	if selectErr != nil && !isAggregate(selectErr) {
		return c.errorHandler.Handle("select the day", selectErr)
	}

	c.printDay(date)

	if selectErr != nil {
		return c.errorHandler.Handle("load all issue details", selectErr)
	}
	return nil
}

// printDay prints the day's entries with their issue, hours and comment.
func (c *DayCommand) printDay(date time.Time) {
	entries := c.manager.EntriesOn(date)
	spent := c.manager.SpentOn(date)
	expected := schedule.ExpectedHours(date)
	status := schedule.DayStatus(expected, spent, date, timeNow())

	fmt.Printf("%s  %.2f / %.2f [%s]\n", date.Format("2006-01-02"), spent, expected, status)
	if len(entries) == 0 {
		fmt.Println("  no entries")
		return
	}

	for _, entry := range entries {
		line := fmt.Sprintf("  %-40s %5.2fh", entry.Issue.DisplayLine(), entry.Hours)
		if entry.Comments != "" {
			line += "  " + entry.Comments
		}
		fmt.Println(line)
	}
}

// isAggregate reports whether the error is a partial-failure aggregate.
func isAggregate(err error) bool {
	_, ok := errors.AsAggregateError(err)
	return ok
}
