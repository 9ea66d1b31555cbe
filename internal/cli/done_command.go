package cli

import (
	"context"
	"fmt"
	"strconv"

	"redmine-hours/internal/domain"
	"redmine-hours/internal/tracker"
	"redmine-hours/internal/validation"
)

// DoneCommand handles the done command
type DoneCommand struct {
	manager      *tracker.Manager
	validator    *validation.InputValidator
	errorHandler *ErrorHandler
}

// NewDoneCommand creates a new done command handler
func NewDoneCommand(r *RootCommand) *DoneCommand {
	return &DoneCommand{
		manager:      r.manager,
		validator:    r.validator,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the done command
func (c *DoneCommand) Execute(ctx context.Context, args []string) error {
	ids, err := c.validator.ParseIssueIDs(args[:1])
	if err != nil {
		return c.errorHandler.Handle("set done ratio", err)
	}
	id := ids[0]

	ratio, err := strconv.Atoi(args[1])
	if err != nil {
		validationErr := validation.NewValidationError()
		validationErr.AddInvalidFormatError("ratio", args[1], "a whole number between 0 and 100")
		return c.errorHandler.Handle("set done ratio", validationErr)
	}
	if err := c.validator.ValidateDoneRatio(ratio); err != nil {
		return c.errorHandler.Handle("set done ratio", err)
	}

	issue, err := c.manager.LoadIssue(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("set done ratio", err)
	}

	if issue.SetDoneRatio(ratio) == domain.ChangedNothing {
		fmt.Printf("%s already at %d%%\n", issue.DisplayLine(), ratio)
		return nil
	}

	fmt.Printf("%s set to %d%%\n", issue.DisplayLine(), ratio)
	return nil
}
