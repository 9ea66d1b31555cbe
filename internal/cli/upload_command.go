package cli

import (
	"context"
	"fmt"

	"redmine-hours/internal/errors"
	"redmine-hours/internal/tracker"
)

// UploadCommand handles the upload command
type UploadCommand struct {
	manager      *tracker.Manager
	errorHandler *ErrorHandler
}

// NewUploadCommand creates a new upload command handler
func NewUploadCommand(r *RootCommand) *UploadCommand {
	return &UploadCommand{
		manager:      r.manager,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the upload command
func (c *UploadCommand) Execute(ctx context.Context, args []string) error {
	if !c.manager.HasChanges() {
		fmt.Println("Nothing to upload.")
		return nil
	}

	pending := c.pendingCount()
	err := c.manager.UploadAll(ctx)
	if err == nil {
		fmt.Printf("Uploaded %d change(s).\n", pending)
		return nil
	}

	if aggErr, ok := errors.AsAggregateError(err); ok {
		fmt.Printf("Uploaded %d change(s), %d failed:\n", pending-aggErr.Len(), aggErr.Len())
		for _, detail := range aggErr.Details {
			fmt.Printf("  %s\n", errors.GetUserMessage(detail))
		}
	}
	return c.errorHandler.Handle("upload changes", err)
}

// pendingCount counts the entries and issues diverging from the server
func (c *UploadCommand) pendingCount() int {
	count := 0
	for _, entry := range c.manager.Entries() {
		if entry.RequiresUpload() {
			count++
		}
	}
	for _, issue := range c.manager.Issues() {
		if issue.RequiresUpload() {
			count++
		}
	}
	return count
}
