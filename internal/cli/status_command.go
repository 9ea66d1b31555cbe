package cli

import (
	"context"
	"fmt"
	"sort"

	"redmine-hours/internal/domain"
	"redmine-hours/internal/tracker"
)

// StatusCommand handles the status command
type StatusCommand struct {
	manager *tracker.Manager
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(r *RootCommand) *StatusCommand {
	return &StatusCommand{manager: r.manager}
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	if !c.manager.HasChanges() {
		fmt.Println("Nothing to upload.")
		return nil
	}

	for _, entry := range pendingEntries(c.manager.Entries()) {
		fmt.Printf("  %-6s #%d on %s: %.2f hours\n",
			entryAction(entry), entry.Issue.ID, entry.SpentOn.Format("2006-01-02"), entry.Hours)
	}
	for _, issue := range pendingIssues(c.manager.Issues()) {
		fmt.Printf("  done   %s: %d%%\n", issue.DisplayLine(), issue.DoneRatio)
	}
	return nil
}

// entryAction names the request an entry's upload would make
func entryAction(entry *domain.TimeEntry) string {
	switch {
	case entry.IsNew():
		return "create"
	case entry.Hours > 0:
		return "update"
	default:
		return "delete"
	}
}

func pendingEntries(entries []*domain.TimeEntry) []*domain.TimeEntry {
	var pending []*domain.TimeEntry
	for _, entry := range entries {
		if entry.RequiresUpload() {
			pending = append(pending, entry)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].SpentOn.Before(pending[j].SpentOn)
	})
	return pending
}

func pendingIssues(issues []*domain.Issue) []*domain.Issue {
	var pending []*domain.Issue
	for _, issue := range issues {
		if issue.RequiresUpload() {
			pending = append(pending, issue)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID < pending[j].ID })
	return pending
}
