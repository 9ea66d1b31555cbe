package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"redmine-hours/internal/errors"
)

// Issue represents a remote work item time can be logged against.
// Secondary data (spent hours, estimate, completion) is fetched lazily
// through LoadDetails and cached for the session.
//
// Issues are deduplicated by id within a session; the tracker hands out
// at most one instance per id.
type Issue struct {
	ID             int
	Project        string
	Subject        string
	Description    string
	EstimatedHours Hours
	SpentHours     Hours
	DoneRatio      int

	syncedRatio int
}

// issueRow is the wire shape of one issue in the server's JSON.
type issueRow struct {
	ID      int `json:"id"`
	Project struct {
		Name string `json:"name"`
	} `json:"project"`
	Subject        string   `json:"subject"`
	Description    string   `json:"description"`
	EstimatedHours *float64 `json:"estimated_hours"`
	SpentHours     *float64 `json:"spent_hours"`
	DoneRatio      int      `json:"done_ratio"`
}

// issueDetails is the envelope of a single-issue response.
type issueDetails struct {
	Issue issueRow `json:"issue"`
}

// issueList is the envelope of a multi-issue lookup response.
type issueList struct {
	Issues []issueRow `json:"issues"`
}

// NewIssue creates an issue known only by id, as referenced from a
// fetched time entry. Details stay unloaded until requested.
func NewIssue(id int) *Issue {
	return &Issue{
		ID:             id,
		EstimatedHours: UnloadedHours(),
		SpentHours:     UnloadedHours(),
	}
}

// applyRow fills the issue from its wire shape and marks details loaded.
func (i *Issue) applyRow(row issueRow) {
	i.Project = row.Project.Name
	i.Subject = row.Subject
	i.Description = row.Description
	i.EstimatedHours = hoursFromWire(row.EstimatedHours)
	i.SpentHours = hoursFromWire(row.SpentHours)
	i.DoneRatio = row.DoneRatio
	i.syncedRatio = row.DoneRatio
}

// hoursFromWire maps an optional wire value onto the three-state Hours.
func hoursFromWire(value *float64) Hours {
	if value == nil {
		return NoHours()
	}
	return HoursOf(*value)
}

// DetailsLoaded returns true once spent/estimated hours and completion
// have been fetched.
func (i *Issue) DetailsLoaded() bool {
	return i.SpentHours.Loaded() && i.EstimatedHours.Loaded()
}

// LoadDetails fetches spent hours, estimate and completion for the
// issue. It is a no-op when the details are already cached, so callers
// may invoke it unconditionally.
func (i *Issue) LoadDetails(ctx context.Context, transport Transport) error {
	if i.DetailsLoaded() {
		return nil
	}

	raw, err := transport.Get(ctx, fmt.Sprintf("/issues/%d.json", i.ID), nil)
	if err != nil {
		return err
	}

	var details issueDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		return errors.NewParseError(fmt.Sprintf("issue #%d", i.ID), err)
	}

	i.applyRow(details.Issue)
	return nil
}

// SetDoneRatio updates the completion ratio (0-100) and reports what
// changed. Values outside the range are rejected.
func (i *Issue) SetDoneRatio(ratio int) Change {
	if ratio < 0 || ratio > 100 || ratio == i.DoneRatio {
		return ChangedNothing
	}
	i.DoneRatio = ratio
	return ChangedDoneRatio
}

// RequiresUpload returns true if the completion ratio diverged from the
// last synced state.
func (i *Issue) RequiresUpload() bool {
	return i.DoneRatio != i.syncedRatio
}

// Upload pushes a changed completion ratio to the server. A no-op when
// nothing diverged; on success the synced state is refreshed so a
// second call does nothing.
func (i *Issue) Upload(ctx context.Context, transport Transport) error {
	if !i.RequiresUpload() {
		return nil
	}

	body := map[string]interface{}{
		"issue": map[string]interface{}{
			"done_ratio": i.DoneRatio,
		},
	}
	status, err := transport.Put(ctx, fmt.Sprintf("/issues/%d.json", i.ID), body)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return errors.NewStatusError(fmt.Sprintf("updating issue #%d", i.ID), status)
	}

	i.syncedRatio = i.DoneRatio
	return nil
}

// DisplayLine renders the issue for list display.
func (i *Issue) DisplayLine() string {
	return fmt.Sprintf("#%d: %s", i.ID, i.Subject)
}

// ParseIssueList parses a multi-issue lookup response. The returned
// issues carry full details, since the lookup response includes them.
func ParseIssueList(raw json.RawMessage) ([]*Issue, error) {
	var list issueList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, errors.NewParseError("the issue list", err)
	}

	issues := make([]*Issue, 0, len(list.Issues))
	for _, row := range list.Issues {
		issue := NewIssue(row.ID)
		issue.applyRow(row)
		issues = append(issues, issue)
	}
	return issues, nil
}
