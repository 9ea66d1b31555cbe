package domain

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"redmine-hours/internal/errors"
)

// spentOnFormat is the wire format of spent-on dates.
const spentOnFormat = "2006-01-02"

// entrySnapshot is the last known remote state of an entry. Absent for
// entries that have not been created on the server yet.
type entrySnapshot struct {
	hours    float64
	comments string
}

// TimeEntry represents hours spent on one issue on one date. It keeps a
// snapshot of its last synced remote state so the upload can send only
// the fields that actually diverged.
//
// An entry with ID 0 and no snapshot exists only locally.
type TimeEntry struct {
	ID       int
	Issue    *Issue
	SpentOn  time.Time
	Hours    float64
	Comments string

	snapshot *entrySnapshot
}

// NewTimeEntry creates a local-only entry for an issue on a date, with
// zero hours and no snapshot.
func NewTimeEntry(issue *Issue, spentOn time.Time) *TimeEntry {
	return &TimeEntry{
		Issue:   issue,
		SpentOn: DateOf(spentOn),
	}
}

// FetchedTimeEntry creates an entry from a remote row; the snapshot is
// the fetched state, so a fresh entry has nothing to upload.
func FetchedTimeEntry(id int, issue *Issue, spentOn time.Time, hours float64, comments string) *TimeEntry {
	return &TimeEntry{
		ID:       id,
		Issue:    issue,
		SpentOn:  DateOf(spentOn),
		Hours:    hours,
		Comments: comments,
		snapshot: &entrySnapshot{hours: hours, comments: comments},
	}
}

// IsNew returns true for entries that do not exist on the server yet.
func (e *TimeEntry) IsNew() bool {
	return e.snapshot == nil
}

// ChangeHours applies a delta to the booked hours. A delta that would
// push the total below zero is rejected entirely, leaving the current
// value untouched.
func (e *TimeEntry) ChangeHours(delta float64) Change {
	if delta == 0 || e.Hours+delta < 0 {
		return ChangedNothing
	}
	e.Hours += delta
	return ChangedHours
}

// SetComments replaces the comment text.
func (e *TimeEntry) SetComments(text string) Change {
	if text == e.Comments {
		return ChangedNothing
	}
	e.Comments = text
	return ChangedComments
}

// Changes returns the fields that diverged from the snapshot, keyed by
// their wire names. Entries without a snapshot additionally carry the
// issue id and date the create call needs. An empty map means there is
// nothing to send.
func (e *TimeEntry) Changes() map[string]interface{} {
	changes := make(map[string]interface{})

	if e.snapshot == nil {
		changes["issue_id"] = e.Issue.ID
		changes["spent_on"] = e.SpentOn.Format(spentOnFormat)
		changes["hours"] = e.Hours
		changes["comments"] = e.Comments
		return changes
	}

	if e.Hours != e.snapshot.hours {
		changes["hours"] = e.Hours
	}
	if e.Comments != e.snapshot.comments {
		changes["comments"] = e.Comments
	}
	return changes
}

// RequiresUpload returns true if uploading this entry would result in a
// network call. New entries without booked hours never upload: a remote
// entry must not be created with zero hours.
func (e *TimeEntry) RequiresUpload() bool {
	if e.snapshot == nil && e.Hours <= 0 {
		return false
	}
	return len(e.Changes()) > 0
}

// Upload synchronizes the entry with the server: creates it when it
// only exists locally, updates the diverged fields, or deletes it when
// an existing entry was zeroed out. On success the snapshot is
// refreshed, making a repeated call a no-op.
func (e *TimeEntry) Upload(ctx context.Context, transport Transport) error {
	if !e.RequiresUpload() {
		return nil
	}

	switch {
	case e.snapshot == nil:
		body := map[string]interface{}{"time_entry": e.Changes()}
		status, err := transport.Post(ctx, "/time_entries.json", body)
		if err != nil {
			return err
		}
		if status < 200 || status > 299 {
			return errors.NewStatusError(fmt.Sprintf("creating a time entry for issue #%d", e.Issue.ID), status)
		}

	case e.Hours > 0:
		body := map[string]interface{}{"time_entry": e.Changes()}
		status, err := transport.Put(ctx, fmt.Sprintf("/time_entries/%d.json", e.ID), body)
		if err != nil {
			return err
		}
		if status != http.StatusOK {
			return errors.NewStatusError(fmt.Sprintf("updating time entry #%d", e.ID), status)
		}

	default:
		// Zero hours on an existing remote entry means "remove it".
		status, err := transport.Delete(ctx, fmt.Sprintf("/time_entries/%d.json", e.ID))
		if err != nil {
			return err
		}
		if status != http.StatusOK {
			return errors.NewStatusError(fmt.Sprintf("deleting time entry #%d", e.ID), status)
		}
	}

	e.snapshot = &entrySnapshot{hours: e.Hours, comments: e.Comments}
	return nil
}
