package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"redmine-hours/internal/tracker"
	"redmine-hours/internal/validation"
)

// recordedGet captures one GET call made against the fake transport.
type recordedGet struct {
	path  string
	query url.Values
}

// fakeTransport scripts responses per path and records every call.
type fakeTransport struct {
	getFunc      func(path string, query url.Values) (string, error)
	postStatus   int
	putStatus    map[string]int
	deleteStatus map[string]int

	gets    []recordedGet
	posts   []interface{}
	puts    []string
	deletes []string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		postStatus:   201,
		putStatus:    make(map[string]int),
		deleteStatus: make(map[string]int),
	}
}

func (f *fakeTransport) Get(_ context.Context, path string, query url.Values) (json.RawMessage, error) {
	f.gets = append(f.gets, recordedGet{path: path, query: query})
	if f.getFunc == nil {
		return nil, fmt.Errorf("unexpected GET %s", path)
	}
	body, err := f.getFunc(path, query)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

func (f *fakeTransport) Post(_ context.Context, _ string, body interface{}) (int, error) {
	f.posts = append(f.posts, body)
	return f.postStatus, nil
}

func (f *fakeTransport) Put(_ context.Context, path string, _ interface{}) (int, error) {
	f.puts = append(f.puts, path)
	if status, ok := f.putStatus[path]; ok {
		return status, nil
	}
	return 200, nil
}

func (f *fakeTransport) Delete(_ context.Context, path string) (int, error) {
	f.deletes = append(f.deletes, path)
	if status, ok := f.deleteStatus[path]; ok {
		return status, nil
	}
	return 200, nil
}

// entriesBody builds a single-page time entry list response.
func entriesBody(rows ...string) string {
	return fmt.Sprintf(`{"time_entries": [%s], "total_count": %d, "offset": 0, "limit": 100}`,
		strings.Join(rows, ","), len(rows))
}

// entryRow builds one fetched time entry.
func entryRow(id, issueID int, spentOn string, hours float64, comments string) string {
	return fmt.Sprintf(`{"id": %d, "issue": {"id": %d}, "spent_on": %q, "hours": %v, "comments": %q}`,
		id, issueID, spentOn, hours, comments)
}

// issueBody builds a single-issue details response.
func issueBody(id int, subject string, doneRatio int) string {
	return fmt.Sprintf(`{"issue": {"id": %d, "subject": %q, "project": {"name": "P"}, "estimated_hours": 8, "spent_hours": 1, "done_ratio": %d}}`,
		id, subject, doneRatio)
}

// issueListBody builds a batch lookup response.
func issueListBody(rows ...string) string {
	return fmt.Sprintf(`{"issues": [%s]}`, strings.Join(rows, ","))
}

// issueRowJSON builds one issue of a batch lookup response.
func issueRowJSON(id int, subject string) string {
	return fmt.Sprintf(`{"id": %d, "subject": %q, "project": {"name": "P"}, "estimated_hours": 8, "spent_hours": 1, "done_ratio": 10}`,
		id, subject)
}

// serveIssueDetails answers /issues/N.json for any N.
func serveIssueDetails(path string) (string, bool) {
	var id int
	if n, err := fmt.Sscanf(path, "/issues/%d.json", &id); n == 1 && err == nil {
		return issueBody(id, fmt.Sprintf("issue %d", id), 10), true
	}
	return "", false
}

// serve wires the usual pair of endpoints: a scripted time entry list
// and generic issue details.
func serve(entries string) func(path string, query url.Values) (string, error) {
	return func(path string, query url.Values) (string, error) {
		if body, ok := serveIssueDetails(path); ok {
			return body, nil
		}
		if path == "/time_entries.json" {
			return entries, nil
		}
		return "", fmt.Errorf("unexpected GET %s", path)
	}
}

// withIssueLookup layers a scripted /issues.json batch lookup response
// over another handler.
func withIssueLookup(next func(path string, query url.Values) (string, error), body string) func(path string, query url.Values) (string, error) {
	return func(path string, query url.Values) (string, error) {
		if path == "/issues.json" {
			return body, nil
		}
		return next(path, query)
	}
}

// newTestRoot builds a root whose manager talks to the fake transport.
func newTestRoot(transport *fakeTransport) *RootCommand {
	return &RootCommand{
		validator: validation.NewInputValidator(),
		manager:   tracker.NewManager(transport, "me"),
	}
}

// fixNow pins timeNow for the duration of the test.
func fixNow(t *testing.T, fixed time.Time) {
	t.Helper()
	previous := timeNow
	timeNow = func() time.Time { return fixed }
	t.Cleanup(func() { timeNow = previous })
}
