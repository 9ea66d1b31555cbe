// Package tracker owns the in-memory reconciliation state: the time
// entries and issues loaded for a session, which months have been
// fetched, and the logic that keeps them in sync with the server.
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"redmine-hours/internal/domain"
	"redmine-hours/internal/errors"
)

const (
	// pageLimit is the page size requested from the list endpoints.
	pageLimit = 100

	// carryOverDays is how far back PrepareDay looks for still-active
	// issues, and how much boundary overlap LoadMonth fetches for it.
	carryOverDays = 7
)

// timeEntriesPage is the wire shape of one page of the time entry list.
type timeEntriesPage struct {
	TimeEntries []timeEntryRow `json:"time_entries"`
	TotalCount  int            `json:"total_count"`
}

// timeEntryRow is the wire shape of one fetched time entry.
type timeEntryRow struct {
	ID    int `json:"id"`
	Issue struct {
		ID int `json:"id"`
	} `json:"issue"`
	SpentOn  string  `json:"spent_on"`
	Hours    float64 `json:"hours"`
	Comments string  `json:"comments"`
}

// Manager reconciles locally edited time entries against the server.
// It is the single owner of the loaded session state and is not safe
// for concurrent use: call it from one logical flow at a time. Network
// calls block; scheduling them off a UI loop is the caller's job.
type Manager struct {
	transport domain.Transport
	user      string

	entries []*domain.TimeEntry
	issues  map[int]*domain.Issue
	loaded  map[domain.Month]bool
	current time.Time
}

// NewManager creates a manager fetching entries for the given user
// ("me" when empty) over the given transport.
func NewManager(transport domain.Transport, user string) *Manager {
	if user == "" {
		user = "me"
	}
	return &Manager{
		transport: transport,
		user:      user,
		issues:    make(map[int]*domain.Issue),
		loaded:    make(map[domain.Month]bool),
	}
}

// issueByID returns the session's issue instance for an id, creating
// and registering it on first reference.
func (m *Manager) issueByID(id int) *domain.Issue {
	if issue, ok := m.issues[id]; ok {
		return issue
	}
	issue := domain.NewIssue(id)
	m.issues[id] = issue
	return issue
}

// FetchTimeEntries fetches every time entry of the user in [from, to]
// and adds it to the session, binding each entry to the deduplicated
// issue instance for its id. The list endpoint is paged; the loop
// advances the offset by the page size until total_count is reached.
func (m *Manager) FetchTimeEntries(ctx context.Context, user string, from, to time.Time) ([]*domain.TimeEntry, error) {
	var fetched []*domain.TimeEntry

	for offset := 0; ; offset += pageLimit {
		query := url.Values{}
		query.Set("user_id", user)
		query.Set("from", from.Format("2006-01-02"))
		query.Set("to", to.Format("2006-01-02"))
		query.Set("limit", strconv.Itoa(pageLimit))
		query.Set("offset", strconv.Itoa(offset))

		raw, err := m.transport.Get(ctx, "/time_entries.json", query)
		if err != nil {
			return nil, err
		}

		var page timeEntriesPage
		if err := json.Unmarshal(raw, &page); err != nil {
			return nil, errors.NewParseError("the time entry list", err)
		}

		for _, row := range page.TimeEntries {
			spentOn, err := time.Parse("2006-01-02", row.SpentOn)
			if err != nil {
				return nil, errors.NewParseError(fmt.Sprintf("the date of time entry #%d", row.ID), err)
			}
			issue := m.issueByID(row.Issue.ID)
			entry := domain.FetchedTimeEntry(row.ID, issue, spentOn, row.Hours, row.Comments)
			m.entries = append(m.entries, entry)
			fetched = append(fetched, entry)
		}

		if offset+pageLimit >= page.TotalCount || len(page.TimeEntries) == 0 {
			break
		}
	}

	logrus.Debugf("fetched %d time entries between %s and %s",
		len(fetched), from.Format("2006-01-02"), to.Format("2006-01-02"))
	return fetched, nil
}

// MonthLoaded reports whether a month has been fully fetched.
func (m *Manager) MonthLoaded(month domain.Month) bool {
	return m.loaded[month]
}

// LoadMonth fetches the month's time entries unless it is already
// loaded. The fetch window extends one carry-over week before the month
// unless the previous month is loaded, and stops one week before the
// month's end when the following month is loaded, since that month's
// fetch already covered the overlap. Afterwards the currently selected
// day, if any, is prepared.
func (m *Manager) LoadMonth(ctx context.Context, month domain.Month) error {
	if m.loaded[month] {
		return nil
	}

	from := month.Start().AddDate(0, 0, -carryOverDays)
	if m.loaded[month.Prev()] {
		from = month.Start()
	}
	to := month.End()
	if m.loaded[month.Next()] {
		to = to.AddDate(0, 0, -carryOverDays)
	}

	if _, err := m.FetchTimeEntries(ctx, m.user, from, to); err != nil {
		return err
	}
	m.loaded[month] = true

	if !m.current.IsZero() {
		return m.PrepareDay(ctx, m.current)
	}
	return nil
}

// SelectDay makes a date the current one and prepares it. The month is
// loaded first when needed, which prepares the day as a side effect.
func (m *Manager) SelectDay(ctx context.Context, date time.Time) error {
	m.current = domain.DateOf(date)

	month := domain.MonthOf(m.current)
	if !m.loaded[month] {
		return m.LoadMonth(ctx, month)
	}
	return m.PrepareDay(ctx, m.current)
}

// CurrentDay returns the selected day, or the zero time when none is
// selected.
func (m *Manager) CurrentDay() time.Time {
	return m.current
}

// PrepareDay seeds a day with carry-over entries: every issue worked on
// during the preceding week that is not yet represented on the day gets
// a zero-hour entry with the comment copied, oldest occurrence first.
// Afterwards details are loaded for every issue on the day; per-issue
// failures are collected and reported together once all issues were
// tried, leaving the successfully loaded ones intact.
func (m *Manager) PrepareDay(ctx context.Context, date time.Time) error {
	date = domain.DateOf(date)

	seen := make(map[int]bool)
	for _, entry := range m.entriesOn(date) {
		seen[entry.Issue.ID] = true
	}

	for offset := carryOverDays; offset >= 1; offset-- {
		day := date.AddDate(0, 0, -offset)
		for _, previous := range m.entriesOn(day) {
			if previous.Hours <= 0 || seen[previous.Issue.ID] {
				continue
			}
			carried := domain.NewTimeEntry(previous.Issue, date)
			carried.SetComments(previous.Comments)
			m.entries = append(m.entries, carried)
			seen[previous.Issue.ID] = true
		}
	}

	var details []error
	for _, entry := range m.entriesOn(date) {
		if err := entry.Issue.LoadDetails(ctx, m.transport); err != nil {
			logrus.Warnf("loading details of issue #%d failed: %v", entry.Issue.ID, err)
			details = append(details, err)
		}
	}
	if len(details) > 0 {
		return errors.NewAggregateError("some issue details could not be loaded", details)
	}
	return nil
}

// UploadAll pushes every pending change. Per-item failures are
// collected instead of aborting the batch; items uploaded before or
// after a failure stay uploaded. When anything failed, one aggregate
// error carrying every detail is returned.
func (m *Manager) UploadAll(ctx context.Context) error {
	var details []error

	for _, entry := range m.entries {
		if err := entry.Upload(ctx, m.transport); err != nil {
			logrus.Warnf("uploading a time entry for issue #%d failed: %v", entry.Issue.ID, err)
			details = append(details, err)
		}
	}
	for _, issue := range m.issues {
		if err := issue.Upload(ctx, m.transport); err != nil {
			logrus.Warnf("uploading issue #%d failed: %v", issue.ID, err)
			details = append(details, err)
		}
	}

	if len(details) > 0 {
		return errors.NewAggregateError("upload finished with errors", details)
	}
	return nil
}

// CreateTimeEntries adds a zero-hour entry on the current day for each
// given issue id. Ids unknown to the session are looked up remotely in
// one batch. Ids that do not resolve are reported as one warning-level
// error naming them, after every id that did resolve has been applied.
func (m *Manager) CreateTimeEntries(ctx context.Context, ids []int) error {
	date := m.current
	if date.IsZero() {
		date = domain.DateOf(time.Now())
	}

	var unknown []int
	for _, id := range ids {
		issue, ok := m.issues[id]
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		m.addEntry(issue, date)
	}

	if len(unknown) == 0 {
		return nil
	}

	resolved, err := m.lookUpIssues(ctx, unknown)
	if err != nil {
		return err
	}

	var missing []int
	for _, id := range unknown {
		issue, ok := resolved[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		m.issues[id] = issue
		m.addEntry(issue, date)
	}

	if len(missing) > 0 {
		return errors.NewIssuesNotFoundError(missing)
	}
	return nil
}

// lookUpIssues batch-fetches issues by id, keyed by id in the result.
func (m *Manager) lookUpIssues(ctx context.Context, ids []int) (map[int]*domain.Issue, error) {
	formatted := make([]string, 0, len(ids))
	for _, id := range ids {
		formatted = append(formatted, strconv.Itoa(id))
	}
	query := url.Values{}
	query.Set("issue_id", strings.Join(formatted, ","))
	query.Set("status_id", "*")

	raw, err := m.transport.Get(ctx, "/issues.json", query)
	if err != nil {
		return nil, err
	}

	issues, err := domain.ParseIssueList(raw)
	if err != nil {
		return nil, err
	}

	resolved := make(map[int]*domain.Issue, len(issues))
	for _, issue := range issues {
		resolved[issue.ID] = issue
	}
	return resolved, nil
}

// addEntry creates a local entry for the issue on the date unless the
// day already carries one for that issue.
func (m *Manager) addEntry(issue *domain.Issue, date time.Time) *domain.TimeEntry {
	for _, entry := range m.entriesOn(date) {
		if entry.Issue.ID == issue.ID {
			return entry
		}
	}
	entry := domain.NewTimeEntry(issue, date)
	m.entries = append(m.entries, entry)
	return entry
}

// ClearAll forgets every loaded month, entry and issue. The next
// LoadMonth fetches from scratch.
func (m *Manager) ClearAll() {
	m.entries = nil
	m.issues = make(map[int]*domain.Issue)
	m.loaded = make(map[domain.Month]bool)
}

// HasChanges reports whether any entry or issue has something to
// upload.
func (m *Manager) HasChanges() bool {
	for _, entry := range m.entries {
		if entry.RequiresUpload() {
			return true
		}
	}
	for _, issue := range m.issues {
		if issue.RequiresUpload() {
			return true
		}
	}
	return false
}

// entriesOn returns the session's entries for one day.
func (m *Manager) entriesOn(date time.Time) []*domain.TimeEntry {
	var result []*domain.TimeEntry
	for _, entry := range m.entries {
		if domain.SameDay(entry.SpentOn, date) {
			result = append(result, entry)
		}
	}
	return result
}

// EntriesOn returns the entries booked on one day.
func (m *Manager) EntriesOn(date time.Time) []*domain.TimeEntry {
	return m.entriesOn(date)
}

// Entries returns every entry of the session.
func (m *Manager) Entries() []*domain.TimeEntry {
	return m.entries
}

// Issues returns every issue known to the session.
func (m *Manager) Issues() []*domain.Issue {
	result := make([]*domain.Issue, 0, len(m.issues))
	for _, issue := range m.issues {
		result = append(result, issue)
	}
	return result
}

// Issue returns the session's issue for an id, if it is known.
func (m *Manager) Issue(id int) (*domain.Issue, bool) {
	issue, ok := m.issues[id]
	return issue, ok
}

// LoadIssue returns the session's issue for an id with its details
// loaded, registering it and fetching the details when needed.
func (m *Manager) LoadIssue(ctx context.Context, id int) (*domain.Issue, error) {
	issue := m.issueByID(id)
	if err := issue.LoadDetails(ctx, m.transport); err != nil {
		return nil, err
	}
	return issue, nil
}

// SpentOn sums the hours booked on one day.
func (m *Manager) SpentOn(date time.Time) float64 {
	var total float64
	for _, entry := range m.entriesOn(date) {
		total += entry.Hours
	}
	return total
}

// SpentInMonth sums the hours booked in one month.
func (m *Manager) SpentInMonth(month domain.Month) float64 {
	var total float64
	for _, entry := range m.entries {
		if month.Contains(entry.SpentOn) {
			total += entry.Hours
		}
	}
	return total
}
