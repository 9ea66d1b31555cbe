// Package schedule computes the hours a user is expected to log per day
// or month and derives the expected-vs-spent day status. All functions
// are pure; "today" is always an explicit parameter.
package schedule

import (
	"time"

	"redmine-hours/internal/domain"
)

// normalHours is the expected workload per weekday outside the summer
// months.
var normalHours = map[time.Weekday]float64{
	time.Monday:    8.5,
	time.Tuesday:   8.5,
	time.Wednesday: 8.5,
	time.Thursday:  8.5,
	time.Friday:    7,
}

// summerHours is the reduced workload during July and August.
var summerHours = map[time.Weekday]float64{
	time.Monday:    7,
	time.Tuesday:   7,
	time.Wednesday: 7,
	time.Thursday:  7,
	time.Friday:    7,
}

// Status classifies a day's spent hours against its expectation.
type Status int

const (
	// StatusNone means the day is not notable: nothing was required, or
	// the shortfall is not due yet.
	StatusNone Status = iota

	// StatusOK means the expectation was met exactly.
	StatusOK

	// StatusWarning means hours are still missing today.
	StatusWarning

	// StatusProblem means hours are missing on a past day, or more was
	// logged than expected.
	StatusProblem
)

// String returns the display name of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWarning:
		return "warning"
	case StatusProblem:
		return "problem"
	default:
		return "none"
	}
}

// ExpectedHours returns the hours expected to be logged on the given
// date. Weekends are always 0; July and August use the reduced summer
// table.
func ExpectedHours(date time.Time) float64 {
	if date.Month() == time.July || date.Month() == time.August {
		return summerHours[date.Weekday()]
	}
	return normalHours[date.Weekday()]
}

// ExpectedMonthHours returns the summed expectation over every day of
// the month.
func ExpectedMonthHours(month domain.Month) float64 {
	var total float64
	for _, day := range month.Days() {
		total += ExpectedHours(day)
	}
	return total
}

// DayStatus derives the status of a day from its expected and spent
// hours. Over-logging is always a problem; a met expectation of zero is
// not notable; a shortfall is a warning today, a problem in the past
// and not yet notable in the future. The checks apply in exactly this
// order.
func DayStatus(expected, spent float64, date, today time.Time) Status {
	if spent > expected {
		return StatusProblem
	}
	if spent == expected {
		if expected == 0 {
			return StatusNone
		}
		return StatusOK
	}
	if domain.SameDay(date, today) {
		return StatusWarning
	}
	if domain.DateOf(date).Before(domain.DateOf(today)) {
		return StatusProblem
	}
	return StatusNone
}
