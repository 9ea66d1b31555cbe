package domain

import (
	"fmt"
	"time"
)

// Month identifies one calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing the given date.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Start returns the first day of the month.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last day of the month.
func (m Month) End() time.Time {
	return m.Start().AddDate(0, 1, -1)
}

// Days returns every day of the month in order.
func (m Month) Days() []time.Time {
	days := make([]time.Time, 0, 31)
	for d := m.Start(); d.Month() == m.Month; d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Prev returns the preceding month.
func (m Month) Prev() Month {
	return MonthOf(m.Start().AddDate(0, -1, 0))
}

// Next returns the following month.
func (m Month) Next() Month {
	return MonthOf(m.Start().AddDate(0, 1, 0))
}

// Contains reports whether the date falls inside the month.
func (m Month) Contains(date time.Time) bool {
	return date.Year() == m.Year && date.Month() == m.Month
}

// String renders the month as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// DateOf normalizes a time to its calendar day, midnight UTC. All
// spent-on dates in the module are normalized through this so day
// comparison is plain equality.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}
