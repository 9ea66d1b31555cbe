package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"redmine-hours/internal/domain"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestExpectedHours(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected float64
	}{
		{name: "normal monday", date: day(2024, time.March, 11), expected: 8.5},
		{name: "normal thursday", date: day(2024, time.March, 14), expected: 8.5},
		{name: "normal friday", date: day(2024, time.March, 15), expected: 7},
		{name: "normal saturday", date: day(2024, time.March, 16), expected: 0},
		{name: "normal sunday", date: day(2024, time.March, 17), expected: 0},
		{name: "summer monday in july", date: day(2024, time.July, 1), expected: 7},
		{name: "summer thursday in august", date: day(2024, time.August, 1), expected: 7},
		{name: "summer friday", date: day(2024, time.July, 5), expected: 7},
		{name: "summer saturday", date: day(2024, time.July, 6), expected: 0},
		{name: "summer sunday", date: day(2024, time.August, 4), expected: 0},
		{name: "first september day back on normal schedule", date: day(2025, time.September, 1), expected: 8.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpectedHours(tt.date))
		})
	}
}

func TestExpectedHours_WeekendsAlwaysZero(t *testing.T) {
	// Walk a full year so both schedule tables are covered.
	for d := day(2024, time.January, 1); d.Year() == 2024; d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			assert.Zerof(t, ExpectedHours(d), "weekend %s must have no expectation", d.Format("2006-01-02"))
		}
	}
}

func TestExpectedMonthHours(t *testing.T) {
	months := []domain.Month{
		{Year: 2024, Month: time.February},
		{Year: 2024, Month: time.June},
		{Year: 2024, Month: time.July},
		{Year: 2024, Month: time.August},
		{Year: 2024, Month: time.September},
	}

	for _, month := range months {
		t.Run(month.String(), func(t *testing.T) {
			var sum float64
			for _, d := range month.Days() {
				sum += ExpectedHours(d)
			}
			assert.Equal(t, sum, ExpectedMonthHours(month))
			assert.Positive(t, ExpectedMonthHours(month))
		})
	}
}

func TestDayStatus(t *testing.T) {
	today := day(2024, time.March, 13)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	tests := []struct {
		name     string
		expected float64
		spent    float64
		date     time.Time
		status   Status
	}{
		{name: "expectation met today is ok", expected: 8.5, spent: 8.5, date: today, status: StatusOK},
		{name: "nothing required and nothing done is not notable", expected: 0, spent: 0, date: yesterday, status: StatusNone},
		{name: "over-logged in the past is a problem", expected: 8.5, spent: 9, date: yesterday, status: StatusProblem},
		{name: "over-logged in the future is still a problem", expected: 8.5, spent: 9, date: tomorrow, status: StatusProblem},
		{name: "over-logged on a free day is a problem", expected: 0, spent: 1, date: tomorrow, status: StatusProblem},
		{name: "shortfall today is a warning", expected: 8.5, spent: 0, date: today, status: StatusWarning},
		{name: "shortfall yesterday is a problem", expected: 8.5, spent: 0, date: yesterday, status: StatusProblem},
		{name: "shortfall tomorrow is not due yet", expected: 8.5, spent: 0, date: tomorrow, status: StatusNone},
		{name: "partial hours today is a warning", expected: 7, spent: 3.5, date: today, status: StatusWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, DayStatus(tt.expected, tt.spent, tt.date, today))
		})
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "warning", StatusWarning.String())
	assert.Equal(t, "problem", StatusProblem.String())
	assert.Equal(t, "none", StatusNone.String())
}
