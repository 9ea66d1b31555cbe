package domain

import "fmt"

// HoursState distinguishes an amount of hours that has not been fetched
// yet from one the server explicitly reports as absent.
type HoursState int

const (
	// HoursUnloaded means the value has not been requested from the
	// server yet.
	HoursUnloaded HoursState = iota

	// HoursNone means the server was asked and has no value (e.g. an
	// issue without an estimate).
	HoursNone

	// HoursSet means a concrete value is known.
	HoursSet
)

// Hours is an amount of hours that may be unloaded, explicitly absent,
// or a known value. It replaces negative-number sentinels so real data
// can never collide with the "not fetched" markers.
type Hours struct {
	state HoursState
	value float64
}

// UnloadedHours returns an Hours value that has not been fetched yet.
func UnloadedHours() Hours {
	return Hours{state: HoursUnloaded}
}

// NoHours returns an Hours value the server reported as absent.
func NoHours() Hours {
	return Hours{state: HoursNone}
}

// HoursOf returns a known Hours value.
func HoursOf(value float64) Hours {
	return Hours{state: HoursSet, value: value}
}

// State returns the state of the value.
func (h Hours) State() HoursState {
	return h.state
}

// Loaded returns true once the value has been fetched, whether or not
// the server had one.
func (h Hours) Loaded() bool {
	return h.state != HoursUnloaded
}

// Value returns the known value and true, or 0 and false when the value
// is unloaded or absent.
func (h Hours) Value() (float64, bool) {
	if h.state != HoursSet {
		return 0, false
	}
	return h.value, true
}

// String renders the value for display purposes.
func (h Hours) String() string {
	switch h.state {
	case HoursNone:
		return "-"
	case HoursSet:
		return fmt.Sprintf("%.2f", h.value)
	default:
		return "?"
	}
}
