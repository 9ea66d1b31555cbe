package domain

// Change is the set of fields a mutating operation touched. Mutators
// return it instead of firing notifications, leaving batching and
// dispatch to the caller.
type Change uint8

const (
	// ChangedHours marks a change to an entry's booked hours.
	ChangedHours Change = 1 << iota

	// ChangedComments marks a change to an entry's comment text.
	ChangedComments

	// ChangedDoneRatio marks a change to an issue's completion ratio.
	ChangedDoneRatio
)

// ChangedNothing is the empty change set returned by rejected or
// no-op mutations.
const ChangedNothing Change = 0

// Has reports whether the set contains all of the given changes.
func (c Change) Has(changes Change) bool {
	return c&changes == changes
}
