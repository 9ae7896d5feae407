package schedule

import "time"

// Target is the slot being tested against a date's existing corpus.
type Target struct {
	ServiceID int64
	Time      time.Time // UTC
	Duration  int       // seconds
}

// FindOverlaps reports which existing slots conflict with the target.
// Only slots for the target's service can conflict; different services
// never do. The caller supplies the full existing-slot corpus for the
// target's civil date — invoking this before that corpus is loaded is a
// precondition violation the detector does not defend against.
//
// Comparison happens in minutes of the local day under zone. An existing
// slot starting at sMin conflicts when
//
//	sMin ∈ [tMin-dur, tMin] ∪ [tMin, tMin+dur)
//
// The boundaries are deliberately uneven: an existing slot that ends
// exactly at the target's start still conflicts, while one that starts
// exactly at the target's end does not. This governs which direction of
// back-to-back booking is permitted and must not be "fixed".
//
// Output preserves input order; sorting for display is a caller concern.
func FindOverlaps(zone Zone, target Target, existing []PersistedSlot) []PersistedSlot {
	durMin := target.Duration / 60
	tMin := zone.MinutesOfDay(target.Time)
	lo := tMin - durMin
	hi := tMin + durMin

	var out []PersistedSlot
	for _, s := range existing {
		if s.ServiceID != target.ServiceID {
			continue
		}
		sMin := zone.MinutesOfDay(s.Time)
		if sMin >= lo && sMin < hi {
			out = append(out, s)
		}
	}
	return out
}
