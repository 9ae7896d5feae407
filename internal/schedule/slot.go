package schedule

import "time"

// CandidateSlot is a generated, not-yet-persisted bookable window. The
// LocalID exists only so callers can diff candidate lists between runs;
// it is never sent to storage as an identity.
type CandidateSlot struct {
	LocalID   string
	ServiceID int64
	Time      time.Time // UTC start of the window
	Label     string    // presentation grouping key, e.g. "Mon Mar 2"
}

// PersistedSlot is an existing storage-backed slot. The engine only
// looks at its time and service.
type PersistedSlot struct {
	ID        int64
	ServiceID int64
	Time      time.Time // UTC
}
