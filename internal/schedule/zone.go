package schedule

import (
	"time"

	"github.com/slotforge/slotforge/internal/civil"
)

// Zone centralizes every "local time of day" conversion in the engine so
// tests can pin a timezone instead of depending on the host's. The zero
// value uses time.Local.
type Zone struct {
	loc *time.Location
}

// NewZone wraps a location; nil falls back to time.Local.
func NewZone(loc *time.Location) Zone {
	return Zone{loc: loc}
}

// LocalZone is the host-timezone Zone.
func LocalZone() Zone { return Zone{} }

// Location returns the underlying location, never nil.
func (z Zone) Location() *time.Location {
	if z.loc == nil {
		return time.Local
	}
	return z.loc
}

// At materializes a civil date plus an offset from local midnight as an
// instant in the zone.
func (z Zone) At(d civil.Date, offsetSeconds int) time.Time {
	return d.At(offsetSeconds, z.Location())
}

// DateOf returns the civil date of t as seen from the zone.
func (z Zone) DateOf(t time.Time) civil.Date {
	return civil.FromTime(t.In(z.Location()))
}

// MinutesOfDay returns t's minutes since local midnight in the zone.
func (z Zone) MinutesOfDay(t time.Time) int {
	lt := t.In(z.Location())
	return lt.Hour()*60 + lt.Minute()
}

// SecondsOfDay returns t's seconds since local midnight in the zone.
func (z Zone) SecondsOfDay(t time.Time) int {
	lt := t.In(z.Location())
	return lt.Hour()*3600 + lt.Minute()*60 + lt.Second()
}
