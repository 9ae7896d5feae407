// Package schedule implements the slot scheduling engine: per-weekday
// business hours, candidate slot generation, and same-service overlap
// detection.
package schedule

import (
	"fmt"
	"time"
)

// secondsPerDay bounds rule offsets; rules never wrap midnight.
const secondsPerDay = 24 * 60 * 60

// Interval is a half-open window [Start, End) in seconds from local
// midnight.
type Interval struct {
	Start int
	End   int
}

// Duration returns the interval length in seconds.
func (i Interval) Duration() int { return i.End - i.Start }

func (i Interval) validate() error {
	if i.Start < 0 || i.End >= secondsPerDay {
		return fmt.Errorf("schedule: interval %d-%d outside [0, 86400)", i.Start, i.End)
	}
	if i.Start >= i.End {
		return fmt.Errorf("schedule: interval start %d not before end %d", i.Start, i.End)
	}
	return nil
}

// WeekdayRule attaches an interval to a day of the week. The same shape
// is used for working hours and for breaks.
type WeekdayRule struct {
	Weekday time.Weekday
	Start   int // seconds from local midnight
	End     int
}

// Service is the unit of work a slot must accommodate.
type Service struct {
	ID       int64
	Name     string
	Duration int // seconds, > 0
}

// BusinessHours answers per-weekday availability queries. At most one
// working-hour rule and one break rule per weekday; an absent entry
// means closed (hours) or no break (breaks).
type BusinessHours struct {
	hours  map[time.Weekday]Interval
	breaks map[time.Weekday]Interval
}

// NewBusinessHours builds the model from rule lists supplied by the
// settings collaborator. Rules must not wrap midnight and at most one of
// each kind may exist per weekday.
func NewBusinessHours(working, breaks []WeekdayRule) (*BusinessHours, error) {
	bh := &BusinessHours{
		hours:  make(map[time.Weekday]Interval, len(working)),
		breaks: make(map[time.Weekday]Interval, len(breaks)),
	}
	for _, r := range working {
		if err := addRule(bh.hours, r, "working-hour"); err != nil {
			return nil, err
		}
	}
	for _, r := range breaks {
		if err := addRule(bh.breaks, r, "break"); err != nil {
			return nil, err
		}
	}
	return bh, nil
}

func addRule(m map[time.Weekday]Interval, r WeekdayRule, kind string) error {
	if r.Weekday < time.Sunday || r.Weekday > time.Saturday {
		return fmt.Errorf("schedule: %s rule has invalid weekday %d", kind, r.Weekday)
	}
	iv := Interval{Start: r.Start, End: r.End}
	if err := iv.validate(); err != nil {
		return fmt.Errorf("%s rule for %s: %w", kind, r.Weekday, err)
	}
	if _, dup := m[r.Weekday]; dup {
		return fmt.Errorf("schedule: duplicate %s rule for %s", kind, r.Weekday)
	}
	m[r.Weekday] = iv
	return nil
}

// HoursFor returns the working-hour window for a weekday. ok is false
// when the day is closed; generation must skip such days entirely.
func (b *BusinessHours) HoursFor(day time.Weekday) (Interval, bool) {
	iv, ok := b.hours[day]
	return iv, ok
}

// BreakFor returns the break window for a weekday, if any.
func (b *BusinessHours) BreakFor(day time.Weekday) (Interval, bool) {
	iv, ok := b.breaks[day]
	return iv, ok
}
