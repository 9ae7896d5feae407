// Package civil provides timezone-independent calendar dates and the
// small amount of date arithmetic the scheduling engine needs.
package civil

import (
	"fmt"
	"time"
)

// Date is a calendar date (year, month, day) with no time-of-day or
// timezone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// FromTime extracts the civil date of t in t's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current civil date in loc. A nil loc means time.Local.
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return FromTime(time.Now().In(loc))
}

// At materializes the date as an instant: local midnight in loc plus
// offset seconds. Out-of-range fields roll over the same way time.Date
// normalizes them; no validation is performed here.
func (d Date) At(offsetSeconds int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, offsetSeconds, 0, loc)
}

// AddDays returns the date n days after d (n may be negative). Month and
// year rollovers are handled by time.Date normalization.
func (d Date) AddDays(n int) Date {
	return FromTime(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

// Weekday returns the day of week, Sunday = 0.
func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// Compare returns -1, 0 or +1 ordering d against other.
func (d Date) Compare(other Date) int {
	a := d.Year*10000 + int(d.Month)*100 + d.Day
	b := other.Year*10000 + int(other.Month)*100 + other.Day
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }
func (d Date) Equal(other Date) bool  { return d == other }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("civil: parse date %q: %w", s, err)
	}
	return FromTime(t), nil
}

// DaysIn reports the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
