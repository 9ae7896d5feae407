// Package calendar builds month/week navigation grids and buckets
// appointment events into day-by-hour cells for rendering.
package calendar

import (
	"time"

	"github.com/slotforge/slotforge/internal/civil"
)

// Recurrence describes how an event repeats across civil dates.
type Recurrence int

const (
	// Never matches only the event's own date.
	Never Recurrence = iota
	// Daily matches every date.
	Daily
	// Weekly matches dates sharing the event's weekday.
	Weekly
	// Weekdays matches Monday through Friday.
	Weekdays
	// Monthly matches dates sharing the event's day-of-month.
	Monthly
	// Yearly matches dates sharing the event's day and month.
	Yearly
)

func (r Recurrence) String() string {
	switch r {
	case Never:
		return "never"
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Weekdays:
		return "weekdays"
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	default:
		return "unknown"
	}
}

// Event is a calendar entry to be placed on a grid. Appointment carries
// the caller's record untouched; the grid never inspects it.
type Event struct {
	ID          string
	Title       string
	Date        civil.Date
	StartHour   int // 0..23
	Recurrence  Recurrence
	Appointment any
}

// OccursOn reports whether the event lands on the given civil date under
// its recurrence rule. It is a pure predicate over (event, date).
func (e Event) OccursOn(d civil.Date) bool {
	switch e.Recurrence {
	case Daily:
		return true
	case Weekly:
		return e.Date.Weekday() == d.Weekday()
	case Weekdays:
		wd := d.Weekday()
		return wd >= time.Monday && wd <= time.Friday
	case Monthly:
		return e.Date.Day == d.Day
	case Yearly:
		return e.Date.Day == d.Day && e.Date.Month == d.Month
	default:
		return e.Date.Equal(d)
	}
}
