package calendar

import (
	"time"

	"github.com/slotforge/slotforge/internal/civil"
)

// Segment tags which month a grid cell belongs to relative to the month
// being rendered.
type Segment int

const (
	SegmentPrevious Segment = iota
	SegmentCurrent
	SegmentNext
)

// DayBucket is one cell of a month grid.
type DayBucket struct {
	Segment Segment
	Day     int // day of month within the cell's own month
	Date    civil.Date
	Events  []Event
}

// Grid is a month laid out as leading days from the prior month, the
// month itself, and trailing days from the following month. The three
// lengths always sum to a multiple of 7.
type Grid struct {
	Previous []DayBucket
	Current  []DayBucket
	Next     []DayBucket
}

// Cells returns all buckets in display order.
func (g Grid) Cells() []DayBucket {
	out := make([]DayBucket, 0, len(g.Previous)+len(g.Current)+len(g.Next))
	out = append(out, g.Previous...)
	out = append(out, g.Current...)
	out = append(out, g.Next...)
	return out
}

// MonthGrid lays out year/month for a Sunday-start month view.
//
// Previous holds the trailing days of the prior month needed to fill the
// first row (as many entries as the weekday of day 1, earliest first).
// Next holds the leading days of the following month needed to complete
// the last row (6 minus the weekday of the last day; empty when the month
// ends on a Saturday).
//
// Out-of-range months roll over via time.Date normalization; the function
// performs no validation, so callers wanting strict inputs normalize
// before calling.
//
// When events is non-nil, every bucket carries the events that recur on
// its date per Event.OccursOn.
func MonthGrid(year int, month time.Month, events []Event) Grid {
	first := civil.FromTime(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
	lastDay := civil.DaysIn(first.Year, first.Month)
	last := civil.Date{Year: first.Year, Month: first.Month, Day: lastDay}

	var g Grid

	leading := int(first.Weekday())
	for i := leading; i > 0; i-- {
		d := first.AddDays(-i)
		g.Previous = append(g.Previous, bucket(SegmentPrevious, d, events))
	}

	for day := 1; day <= lastDay; day++ {
		d := civil.Date{Year: first.Year, Month: first.Month, Day: day}
		g.Current = append(g.Current, bucket(SegmentCurrent, d, events))
	}

	trailing := 6 - int(last.Weekday())
	for i := 1; i <= trailing; i++ {
		d := last.AddDays(i)
		g.Next = append(g.Next, bucket(SegmentNext, d, events))
	}

	return g
}

func bucket(seg Segment, d civil.Date, events []Event) DayBucket {
	b := DayBucket{Segment: seg, Day: d.Day, Date: d}
	if events == nil {
		return b
	}
	for _, ev := range events {
		if ev.OccursOn(d) {
			b.Events = append(b.Events, ev)
		}
	}
	return b
}

// WeekOf returns the seven dates of the Sunday-start week containing
// anchor, in weekday order.
func WeekOf(anchor civil.Date) [7]civil.Date {
	var week [7]civil.Date
	sunday := anchor.AddDays(-int(anchor.Weekday()))
	for i := 0; i < 7; i++ {
		week[i] = sunday.AddDays(i)
	}
	return week
}
