package calendar

import "github.com/slotforge/slotforge/internal/civil"

// Cell addresses one day-by-hour slot in a rendered week (or single-day)
// view. Day is the index into the days slice passed to BucketByHour, not
// a weekday.
type Cell struct {
	Day  int
	Hour int // 0..23
}

// BucketByHour places events into the cross product of days and the 24
// hours of each day. An event lands in (i, h) when its date equals
// days[i] exactly and its StartHour is h. Cells keep every matching
// event in input order; empty cells are omitted from the map. Truncation
// ("+N more") is a rendering concern, not done here.
//
// A single-day view passes a length-1 days slice; nothing else changes.
func BucketByHour(events []Event, days []civil.Date) map[Cell][]Event {
	out := make(map[Cell][]Event)
	for i, day := range days {
		for _, ev := range events {
			if ev.StartHour < 0 || ev.StartHour > 23 {
				continue
			}
			if ev.Date.Equal(day) {
				key := Cell{Day: i, Hour: ev.StartHour}
				out[key] = append(out[key], ev)
			}
		}
	}
	return out
}
