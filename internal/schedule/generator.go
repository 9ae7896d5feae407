package schedule

import (
	"github.com/google/uuid"

	"github.com/slotforge/slotforge/internal/civil"
)

// defaultLabelLayout renders the presentation grouping key, e.g. "Mon Mar 2".
const defaultLabelLayout = "Mon Jan 2"

// Request describes one generation run. Capacity is the number of
// simultaneous bookable units emitted at each start time (parallel staff
// working the same service); it must be at least 1. Duration and range
// validity are caller contracts: a negative duration or zero capacity is
// an upstream bug, not something the generator papers over.
type Request struct {
	Service  Service
	From, To civil.Date // inclusive
	Capacity int
}

// Generator emits candidate slots from business-hour rules. The zero
// value generates in the host timezone with the default label.
type Generator struct {
	Zone Zone
	// Label derives the caller-chosen presentation key for a date. It is
	// a view over the slot, not part of its identity.
	Label func(civil.Date) string
}

// Generate walks every civil date in the inclusive range and emits the
// candidate slots that fit the day's working hours.
//
// Per open day the cursor starts at the window start and advances by the
// service duration, so slots are back-to-back for a single capacity
// unit. A slot window that straddles the day's break in any way is not
// emitted; the cursor jumps straight to the break's end instead of
// creeping forward, so no slot ever starts inside the break. Full
// containment on either side of the break is allowed.
//
// An inverted range, a closed day, or a day whose window cannot fit the
// service all contribute zero slots; none of them is an error.
func (g Generator) Generate(hours *BusinessHours, req Request) []CandidateSlot {
	if req.To.Before(req.From) {
		return nil
	}

	dur := req.Service.Duration
	var out []CandidateSlot

	for day := req.From; !day.After(req.To); day = day.AddDays(1) {
		win, open := hours.HoursFor(day.Weekday())
		if !open {
			continue
		}
		brk, hasBreak := hours.BreakFor(day.Weekday())
		label := g.labelFor(day)

		for t := win.Start; t+dur <= win.End; {
			if hasBreak && t < brk.End && t+dur > brk.Start {
				t = brk.End
				continue
			}
			start := g.Zone.At(day, t).UTC()
			for i := 0; i < req.Capacity; i++ {
				out = append(out, CandidateSlot{
					LocalID:   uuid.NewString(),
					ServiceID: req.Service.ID,
					Time:      start,
					Label:     label,
				})
			}
			t += dur
		}
	}
	return out
}

func (g Generator) labelFor(day civil.Date) string {
	if g.Label != nil {
		return g.Label(day)
	}
	return g.Zone.At(day, 0).Format(defaultLabelLayout)
}
