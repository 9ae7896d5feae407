// Package ics imports iCalendar events into the engine's calendar model,
// expanding recurrence rules into concrete occurrences inside a civil
// date window.
package ics

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/slotforge/slotforge/internal/calendar"
	"github.com/slotforge/slotforge/internal/civil"
	"github.com/slotforge/slotforge/internal/schedule"
	"github.com/slotforge/slotforge/pkg/logging"
)

// maxOccurrencesPerEvent caps RRULE expansion so a malformed rule cannot
// blow up an import.
const maxOccurrencesPerEvent = 1000

// Importer converts ICS payloads into calendar events in a fixed zone.
type Importer struct {
	zone   schedule.Zone
	logger *logging.Logger
}

// NewImporter constructs an importer. A nil logger falls back to the
// default logger.
func NewImporter(zone schedule.Zone, logger *logging.Logger) *Importer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Importer{zone: zone, logger: logger}
}

// Import parses an ICS payload and returns one calendar event per
// occurrence whose local date falls inside [from, to]. Recurring VEVENTs
// are expanded through their RRULE with EXDATEs removed; VEVENTs that
// override single instances (RECURRENCE-ID) are skipped. A VEVENT that
// fails to parse is logged and skipped so one bad entry cannot sink the
// whole import.
func (im *Importer) Import(r io.Reader, from, to civil.Date) ([]calendar.Event, error) {
	if to.Before(from) {
		return nil, errors.New("ics: import window end before start")
	}

	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("ics: parse calendar: %w", err)
	}

	windowStart := im.zone.At(from, 0)
	windowEnd := im.zone.At(to.AddDays(1), 0).Add(-time.Second)

	var out []calendar.Event
	for _, ve := range cal.Events() {
		events, err := im.expandEvent(ve, windowStart, windowEnd)
		if err != nil {
			im.logger.Warn("skipping unparseable vevent", "error", err)
			continue
		}
		out = append(out, events...)
	}
	return out, nil
}

func (im *Importer) expandEvent(ve *ical.VEvent, windowStart, windowEnd time.Time) ([]calendar.Event, error) {
	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return nil, errors.New("missing UID")
	}
	uid := uidProp.Value

	if ve.GetProperty("RECURRENCE-ID") != nil {
		// Instance overrides are not supported; the base expansion wins.
		im.logger.Debug("ignoring recurrence override", "uid", uid)
		return nil, nil
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return nil, fmt.Errorf("uid %s: no usable DTSTART: %w", uid, err)
	}

	title := ""
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		title = p.Value
	}

	rawRRule := ""
	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		rawRRule = p.Value
	}

	if rawRRule == "" {
		if start.Before(windowStart) || start.After(windowEnd) {
			return nil, nil
		}
		return []calendar.Event{im.toEvent(uid, title, start)}, nil
	}

	rule, err := rrule.StrToRRule(rawRRule)
	if err != nil {
		return nil, fmt.Errorf("uid %s: bad RRULE %q: %w", uid, rawRRule, err)
	}
	rule.DTStart(start)

	var set rrule.Set
	set.RRule(rule)
	for _, ex := range im.exDates(ve, start.Location()) {
		set.ExDate(ex)
	}

	occurrences := set.Between(windowStart.In(start.Location()), windowEnd.In(start.Location()), true)
	if len(occurrences) > maxOccurrencesPerEvent {
		im.logger.Warn("recurrence expansion truncated",
			"uid", uid,
			"cap", maxOccurrencesPerEvent,
		)
		occurrences = occurrences[:maxOccurrencesPerEvent]
	}

	events := make([]calendar.Event, 0, len(occurrences))
	for _, occ := range occurrences {
		events = append(events, im.toEvent(uid, title, occ))
	}
	return events, nil
}

// toEvent converts an occurrence instant into a grid event in the
// importer's zone. The occurrence start also keys the event ID so
// repeated instances of one UID stay distinguishable.
func (im *Importer) toEvent(uid, title string, start time.Time) calendar.Event {
	local := start.In(im.zone.Location())
	return calendar.Event{
		ID:         uid + "/" + local.Format(time.RFC3339),
		Title:      title,
		Date:       civil.FromTime(local),
		StartHour:  local.Hour(),
		Recurrence: calendar.Never,
	}
}

// exDates collects EXDATE values. Only the common UTC, local date-time
// and date-only forms are handled; anything else is logged and skipped.
func (im *Importer) exDates(ve *ical.VEvent, loc *time.Location) []time.Time {
	var out []time.Time
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			t, err := parseICSTime(part, loc)
			if err != nil {
				im.logger.Warn("ignoring unparseable EXDATE", "value", part, "error", err)
				continue
			}
			out = append(out, t)
		}
	}
	return out
}

func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	switch {
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	default:
		return time.ParseInLocation("20060102", v, loc)
	}
}
