package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/slotforge/slotforge/internal/civil"
)

func TestZoneZeroValueUsesLocal(t *testing.T) {
	var z Zone
	assert.Equal(t, time.Local, z.Location())
	assert.Equal(t, time.Local, LocalZone().Location())
	assert.Equal(t, time.Local, NewZone(nil).Location())
}

func TestZoneConversions(t *testing.T) {
	z := NewZone(time.FixedZone("UTC+2", 2*3600))
	d := civil.Date{Year: 2026, Month: time.March, Day: 2}

	at := z.At(d, 9*3600+30*60)
	assert.Equal(t, "2026-03-02T09:30:00+02:00", at.Format(time.RFC3339))

	utc := at.UTC()
	assert.Equal(t, 9*60+30, z.MinutesOfDay(utc))
	assert.Equal(t, 9*3600+30*60, z.SecondsOfDay(utc))
	assert.Equal(t, d, z.DateOf(utc))
}

func TestZoneDateOfCrossesMidnight(t *testing.T) {
	// 23:30 in UTC-6 is 05:30 UTC the next day; the zone decides the date.
	z := NewZone(time.FixedZone("UTC-6", -6*3600))
	d := civil.Date{Year: 2026, Month: time.March, Day: 2}

	utc := z.At(d, 23*3600+30*60).UTC()
	assert.Equal(t, civil.Date{Year: 2026, Month: time.March, Day: 3}, civil.FromTime(utc))
	assert.Equal(t, d, z.DateOf(utc))
	assert.Equal(t, 23*60+30, z.MinutesOfDay(utc))
}
