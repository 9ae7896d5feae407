package planner

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotforge/slotforge/internal/civil"
	"github.com/slotforge/slotforge/internal/observability/metrics"
	"github.com/slotforge/slotforge/internal/schedule"
)

var (
	testZone = schedule.NewZone(time.FixedZone("UTC-6", -6*3600))
	monday   = civil.Date{Year: 2026, Month: time.March, Day: 2}
)

func testHours(t *testing.T) *schedule.BusinessHours {
	t.Helper()
	bh, err := schedule.NewBusinessHours(
		[]schedule.WeekdayRule{{Weekday: time.Monday, Start: 9 * 3600, End: 17 * 3600}},
		[]schedule.WeekdayRule{{Weekday: time.Monday, Start: 12 * 3600, End: 13 * 3600}},
	)
	require.NoError(t, err)
	return bh
}

func newTestPlanner(t *testing.T, store SlotStore) *Planner {
	t.Helper()
	m := metrics.NewSchedulingMetrics(prometheus.NewRegistry())
	return New(store, testHours(t), testZone, nil, m)
}

// shortfallStore drops the last n requested slots to simulate partial
// persistence.
type shortfallStore struct {
	*MemoryStore
	drop int
}

func (s *shortfallStore) BulkCreate(ctx context.Context, slots []schedule.CandidateSlot) ([]schedule.PersistedSlot, error) {
	if len(slots) > s.drop {
		slots = slots[:len(slots)-s.drop]
	}
	return s.MemoryStore.BulkCreate(ctx, slots)
}

func TestNewRequiresCollaborators(t *testing.T) {
	assert.Panics(t, func() { New(nil, testHours(t), testZone, nil, nil) })
	assert.Panics(t, func() { New(NewMemoryStore(testZone), nil, testZone, nil, nil) })
}

func TestStageAndPublish(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(testZone)
	p := newTestPlanner(t, store)

	svc := schedule.Service{ID: 1, Name: "Consultation", Duration: 1800}
	slots := p.Stage(ctx, svc, monday, monday, 1)
	require.Len(t, slots, 14) // 09:00-17:00 minus the 12:00-13:00 break

	res, err := p.Publish(ctx, slots)
	require.NoError(t, err)
	assert.Len(t, res.Created, 14)
	assert.False(t, res.Partial())

	stored, err := store.ListByDate(ctx, monday)
	require.NoError(t, err)
	assert.Len(t, stored, 14)
}

func TestPublishPartial(t *testing.T) {
	ctx := context.Background()
	store := &shortfallStore{MemoryStore: NewMemoryStore(testZone), drop: 3}
	p := newTestPlanner(t, store)

	svc := schedule.Service{ID: 1, Name: "Consultation", Duration: 1800}
	slots := p.Stage(ctx, svc, monday, monday, 1)

	res, err := p.Publish(ctx, slots)
	require.NoError(t, err)
	assert.True(t, res.Partial())
	assert.Len(t, res.Created, len(slots)-3)
	require.Len(t, res.Unpersisted, 3)

	// The undelivered candidates are exactly the dropped tail.
	for i, c := range res.Unpersisted {
		assert.Equal(t, slots[len(slots)-3+i].Time, c.Time)
	}
}

func TestConflictsRequiresLoadedDay(t *testing.T) {
	ctx := context.Background()
	p := newTestPlanner(t, NewMemoryStore(testZone))

	target := schedule.Target{ServiceID: 1, Time: testZone.At(monday, 10*3600).UTC(), Duration: 1800}

	_, err := p.Conflicts(target)
	assert.ErrorIs(t, err, ErrDayNotLoaded)

	state, n := p.DayState(monday)
	assert.Equal(t, DayNotLoaded, state)
	assert.Zero(t, n)

	count, err := p.LoadDay(ctx, monday)
	require.NoError(t, err)
	assert.Zero(t, count)

	state, _ = p.DayState(monday)
	assert.Equal(t, DayLoadedEmpty, state)

	overlaps, err := p.Conflicts(target)
	require.NoError(t, err)
	assert.Empty(t, overlaps)
}

func TestConflictsAgainstPublishedSlots(t *testing.T) {
	ctx := context.Background()
	p := newTestPlanner(t, NewMemoryStore(testZone))

	svc := schedule.Service{ID: 1, Name: "Consultation", Duration: 1800}
	slots := p.Stage(ctx, svc, monday, monday, 1)
	_, err := p.Publish(ctx, slots)
	require.NoError(t, err)

	n, err := p.LoadDay(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, 14, n)

	state, count := p.DayState(monday)
	assert.Equal(t, DayLoaded, state)
	assert.Equal(t, 14, count)

	// 10:15 lands inside the 10:00 and 10:30 windows of the same service.
	target := schedule.Target{ServiceID: 1, Time: testZone.At(monday, 10*3600+15*60).UTC(), Duration: 1800}
	overlaps, err := p.Conflicts(target)
	require.NoError(t, err)
	assert.Len(t, overlaps, 2)

	// A different service never conflicts.
	other := schedule.Target{ServiceID: 9, Time: target.Time, Duration: 1800}
	overlaps, err = p.Conflicts(other)
	require.NoError(t, err)
	assert.Empty(t, overlaps)
}

func TestPublishAbsorbsIntoLoadedCorpus(t *testing.T) {
	ctx := context.Background()
	p := newTestPlanner(t, NewMemoryStore(testZone))

	_, err := p.LoadDay(ctx, monday)
	require.NoError(t, err)

	svc := schedule.Service{ID: 1, Name: "Consultation", Duration: 1800}
	slots := p.Stage(ctx, svc, monday, monday, 1)
	_, err = p.Publish(ctx, slots)
	require.NoError(t, err)

	// No reload needed: the published slots already count.
	state, count := p.DayState(monday)
	assert.Equal(t, DayLoaded, state)
	assert.Equal(t, 14, count)

	target := schedule.Target{ServiceID: 1, Time: testZone.At(monday, 9*3600).UTC(), Duration: 1800}
	overlaps, err := p.Conflicts(target)
	require.NoError(t, err)
	assert.NotEmpty(t, overlaps)
}
