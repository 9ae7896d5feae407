package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// overlapZone pins the local-minutes conversion for these tests.
var overlapZone = NewZone(time.FixedZone("UTC-6", -6*3600))

// at builds a UTC instant whose local wall clock in overlapZone is the
// given hour/minute on the shared test Monday.
func at(hour, minute int) time.Time {
	return monday.At(hour*3600+minute*60, overlapZone.Location()).UTC()
}

func TestFindOverlapsSameService(t *testing.T) {
	target := Target{ServiceID: 1, Time: at(10, 0), Duration: 1800}
	existing := []PersistedSlot{
		{ID: 10, ServiceID: 1, Time: at(10, 15)},
		{ID: 11, ServiceID: 2, Time: at(10, 15)},
	}

	got := FindOverlaps(overlapZone, target, existing)

	require.Len(t, got, 1)
	assert.Equal(t, int64(10), got[0].ID)
}

func TestFindOverlapsBoundaryAsymmetry(t *testing.T) {
	// 30-minute target at 10:00. An existing slot ending exactly at 10:00
	// (it starts at 09:30) conflicts; one starting exactly at 10:30 does not.
	target := Target{ServiceID: 1, Time: at(10, 0), Duration: 1800}

	tests := []struct {
		name     string
		slotTime time.Time
		conflict bool
	}{
		{"ends exactly at target start", at(9, 30), true},
		{"just before that boundary", at(9, 29), false},
		{"same start time", at(10, 0), true},
		{"inside target window", at(10, 15), true},
		{"last conflicting minute", at(10, 29), true},
		{"starts exactly at target end", at(10, 30), false},
		{"well after", at(11, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindOverlaps(overlapZone, target, []PersistedSlot{
				{ID: 1, ServiceID: 1, Time: tt.slotTime},
			})
			if tt.conflict {
				assert.Len(t, got, 1)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestFindOverlapsPreservesInputOrder(t *testing.T) {
	target := Target{ServiceID: 1, Time: at(10, 0), Duration: 3600}
	existing := []PersistedSlot{
		{ID: 3, ServiceID: 1, Time: at(10, 45)},
		{ID: 1, ServiceID: 1, Time: at(10, 5)},
		{ID: 2, ServiceID: 1, Time: at(10, 30)},
	}

	got := FindOverlaps(overlapZone, target, existing)

	require.Len(t, got, 3)
	assert.Equal(t, []int64{got[0].ID, got[1].ID, got[2].ID}, []int64{3, 1, 2})
}

func TestFindOverlapsEmptyCorpus(t *testing.T) {
	target := Target{ServiceID: 1, Time: at(10, 0), Duration: 1800}
	assert.Empty(t, FindOverlaps(overlapZone, target, nil))
}

func TestFindOverlapsZoneMatters(t *testing.T) {
	// The same instants compared under different zones still conflict the
	// same way because both sides shift together, but the computed local
	// minutes differ; pin that DateOf/MinutesOfDay run through the zone.
	target := Target{ServiceID: 1, Time: at(10, 0), Duration: 1800}
	other := NewZone(time.FixedZone("UTC+1", 3600))

	assert.Equal(t, 600, overlapZone.MinutesOfDay(target.Time))
	assert.Equal(t, (10+7)*60, other.MinutesOfDay(target.Time))

	got := FindOverlaps(other, target, []PersistedSlot{{ID: 1, ServiceID: 1, Time: at(10, 15)}})
	assert.Len(t, got, 1)
}
