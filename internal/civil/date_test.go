package civil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDaysRollover(t *testing.T) {
	tests := []struct {
		name string
		in   Date
		n    int
		want Date
	}{
		{"within month", Date{2026, time.March, 10}, 5, Date{2026, time.March, 15}},
		{"month rollover", Date{2026, time.January, 31}, 1, Date{2026, time.February, 1}},
		{"year rollover", Date{2025, time.December, 31}, 1, Date{2026, time.January, 1}},
		{"leap day", Date{2024, time.February, 28}, 1, Date{2024, time.February, 29}},
		{"non-leap skips to march", Date{2025, time.February, 28}, 1, Date{2025, time.March, 1}},
		{"negative across month", Date{2026, time.March, 1}, -1, Date{2026, time.February, 28}},
		{"zero", Date{2026, time.June, 15}, 0, Date{2026, time.June, 15}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.AddDays(tt.n))
		})
	}
}

func TestWeekday(t *testing.T) {
	// 2026-03-02 is a Monday.
	assert.Equal(t, time.Monday, Date{2026, time.March, 2}.Weekday())
	assert.Equal(t, time.Sunday, Date{2026, time.March, 1}.Weekday())
}

func TestCompareOrdering(t *testing.T) {
	a := Date{2026, time.March, 2}
	b := Date{2026, time.March, 3}
	c := Date{2026, time.April, 1}

	assert.True(t, a.Before(b))
	assert.True(t, c.After(b))
	assert.True(t, a.Equal(Date{2026, time.March, 2}))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, -1, a.Compare(c))
	assert.Equal(t, 1, c.Compare(a))
}

func TestParseAndString(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, Date{2024, time.February, 29}, d)
	assert.Equal(t, "2024-02-29", d.String())

	_, err = ParseDate("not-a-date")
	assert.Error(t, err)
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 29, DaysIn(2024, time.February))
	assert.Equal(t, 28, DaysIn(2025, time.February))
	assert.Equal(t, 31, DaysIn(2026, time.January))
	assert.Equal(t, 30, DaysIn(2026, time.April))
	assert.Equal(t, 31, DaysIn(2026, time.December))
}

func TestAt(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	d := Date{2026, time.March, 2}
	got := d.At(9*3600, loc)
	assert.Equal(t, time.Date(2026, time.March, 2, 9, 0, 0, 0, loc), got)
	assert.Equal(t, d, FromTime(got))
}
