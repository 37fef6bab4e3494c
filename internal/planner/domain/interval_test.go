package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewInterval(t *testing.T) {
	t.Run("truncates to day boundaries", func(t *testing.T) {
		iv := NewInterval(
			time.Date(2026, time.September, 1, 14, 30, 0, 0, time.UTC),
			time.Date(2026, time.September, 3, 9, 0, 0, 0, time.UTC),
		)
		assert.Equal(t, date(2026, time.September, 1), iv.Start)
		assert.Equal(t, date(2026, time.September, 3), iv.End)
	})

	t.Run("zero end falls back to start", func(t *testing.T) {
		iv := NewInterval(date(2026, time.September, 1), time.Time{})
		assert.Equal(t, iv.Start, iv.End)
		assert.Equal(t, 1, iv.Days())
	})

	t.Run("inverted pair is swapped", func(t *testing.T) {
		iv := NewInterval(date(2026, time.September, 5), date(2026, time.September, 2))
		assert.Equal(t, date(2026, time.September, 2), iv.Start)
		assert.Equal(t, date(2026, time.September, 5), iv.End)
	})
}

func TestInterval_Days(t *testing.T) {
	assert.Equal(t, 1, NewInterval(date(2026, time.March, 10), date(2026, time.March, 10)).Days())
	assert.Equal(t, 3, NewInterval(date(2026, time.March, 10), date(2026, time.March, 12)).Days())
}

func TestInterval_Overlaps(t *testing.T) {
	base := NewInterval(date(2026, time.March, 10), date(2026, time.March, 12))

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", NewInterval(date(2026, time.March, 10), date(2026, time.March, 12)), true},
		{"shared boundary day", NewInterval(date(2026, time.March, 12), date(2026, time.March, 14)), true},
		{"contained", NewInterval(date(2026, time.March, 11), date(2026, time.March, 11)), true},
		{"containing", NewInterval(date(2026, time.March, 8), date(2026, time.March, 15)), true},
		{"adjacent after", NewInterval(date(2026, time.March, 13), date(2026, time.March, 14)), false},
		{"adjacent before", NewInterval(date(2026, time.March, 8), date(2026, time.March, 9)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestInterval_Shift(t *testing.T) {
	iv := NewInterval(date(2026, time.March, 10), date(2026, time.March, 12))

	forward := iv.Shift(5)
	assert.Equal(t, date(2026, time.March, 15), forward.Start)
	assert.Equal(t, date(2026, time.March, 17), forward.End)
	assert.Equal(t, iv.Days(), forward.Days())

	backward := iv.Shift(-10)
	assert.Equal(t, date(2026, time.February, 28), backward.Start)
	assert.Equal(t, iv.Days(), backward.Days())
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(date(2026, time.March, 10), date(2026, time.March, 10)))
	assert.Equal(t, 2, DaysBetween(date(2026, time.March, 10), date(2026, time.March, 12)))
	assert.Equal(t, -2, DaysBetween(date(2026, time.March, 12), date(2026, time.March, 10)))
	// across a month boundary
	assert.Equal(t, 3, DaysBetween(date(2026, time.February, 27), date(2026, time.March, 2)))
}
