package domain

import "time"

// Interval is an inclusive day-granularity date range. Both Start and End are
// occupied days; a one-day interval has Start == End.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Day truncates a timestamp to midnight UTC. All interval arithmetic works on
// day boundaries.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NewInterval normalizes a pair of dates into an interval. A zero end falls
// back to the start date; an inverted pair is swapped so the earlier date
// becomes the start.
func NewInterval(start, end time.Time) Interval {
	s := Day(start)
	e := s
	if !end.IsZero() {
		e = Day(end)
	}
	if e.Before(s) {
		s, e = e, s
	}
	return Interval{Start: s, End: e}
}

// Days returns the inclusive span in days, always >= 1.
func (i Interval) Days() int {
	return DaysBetween(i.Start, i.End) + 1
}

// Overlaps reports whether two inclusive intervals share at least one day.
func (i Interval) Overlaps(other Interval) bool {
	start := i.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := i.End
	if other.End.Before(end) {
		end = other.End
	}
	return !start.After(end)
}

// Shift returns the interval moved by the given number of days. Negative
// values shift backward.
func (i Interval) Shift(days int) Interval {
	return Interval{
		Start: i.Start.AddDate(0, 0, days),
		End:   i.End.AddDate(0, 0, days),
	}
}

// Equal reports whether both intervals cover the same days.
func (i Interval) Equal(other Interval) bool {
	return i.Start.Equal(other.Start) && i.End.Equal(other.End)
}

// DaysBetween returns the signed number of days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}
