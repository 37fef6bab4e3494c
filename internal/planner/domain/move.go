package domain

import (
	"time"

	"github.com/google/uuid"
)

// Move is one planned relocation of an existing entry. Moves are plan
// records, not entities; they only exist inside a single planning result and
// the duration of the entry is always preserved.
type Move struct {
	EntryID  uuid.UUID
	OldStart time.Time
	OldEnd   time.Time
	NewStart time.Time
	NewEnd   time.Time
}

// OldInterval returns the interval before the move.
func (m Move) OldInterval() Interval {
	return Interval{Start: m.OldStart, End: m.OldEnd}
}

// NewInterval returns the interval after the move.
func (m Move) NewInterval() Interval {
	return Interval{Start: m.NewStart, End: m.NewEnd}
}
