package commands

import (
	"time"

	"github.com/felixgeelhaar/cascal/internal/planner/domain"
	"github.com/google/uuid"
)

// EntryPatch is a partial field update. Nil fields keep the entry's current
// value; dates are handled separately by the reschedule logic.
type EntryPatch struct {
	Title            *string
	Description      *string
	ReferenceID      *uuid.UUID
	Start            *time.Time
	End              *time.Time
	Locked           *bool
	Fixed            *bool
	Reminder         *bool
	RemindDaysBefore *int
}

// applyFields copies the non-date fields onto the entry.
func (p EntryPatch) applyFields(e *domain.Entry) {
	if p.Title != nil {
		e.Rename(*p.Title)
	}
	if p.Description != nil {
		e.SetDescription(*p.Description)
	}
	if p.ReferenceID != nil {
		e.SetReference(*p.ReferenceID)
	}
	if p.Locked != nil {
		e.SetLocked(*p.Locked)
	}
	if p.Fixed != nil {
		e.SetFixed(*p.Fixed)
	}
	if p.Reminder != nil || p.RemindDaysBefore != nil {
		reminder := e.Reminder()
		days := e.RemindDaysBefore()
		if p.Reminder != nil {
			reminder = *p.Reminder
		}
		if p.RemindDaysBefore != nil {
			days = *p.RemindDaysBefore
		}
		e.SetReminder(reminder, days)
	}
}

// locksTarget reports whether the patched entry ends up locked or fixed.
func (p EntryPatch) locksTarget(e *domain.Entry) bool {
	locked := e.Locked()
	fixed := e.Fixed()
	if p.Locked != nil {
		locked = *p.Locked
	}
	if p.Fixed != nil {
		fixed = *p.Fixed
	}
	return locked || fixed
}

// newInterval resolves the patched dates. The start falls back to the
// entry's current start; a missing end falls back to the new start, so a
// start-only update collapses the entry to a single day.
func (p EntryPatch) newInterval(e *domain.Entry) domain.Interval {
	start := e.Start()
	if p.Start != nil {
		start = *p.Start
	}
	end := start
	if p.End != nil {
		end = *p.End
	}
	return domain.NewInterval(start, end)
}
