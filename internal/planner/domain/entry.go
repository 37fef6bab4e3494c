package domain

import (
	"errors"
	"time"

	sharedDomain "github.com/felixgeelhaar/cascal/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrMissingStartDate = errors.New("entry requires a start date")
	ErrEntryNotFound    = errors.New("entry not found")
)

// Entry is a calendar entry occupying an inclusive range of days. Entries
// flagged locked or fixed are never relocated by the planner, though they
// still show up as overlap sources.
type Entry struct {
	sharedDomain.BaseEntity
	title            string
	description      string
	referenceID      uuid.UUID // linked order, uuid.Nil when standalone
	interval         Interval
	locked           bool
	fixed            bool
	reminder         bool
	remindDaysBefore int
}

// NewEntry creates a new entry. The end date defaults to the start date and
// inverted pairs are swapped, matching NewInterval.
func NewEntry(title, description string, start, end time.Time) (*Entry, error) {
	if start.IsZero() {
		return nil, ErrMissingStartDate
	}
	return &Entry{
		BaseEntity:  sharedDomain.NewBaseEntity(),
		title:       title,
		description: description,
		interval:    NewInterval(start, end),
	}, nil
}

func (e *Entry) Title() string          { return e.title }
func (e *Entry) Description() string    { return e.description }
func (e *Entry) ReferenceID() uuid.UUID { return e.referenceID }
func (e *Entry) Start() time.Time       { return e.interval.Start }
func (e *Entry) End() time.Time         { return e.interval.End }
func (e *Entry) Interval() Interval     { return e.interval }
func (e *Entry) Locked() bool           { return e.locked }
func (e *Entry) Fixed() bool            { return e.fixed }
func (e *Entry) Reminder() bool         { return e.reminder }
func (e *Entry) RemindDaysBefore() int  { return e.remindDaysBefore }

// Duration returns the inclusive length in days, always >= 1.
func (e *Entry) Duration() int {
	return e.interval.Days()
}

// Immovable reports whether the planner must leave this entry in place.
// Locked and fixed originate from different editor fields but carry the same
// immovability semantics.
func (e *Entry) Immovable() bool {
	return e.locked || e.fixed
}

// Overlaps reports whether this entry shares at least one day with the
// given interval.
func (e *Entry) Overlaps(other Interval) bool {
	return e.interval.Overlaps(other)
}

// Reschedule moves the entry to a new normalized interval.
func (e *Entry) Reschedule(start, end time.Time) error {
	if start.IsZero() {
		return ErrMissingStartDate
	}
	e.interval = NewInterval(start, end)
	e.Touch()
	return nil
}

// Rename updates the title.
func (e *Entry) Rename(title string) {
	e.title = title
	e.Touch()
}

// SetDescription updates the description.
func (e *Entry) SetDescription(description string) {
	e.description = description
	e.Touch()
}

// SetReference links the entry to an order; uuid.Nil clears the link.
func (e *Entry) SetReference(id uuid.UUID) {
	e.referenceID = id
	e.Touch()
}

// SetLocked toggles the user lock.
func (e *Entry) SetLocked(locked bool) {
	e.locked = locked
	e.Touch()
}

// SetFixed toggles the computed fixed-date flag.
func (e *Entry) SetFixed(fixed bool) {
	e.fixed = fixed
	e.Touch()
}

// SetReminder configures the due-date reminder.
func (e *Entry) SetReminder(enabled bool, daysBefore int) {
	e.reminder = enabled
	e.remindDaysBefore = daysBefore
	e.Touch()
}

// ReminderDueOn reports whether the reminder fires on the given day, i.e.
// the entry starts exactly remindDaysBefore days later.
func (e *Entry) ReminderDueOn(today time.Time) bool {
	if !e.reminder {
		return false
	}
	return DaysBetween(today, e.interval.Start) == e.remindDaysBefore
}

// RehydrateEntry recreates an entry from persisted state.
func RehydrateEntry(
	id uuid.UUID,
	title, description string,
	referenceID uuid.UUID,
	start, end time.Time,
	locked, fixed bool,
	reminder bool,
	remindDaysBefore int,
	createdAt, updatedAt time.Time,
) *Entry {
	return &Entry{
		BaseEntity:       sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		title:            title,
		description:      description,
		referenceID:      referenceID,
		interval:         NewInterval(start, end),
		locked:           locked,
		fixed:            fixed,
		reminder:         reminder,
		remindDaysBefore: remindDaysBefore,
	}
}
