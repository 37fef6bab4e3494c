package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/cascal/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateType = "Entry"

	RoutingKeyEntryScheduled = "planner.entry.scheduled"
	RoutingKeyEntryMoved     = "planner.entry.moved"
	RoutingKeyEntryRemoved   = "planner.entry.removed"
)

// EntryScheduled is emitted when a new entry is placed on the calendar.
type EntryScheduled struct {
	sharedDomain.BaseEvent
	Title     string    `json:"title"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// NewEntryScheduled creates an EntryScheduled event.
func NewEntryScheduled(entry *Entry) EntryScheduled {
	return EntryScheduled{
		BaseEvent: sharedDomain.NewBaseEvent(entry.ID(), AggregateType, RoutingKeyEntryScheduled),
		Title:     entry.Title(),
		StartDate: entry.Start(),
		EndDate:   entry.End(),
	}
}

// EntryMoved is emitted when a neighbor entry is relocated by a cascade or
// block shift.
type EntryMoved struct {
	sharedDomain.BaseEvent
	TriggerID    uuid.UUID `json:"trigger_id"`
	OldStartDate time.Time `json:"old_start_date"`
	OldEndDate   time.Time `json:"old_end_date"`
	NewStartDate time.Time `json:"new_start_date"`
	NewEndDate   time.Time `json:"new_end_date"`
}

// NewEntryMoved creates an EntryMoved event from an applied move.
func NewEntryMoved(m Move, triggerID uuid.UUID) EntryMoved {
	return EntryMoved{
		BaseEvent:    sharedDomain.NewBaseEvent(m.EntryID, AggregateType, RoutingKeyEntryMoved),
		TriggerID:    triggerID,
		OldStartDate: m.OldStart,
		OldEndDate:   m.OldEnd,
		NewStartDate: m.NewStart,
		NewEndDate:   m.NewEnd,
	}
}

// EntryRemoved is emitted when an entry is deleted.
type EntryRemoved struct {
	sharedDomain.BaseEvent
	Title string `json:"title"`
}

// NewEntryRemoved creates an EntryRemoved event.
func NewEntryRemoved(entry *Entry) EntryRemoved {
	return EntryRemoved{
		BaseEvent: sharedDomain.NewBaseEvent(entry.ID(), AggregateType, RoutingKeyEntryRemoved),
		Title:     entry.Title(),
	}
}
