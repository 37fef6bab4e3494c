package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EntryRepository defines the interface for entry persistence. Range queries
// return an overlap-candidate superset; callers re-check overlaps precisely.
type EntryRepository interface {
	// Create persists a new entry.
	Create(ctx context.Context, entry *Entry) error

	// Update persists changes to an existing entry.
	Update(ctx context.Context, entry *Entry) error

	// Delete removes an entry.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds an entry by its ID. Returns nil, nil when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*Entry, error)

	// FindByDateRange returns entries whose interval overlaps the inclusive
	// [start, end] range.
	FindByDateRange(ctx context.Context, start, end time.Time) ([]*Entry, error)
}

// RescheduleRecordRepository defines persistence for move audit records.
type RescheduleRecordRepository interface {
	// Create stores a new reschedule record.
	Create(ctx context.Context, record RescheduleRecord) error

	// ListByEntry returns records where the entry was either moved or the
	// trigger, newest first.
	ListByEntry(ctx context.Context, entryID uuid.UUID) ([]RescheduleRecord, error)

	// ListByRange returns records recorded within [from, to], newest first.
	ListByRange(ctx context.Context, from, to time.Time) ([]RescheduleRecord, error)
}
