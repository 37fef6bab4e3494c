package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/cascal/internal/planner/domain"
	"github.com/google/uuid"
)

// PreviewBlockShiftQuery computes what a block shift would do without
// mutating anything.
type PreviewBlockShiftQuery struct {
	EntryID  uuid.UUID
	NewStart *time.Time
	NewEnd   *time.Time
}

// BlockShiftPreview summarizes the followers a shift would drag along.
type BlockShiftPreview struct {
	BetaDays     int
	HasFollowers bool
	Count        int
	FirstStart   time.Time
	LastStart    time.Time
}

// PreviewBlockShiftHandler handles the PreviewBlockShiftQuery.
type PreviewBlockShiftHandler struct {
	entryRepo domain.EntryRepository
}

// NewPreviewBlockShiftHandler creates a new PreviewBlockShiftHandler.
func NewPreviewBlockShiftHandler(entryRepo domain.EntryRepository) *PreviewBlockShiftHandler {
	return &PreviewBlockShiftHandler{entryRepo: entryRepo}
}

// Handle executes the PreviewBlockShiftQuery.
func (h *PreviewBlockShiftHandler) Handle(ctx context.Context, q PreviewBlockShiftQuery) (*BlockShiftPreview, error) {
	entry, err := h.entryRepo.FindByID(ctx, q.EntryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("entry %s: %w", q.EntryID, domain.ErrEntryNotFound)
	}

	newStart := entry.Start()
	if q.NewStart != nil {
		newStart = domain.Day(*q.NewStart)
	}
	newEnd := newStart
	if q.NewEnd != nil && !q.NewEnd.Before(newStart) {
		newEnd = domain.Day(*q.NewEnd)
	}
	beta := domain.DaysBetween(entry.End(), newEnd)

	preview := &BlockShiftPreview{BetaDays: beta}
	if beta == 0 {
		return preview, nil
	}

	fetched, err := h.entryRepo.FindByDateRange(ctx,
		entry.Start(),
		entry.Start().AddDate(0, 0, previewWindowDays),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch followers: %w", err)
	}

	for _, e := range fetched {
		if e.ID() == entry.ID() || e.Immovable() || e.Start().Before(entry.Start()) {
			continue
		}
		if !preview.HasFollowers || e.Start().Before(preview.FirstStart) {
			preview.FirstStart = e.Start()
		}
		if !preview.HasFollowers || e.Start().After(preview.LastStart) {
			preview.LastStart = e.Start()
		}
		preview.HasFollowers = true
		preview.Count++
	}
	return preview, nil
}
