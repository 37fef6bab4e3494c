package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/cascal/internal/planner/application/services"
	"github.com/felixgeelhaar/cascal/internal/planner/domain"
	"github.com/google/uuid"
)

// previewWindowDays matches the candidate window used by the write side.
const previewWindowDays = 3650

// PreviewPlanQuery computes the moves a prospective interval would trigger
// without mutating anything. ExcludeID leaves an entry out of consideration,
// typically the entry being edited.
type PreviewPlanQuery struct {
	Start     time.Time
	End       time.Time
	ExcludeID uuid.UUID
	Plan      domain.PlanConfig
}

// PreviewPlanHandler handles the PreviewPlanQuery.
type PreviewPlanHandler struct {
	entryRepo domain.EntryRepository
	planner   *services.CascadePlanner
}

// NewPreviewPlanHandler creates a new PreviewPlanHandler.
func NewPreviewPlanHandler(entryRepo domain.EntryRepository, planner *services.CascadePlanner) *PreviewPlanHandler {
	return &PreviewPlanHandler{entryRepo: entryRepo, planner: planner}
}

// Handle executes the PreviewPlanQuery.
func (h *PreviewPlanHandler) Handle(ctx context.Context, q PreviewPlanQuery) ([]domain.Move, error) {
	if q.Start.IsZero() {
		return nil, domain.ErrMissingStartDate
	}
	anchor := domain.NewInterval(q.Start, q.End)

	existing, err := h.entryRepo.FindByDateRange(ctx,
		anchor.Start.AddDate(0, 0, -previewWindowDays),
		anchor.End.AddDate(0, 0, previewWindowDays),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate entries: %w", err)
	}

	if q.ExcludeID != uuid.Nil {
		filtered := existing[:0]
		for _, e := range existing {
			if e.ID() != q.ExcludeID {
				filtered = append(filtered, e)
			}
		}
		existing = filtered
	}

	return h.planner.PlanMoves(existing, anchor, q.Plan)
}
