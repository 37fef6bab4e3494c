package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/cascal/internal/planner/application/services"
	"github.com/felixgeelhaar/cascal/internal/planner/domain"
	"github.com/felixgeelhaar/cascal/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// UpdateEntryCommand contains the data needed to update an entry and
// reschedule its neighbors.
type UpdateEntryCommand struct {
	EntryID uuid.UUID
	Patch   EntryPatch
	Plan    domain.PlanConfig
}

// UpdateEntryResult reports which planned neighbor moves were applied.
// Rescheduled is false when the target was immovable and neighbors were
// never considered.
type UpdateEntryResult struct {
	Planned     []domain.Move
	Applied     []domain.Move
	Rescheduled bool
}

// UpdateEntryHandler handles the UpdateEntryCommand.
type UpdateEntryHandler struct {
	entryRepo  domain.EntryRepository
	recordRepo domain.RescheduleRecordRepository
	planner    *services.CascadePlanner
	publisher  eventbus.Publisher
	logger     *slog.Logger
}

// NewUpdateEntryHandler creates a new UpdateEntryHandler.
func NewUpdateEntryHandler(
	entryRepo domain.EntryRepository,
	recordRepo domain.RescheduleRecordRepository,
	planner *services.CascadePlanner,
	publisher eventbus.Publisher,
	logger *slog.Logger,
) *UpdateEntryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UpdateEntryHandler{
		entryRepo:  entryRepo,
		recordRepo: recordRepo,
		planner:    planner,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle updates the entry, rescheduling overlapping neighbors around its new
// interval. An entry that is (or is being set) locked or fixed is persisted
// directly without touching neighbors: a pinned entry must never trigger
// cascades, even if it ends up overlapping.
//
// Neighbor moves are applied before the target update. If the target update
// itself fails afterwards, the already-applied moves are not rolled back; the
// error is returned together with the applied set.
func (h *UpdateEntryHandler) Handle(ctx context.Context, cmd UpdateEntryCommand) (*UpdateEntryResult, error) {
	entry, err := h.entryRepo.FindByID(ctx, cmd.EntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entry %s: %w", cmd.EntryID, err)
	}
	if entry == nil {
		return nil, fmt.Errorf("entry %s: %w", cmd.EntryID, domain.ErrEntryNotFound)
	}

	target := cmd.Patch.newInterval(entry)

	if cmd.Patch.locksTarget(entry) {
		cmd.Patch.applyFields(entry)
		if err := entry.Reschedule(target.Start, target.End); err != nil {
			return nil, err
		}
		if err := h.entryRepo.Update(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to update immovable entry %s: %w", cmd.EntryID, err)
		}
		h.logger.Info("entry updated without rescheduling",
			"entry_id", cmd.EntryID,
			"locked", entry.Locked(),
			"fixed", entry.Fixed(),
		)
		return &UpdateEntryResult{Rescheduled: false}, nil
	}

	h.logger.Info("planning update",
		"entry_id", cmd.EntryID,
		"new_start", target.Start,
		"new_end", target.End,
	)

	fetched, err := h.entryRepo.FindByDateRange(ctx,
		target.Start.AddDate(0, 0, -candidateWindowDays),
		target.End.AddDate(0, 0, candidateWindowDays),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate entries: %w", err)
	}

	neighbors := make([]*domain.Entry, 0, len(fetched))
	for _, e := range fetched {
		if e.ID() == cmd.EntryID {
			continue
		}
		neighbors = append(neighbors, e)
	}
	h.logger.Debug("fetched neighbors", "count", len(neighbors))

	moves, err := h.planner.PlanMoves(neighbors, target, cmd.Plan)
	if err != nil {
		return nil, err
	}

	applied := applyMoves(ctx, moveApplication{
		moves:      moves,
		existing:   neighbors,
		triggerID:  entry.ID(),
		trigger:    domain.RescheduleTriggerUpdate,
		entryRepo:  h.entryRepo,
		recordRepo: h.recordRepo,
		publisher:  h.publisher,
		logger:     h.logger,
	})

	result := &UpdateEntryResult{
		Planned:     moves,
		Applied:     applied,
		Rescheduled: true,
	}

	cmd.Patch.applyFields(entry)
	if err := entry.Reschedule(target.Start, target.End); err != nil {
		return result, err
	}
	if err := h.entryRepo.Update(ctx, entry); err != nil {
		// Known inconsistency window: neighbor moves are already committed.
		return result, fmt.Errorf("failed to update entry %s: %w", cmd.EntryID, err)
	}

	h.logger.Info("update completed",
		"entry_id", cmd.EntryID,
		"planned_moves", len(moves),
		"applied_moves", len(applied),
	)
	return result, nil
}
