// Package commands implements the write operations of the planner: inserting,
// updating, shifting and deleting calendar entries together with the cascade
// reschedules they trigger.
//
// Reschedule application is deliberately best-effort and non-transactional:
// a failed neighbor move is logged and skipped, never rolled back. Callers
// compare Applied against Planned to detect partial application. Concurrent
// writers are not guarded here either; the caller is expected to serialize
// edits (single active editor), matching the behavior of the original
// calendar this planner ports.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/cascal/internal/planner/application/services"
	"github.com/felixgeelhaar/cascal/internal/planner/domain"
	"github.com/felixgeelhaar/cascal/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// candidateWindowDays is the reach of the neighbor query on each side of the
// anchor. Ten years is deliberately generous so any cascade stays inside the
// fetched snapshot.
const candidateWindowDays = 3650

// InsertEntryCommand contains the data needed to create an entry.
type InsertEntryCommand struct {
	Title            string
	Description      string
	ReferenceID      uuid.UUID
	Start            time.Time
	End              time.Time
	Locked           bool
	Fixed            bool
	Reminder         bool
	RemindDaysBefore int

	Plan domain.PlanConfig
}

// InsertEntryResult reports the created entry and which planned moves were
// actually applied.
type InsertEntryResult struct {
	EntryID uuid.UUID
	Planned []domain.Move
	Applied []domain.Move
}

// InsertEntryHandler handles the InsertEntryCommand.
type InsertEntryHandler struct {
	entryRepo  domain.EntryRepository
	recordRepo domain.RescheduleRecordRepository
	planner    *services.CascadePlanner
	publisher  eventbus.Publisher
	logger     *slog.Logger
}

// NewInsertEntryHandler creates a new InsertEntryHandler.
func NewInsertEntryHandler(
	entryRepo domain.EntryRepository,
	recordRepo domain.RescheduleRecordRepository,
	planner *services.CascadePlanner,
	publisher eventbus.Publisher,
	logger *slog.Logger,
) *InsertEntryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &InsertEntryHandler{
		entryRepo:  entryRepo,
		recordRepo: recordRepo,
		planner:    planner,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle plans the insert, creates the entry, then applies the neighbor
// moves. Planning failures abort before anything is persisted; a failed
// create aborts before any move is applied.
func (h *InsertEntryHandler) Handle(ctx context.Context, cmd InsertEntryCommand) (*InsertEntryResult, error) {
	entry, err := domain.NewEntry(cmd.Title, cmd.Description, cmd.Start, cmd.End)
	if err != nil {
		return nil, err
	}
	entry.SetReference(cmd.ReferenceID)
	entry.SetLocked(cmd.Locked)
	entry.SetFixed(cmd.Fixed)
	entry.SetReminder(cmd.Reminder, cmd.RemindDaysBefore)

	window := entry.Interval()
	h.logger.Info("planning insert",
		"start", window.Start,
		"end", window.End,
		"policy", cmd.Plan.Policy,
	)

	existing, err := h.entryRepo.FindByDateRange(ctx,
		window.Start.AddDate(0, 0, -candidateWindowDays),
		window.End.AddDate(0, 0, candidateWindowDays),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate entries: %w", err)
	}
	h.logger.Debug("fetched candidate entries", "count", len(existing))

	moves, err := h.planner.PlanMoves(existing, window, cmd.Plan)
	if err != nil {
		return nil, err
	}

	if err := h.entryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	applied := applyMoves(ctx, moveApplication{
		moves:      moves,
		existing:   existing,
		triggerID:  entry.ID(),
		trigger:    domain.RescheduleTriggerInsert,
		entryRepo:  h.entryRepo,
		recordRepo: h.recordRepo,
		publisher:  h.publisher,
		logger:     h.logger,
	})

	eventbus.PublishEvent(ctx, h.publisher, h.logger, domain.NewEntryScheduled(entry))

	h.logger.Info("insert completed",
		"entry_id", entry.ID(),
		"planned_moves", len(moves),
		"applied_moves", len(applied),
	)

	return &InsertEntryResult{
		EntryID: entry.ID(),
		Planned: moves,
		Applied: applied,
	}, nil
}

// moveApplication bundles what applyMoves needs for one batch.
type moveApplication struct {
	moves      []domain.Move
	existing   []*domain.Entry
	triggerID  uuid.UUID
	trigger    domain.RescheduleTrigger
	entryRepo  domain.EntryRepository
	recordRepo domain.RescheduleRecordRepository
	publisher  eventbus.Publisher
	logger     *slog.Logger
}

// applyMoves persists planned moves in plan order. Individual failures are
// logged, audited and skipped; the batch always runs to the end.
func applyMoves(ctx context.Context, app moveApplication) []domain.Move {
	byID := make(map[uuid.UUID]*domain.Entry, len(app.existing))
	for _, e := range app.existing {
		byID[e.ID()] = e
	}

	applied := make([]domain.Move, 0, len(app.moves))
	for _, m := range app.moves {
		entry, ok := byID[m.EntryID]
		if !ok {
			app.logger.Error("planned move references unknown entry", "entry_id", m.EntryID)
			recordMove(ctx, app, m, false, "entry missing from snapshot")
			continue
		}

		if err := entry.Reschedule(m.NewStart, m.NewEnd); err != nil {
			app.logger.Error("failed to apply move", "entry_id", m.EntryID, "error", err)
			recordMove(ctx, app, m, false, err.Error())
			continue
		}

		if err := app.entryRepo.Update(ctx, entry); err != nil {
			app.logger.Error("failed to update entry",
				"entry_id", m.EntryID,
				"new_start", m.NewStart,
				"new_end", m.NewEnd,
				"error", err,
			)
			recordMove(ctx, app, m, false, err.Error())
			continue
		}

		applied = append(applied, m)
		recordMove(ctx, app, m, true, "")
		eventbus.PublishEvent(ctx, app.publisher, app.logger, domain.NewEntryMoved(m, app.triggerID))
		app.logger.Debug("moved entry",
			"entry_id", m.EntryID,
			"old_start", m.OldStart,
			"old_end", m.OldEnd,
			"new_start", m.NewStart,
			"new_end", m.NewEnd,
		)
	}
	return applied
}

func recordMove(ctx context.Context, app moveApplication, m domain.Move, success bool, reason string) {
	if app.recordRepo == nil {
		return
	}
	rec := domain.NewRescheduleRecord(m, app.triggerID, app.trigger, success, reason)
	if err := app.recordRepo.Create(ctx, rec); err != nil {
		app.logger.Warn("failed to write reschedule record",
			"entry_id", m.EntryID,
			"error", err,
		)
	}
}
