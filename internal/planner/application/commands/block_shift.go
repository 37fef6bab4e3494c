package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/cascal/internal/planner/domain"
	sharedApplication "github.com/felixgeelhaar/cascal/internal/shared/application"
	"github.com/felixgeelhaar/cascal/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// BlockShiftCommand moves an entry and drags every later entry along by the
// same number of days.
type BlockShiftCommand struct {
	EntryID uuid.UUID
	Patch   EntryPatch
}

// BlockShiftResult reports the shift distance and the follower moves.
type BlockShiftResult struct {
	BetaDays int
	Applied  []domain.Move
}

// BlockShiftHandler handles the BlockShiftCommand.
//
// Unlike the cascade reschedule, the block shift is all-or-nothing: followers
// and the target are updated inside one transaction and any failure rolls the
// whole shift back. Overlaps among shifted entries are allowed; the block
// moves as a unit and keeps its internal spacing.
type BlockShiftHandler struct {
	entryRepo  domain.EntryRepository
	recordRepo domain.RescheduleRecordRepository
	uow        sharedApplication.UnitOfWork
	publisher  eventbus.Publisher
	logger     *slog.Logger
}

// NewBlockShiftHandler creates a new BlockShiftHandler.
func NewBlockShiftHandler(
	entryRepo domain.EntryRepository,
	recordRepo domain.RescheduleRecordRepository,
	uow sharedApplication.UnitOfWork,
	publisher eventbus.Publisher,
	logger *slog.Logger,
) *BlockShiftHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BlockShiftHandler{
		entryRepo:  entryRepo,
		recordRepo: recordRepo,
		uow:        uow,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle shifts the target and its followers. Followers are the movable
// entries starting on or after the target's original start date; the shift
// distance (beta) is the change of the target's end date in days. A zero
// beta updates the target alone.
func (h *BlockShiftHandler) Handle(ctx context.Context, cmd BlockShiftCommand) (*BlockShiftResult, error) {
	entry, err := h.entryRepo.FindByID(ctx, cmd.EntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entry %s: %w", cmd.EntryID, err)
	}
	if entry == nil {
		return nil, fmt.Errorf("entry %s: %w", cmd.EntryID, domain.ErrEntryNotFound)
	}

	origStart := entry.Start()
	origEnd := entry.End()

	// The new end clamps to the new start rather than swapping; a shift is
	// expressed relative to the end date.
	newStart := origStart
	if cmd.Patch.Start != nil {
		newStart = domain.Day(*cmd.Patch.Start)
	}
	newEnd := newStart
	if cmd.Patch.End != nil && !cmd.Patch.End.Before(newStart) {
		newEnd = domain.Day(*cmd.Patch.End)
	}

	beta := domain.DaysBetween(origEnd, newEnd)

	if beta == 0 {
		cmd.Patch.applyFields(entry)
		if err := entry.Reschedule(newStart, newEnd); err != nil {
			return nil, err
		}
		if err := h.entryRepo.Update(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to update entry %s: %w", cmd.EntryID, err)
		}
		h.logger.Info("block shift: no follower shifts", "entry_id", cmd.EntryID)
		return &BlockShiftResult{BetaDays: 0}, nil
	}

	h.logger.Info("block shift",
		"entry_id", cmd.EntryID,
		"beta_days", beta,
		"followers_from", origStart,
	)

	result := &BlockShiftResult{BetaDays: beta}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		followers, err := h.selectFollowers(txCtx, entry)
		if err != nil {
			return err
		}

		for _, f := range followers {
			m := domain.Move{
				EntryID:  f.ID(),
				OldStart: f.Start(),
				OldEnd:   f.End(),
				NewStart: f.Start().AddDate(0, 0, beta),
				NewEnd:   f.End().AddDate(0, 0, beta),
			}
			if err := f.Reschedule(m.NewStart, m.NewEnd); err != nil {
				return fmt.Errorf("failed to shift follower %s: %w", f.ID(), err)
			}
			if err := h.entryRepo.Update(txCtx, f); err != nil {
				return fmt.Errorf("failed to update follower %s: %w", f.ID(), err)
			}
			if h.recordRepo != nil {
				rec := domain.NewRescheduleRecord(m, entry.ID(), domain.RescheduleTriggerShift, true, "")
				if err := h.recordRepo.Create(txCtx, rec); err != nil {
					return fmt.Errorf("failed to write reschedule record: %w", err)
				}
			}
			result.Applied = append(result.Applied, m)
			h.logger.Debug("shifted follower",
				"entry_id", f.ID(),
				"old_start", m.OldStart,
				"new_start", m.NewStart,
			)
		}

		cmd.Patch.applyFields(entry)
		if err := entry.Reschedule(newStart, newEnd); err != nil {
			return err
		}
		if err := h.entryRepo.Update(txCtx, entry); err != nil {
			return fmt.Errorf("failed to update entry %s: %w", cmd.EntryID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, m := range result.Applied {
		eventbus.PublishEvent(ctx, h.publisher, h.logger, domain.NewEntryMoved(m, entry.ID()))
	}

	h.logger.Info("block shift completed",
		"entry_id", cmd.EntryID,
		"beta_days", beta,
		"shifted_followers", len(result.Applied),
	)
	return result, nil
}

// selectFollowers returns the movable entries that start on or after the
// target's original start, excluding the target itself.
func (h *BlockShiftHandler) selectFollowers(ctx context.Context, entry *domain.Entry) ([]*domain.Entry, error) {
	fetched, err := h.entryRepo.FindByDateRange(ctx,
		entry.Start(),
		entry.Start().AddDate(0, 0, candidateWindowDays),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch followers: %w", err)
	}

	followers := make([]*domain.Entry, 0, len(fetched))
	for _, e := range fetched {
		if e.ID() == entry.ID() || e.Immovable() {
			continue
		}
		if e.Start().Before(entry.Start()) {
			continue
		}
		followers = append(followers, e)
	}
	return followers, nil
}
