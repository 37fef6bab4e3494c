package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/cascal/internal/planner/domain"
	"github.com/felixgeelhaar/cascal/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// DeleteEntryCommand removes an entry from the calendar. Neighbors are never
// rescheduled on delete; the freed days simply stay empty.
type DeleteEntryCommand struct {
	EntryID uuid.UUID
}

// DeleteEntryHandler handles the DeleteEntryCommand.
type DeleteEntryHandler struct {
	entryRepo domain.EntryRepository
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewDeleteEntryHandler creates a new DeleteEntryHandler.
func NewDeleteEntryHandler(entryRepo domain.EntryRepository, publisher eventbus.Publisher, logger *slog.Logger) *DeleteEntryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeleteEntryHandler{
		entryRepo: entryRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle executes the DeleteEntryCommand.
func (h *DeleteEntryHandler) Handle(ctx context.Context, cmd DeleteEntryCommand) error {
	entry, err := h.entryRepo.FindByID(ctx, cmd.EntryID)
	if err != nil {
		return fmt.Errorf("failed to fetch entry %s: %w", cmd.EntryID, err)
	}
	if entry == nil {
		return fmt.Errorf("entry %s: %w", cmd.EntryID, domain.ErrEntryNotFound)
	}

	if err := h.entryRepo.Delete(ctx, cmd.EntryID); err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", cmd.EntryID, err)
	}

	eventbus.PublishEvent(ctx, h.publisher, h.logger, domain.NewEntryRemoved(entry))
	h.logger.Info("entry deleted", "entry_id", cmd.EntryID, "title", entry.Title())
	return nil
}
