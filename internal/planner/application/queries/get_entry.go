// Package queries implements the read side of the planner.
package queries

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/cascal/internal/planner/domain"
	"github.com/google/uuid"
)

// GetEntryQuery fetches a single entry.
type GetEntryQuery struct {
	EntryID uuid.UUID
}

// GetEntryHandler handles the GetEntryQuery.
type GetEntryHandler struct {
	entryRepo domain.EntryRepository
}

// NewGetEntryHandler creates a new GetEntryHandler.
func NewGetEntryHandler(entryRepo domain.EntryRepository) *GetEntryHandler {
	return &GetEntryHandler{entryRepo: entryRepo}
}

// Handle executes the GetEntryQuery.
func (h *GetEntryHandler) Handle(ctx context.Context, q GetEntryQuery) (*domain.Entry, error) {
	entry, err := h.entryRepo.FindByID(ctx, q.EntryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("entry %s: %w", q.EntryID, domain.ErrEntryNotFound)
	}
	return entry, nil
}
