package queries

import (
	"context"
	"sort"
	"time"

	"github.com/felixgeelhaar/cascal/internal/planner/domain"
)

// ListEntriesQuery fetches entries overlapping an inclusive date range.
type ListEntriesQuery struct {
	From time.Time
	To   time.Time
}

// ListEntriesHandler handles the ListEntriesQuery.
type ListEntriesHandler struct {
	entryRepo domain.EntryRepository
}

// NewListEntriesHandler creates a new ListEntriesHandler.
func NewListEntriesHandler(entryRepo domain.EntryRepository) *ListEntriesHandler {
	return &ListEntriesHandler{entryRepo: entryRepo}
}

// Handle executes the ListEntriesQuery, returning entries ordered by start
// date.
func (h *ListEntriesHandler) Handle(ctx context.Context, q ListEntriesQuery) ([]*domain.Entry, error) {
	entries, err := h.entryRepo.FindByDateRange(ctx, domain.Day(q.From), domain.Day(q.To))
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.Start().Equal(b.Start()) {
			return a.Start().Before(b.Start())
		}
		return a.End().Before(b.End())
	})
	return entries, nil
}
