package queries

import (
	"context"
	"sort"
	"time"

	"github.com/felixgeelhaar/cascal/internal/planner/domain"
)

// ListDueRemindersQuery finds entries whose reminder fires on the given day:
// the entry starts exactly its configured number of days later.
type ListDueRemindersQuery struct {
	Today time.Time
}

// ListDueRemindersHandler handles the ListDueRemindersQuery.
type ListDueRemindersHandler struct {
	entryRepo domain.EntryRepository
}

// NewListDueRemindersHandler creates a new ListDueRemindersHandler.
func NewListDueRemindersHandler(entryRepo domain.EntryRepository) *ListDueRemindersHandler {
	return &ListDueRemindersHandler{entryRepo: entryRepo}
}

// Handle executes the ListDueRemindersQuery.
func (h *ListDueRemindersHandler) Handle(ctx context.Context, q ListDueRemindersQuery) ([]*domain.Entry, error) {
	today := domain.Day(q.Today)

	// Reminders only fire ahead of the start date, so candidates all start
	// within [today, today+window].
	entries, err := h.entryRepo.FindByDateRange(ctx, today, today.AddDate(0, 0, previewWindowDays))
	if err != nil {
		return nil, err
	}

	due := make([]*domain.Entry, 0)
	for _, e := range entries {
		if e.ReminderDueOn(today) {
			due = append(due, e)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		return due[i].Start().Before(due[j].Start())
	})
	return due, nil
}
