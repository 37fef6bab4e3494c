package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/cascal/internal/planner/domain"
	"github.com/google/uuid"
)

// ListRescheduleRecordsQuery fetches move audit records, either for one
// entry or for a recorded-at window when EntryID is nil.
type ListRescheduleRecordsQuery struct {
	EntryID uuid.UUID
	From    time.Time
	To      time.Time
}

// ListRescheduleRecordsHandler handles the ListRescheduleRecordsQuery.
type ListRescheduleRecordsHandler struct {
	recordRepo domain.RescheduleRecordRepository
}

// NewListRescheduleRecordsHandler creates a new ListRescheduleRecordsHandler.
func NewListRescheduleRecordsHandler(recordRepo domain.RescheduleRecordRepository) *ListRescheduleRecordsHandler {
	return &ListRescheduleRecordsHandler{recordRepo: recordRepo}
}

// Handle executes the ListRescheduleRecordsQuery.
func (h *ListRescheduleRecordsHandler) Handle(ctx context.Context, q ListRescheduleRecordsQuery) ([]domain.RescheduleRecord, error) {
	if q.EntryID != uuid.Nil {
		return h.recordRepo.ListByEntry(ctx, q.EntryID)
	}
	return h.recordRepo.ListByRange(ctx, q.From, q.To)
}
