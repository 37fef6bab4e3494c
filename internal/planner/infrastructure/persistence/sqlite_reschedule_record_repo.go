package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/felixgeelhaar/cascal/internal/planner/domain"
	sharedPersistence "github.com/felixgeelhaar/cascal/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
)

// SQLiteRescheduleRecordRepository implements domain.RescheduleRecordRepository
// using SQLite.
type SQLiteRescheduleRecordRepository struct {
	db *sql.DB
}

// NewSQLiteRescheduleRecordRepository creates a new SQLite reschedule record repository.
func NewSQLiteRescheduleRecordRepository(db *sql.DB) *SQLiteRescheduleRecordRepository {
	return &SQLiteRescheduleRecordRepository{db: db}
}

func (r *SQLiteRescheduleRecordRepository) getQuerier(ctx context.Context) querier {
	if info, ok := sharedPersistence.SQLiteTxInfoFromContext(ctx); ok {
		return info.Tx
	}
	return r.db
}

// Create persists an audit record.
func (r *SQLiteRescheduleRecordRepository) Create(ctx context.Context, record domain.RescheduleRecord) error {
	query := `
		INSERT INTO reschedule_log (
			id, entry_id, trigger_id, trigger_kind, old_start_date, old_end_date,
			new_start_date, new_end_date, success, failure_reason, recorded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.getQuerier(ctx).ExecContext(ctx, query,
		record.ID.String(),
		record.EntryID.String(),
		record.TriggerID.String(),
		string(record.Trigger),
		record.OldStart.Format(dateLayout),
		record.OldEnd.Format(dateLayout),
		record.NewStart.Format(dateLayout),
		record.NewEnd.Format(dateLayout),
		boolToInt64(record.Success),
		record.FailureReason,
		record.RecordedAt.Format(time.RFC3339),
	)
	return err
}

// ListByEntry returns records where the entry was either moved or the
// trigger, newest first.
func (r *SQLiteRescheduleRecordRepository) ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.RescheduleRecord, error) {
	rows, err := r.getQuerier(ctx).QueryContext(ctx, `
		SELECT id, entry_id, trigger_id, trigger_kind, old_start_date, old_end_date,
			   new_start_date, new_end_date, success, failure_reason, recorded_at
		FROM reschedule_log
		WHERE entry_id = ? OR trigger_id = ?
		ORDER BY recorded_at DESC
	`, entryID.String(), entryID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ListByRange returns records recorded within [from, to], newest first.
func (r *SQLiteRescheduleRecordRepository) ListByRange(ctx context.Context, from, to time.Time) ([]domain.RescheduleRecord, error) {
	rows, err := r.getQuerier(ctx).QueryContext(ctx, `
		SELECT id, entry_id, trigger_id, trigger_kind, old_start_date, old_end_date,
			   new_start_date, new_end_date, success, failure_reason, recorded_at
		FROM reschedule_log
		WHERE recorded_at >= ? AND recorded_at <= ?
		ORDER BY recorded_at DESC
	`, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]domain.RescheduleRecord, error) {
	records := make([]domain.RescheduleRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanRecord(row rowScanner) (domain.RescheduleRecord, error) {
	var (
		idStr, entryIDStr, triggerIDStr, triggerKind     string
		oldStartStr, oldEndStr, newStartStr, newEndStr   string
		success                                          int64
		failureReason, recordedAtStr                     string
	)
	if err := row.Scan(
		&idStr, &entryIDStr, &triggerIDStr, &triggerKind,
		&oldStartStr, &oldEndStr, &newStartStr, &newEndStr,
		&success, &failureReason, &recordedAtStr,
	); err != nil {
		return domain.RescheduleRecord{}, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return domain.RescheduleRecord{}, fmt.Errorf("invalid record id %q: %w", idStr, err)
	}
	entryID, err := uuid.Parse(entryIDStr)
	if err != nil {
		return domain.RescheduleRecord{}, fmt.Errorf("invalid entry id %q: %w", entryIDStr, err)
	}
	triggerID, _ := uuid.Parse(triggerIDStr)

	oldStart, _ := time.Parse(dateLayout, oldStartStr)
	oldEnd, _ := time.Parse(dateLayout, oldEndStr)
	newStart, _ := time.Parse(dateLayout, newStartStr)
	newEnd, _ := time.Parse(dateLayout, newEndStr)
	recordedAt, _ := time.Parse(time.RFC3339, recordedAtStr)

	return domain.RescheduleRecord{
		ID:            id,
		EntryID:       entryID,
		TriggerID:     triggerID,
		Trigger:       domain.RescheduleTrigger(triggerKind),
		OldStart:      oldStart,
		OldEnd:        oldEnd,
		NewStart:      newStart,
		NewEnd:        newEnd,
		Success:       success != 0,
		FailureReason: failureReason,
		RecordedAt:    recordedAt,
	}, nil
}
