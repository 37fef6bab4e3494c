package persistence

import (
	"context"
	"time"

	"github.com/felixgeelhaar/cascal/internal/planner/domain"
	sharedPersistence "github.com/felixgeelhaar/cascal/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRescheduleRecordRepository implements domain.RescheduleRecordRepository
// using PostgreSQL.
type PostgresRescheduleRecordRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRescheduleRecordRepository creates a new PostgreSQL reschedule record repository.
func NewPostgresRescheduleRecordRepository(pool *pgxpool.Pool) *PostgresRescheduleRecordRepository {
	return &PostgresRescheduleRecordRepository{pool: pool}
}

// Create persists an audit record.
func (r *PostgresRescheduleRecordRepository) Create(ctx context.Context, record domain.RescheduleRecord) error {
	query := `
		INSERT INTO reschedule_log (
			id, entry_id, trigger_id, trigger_kind, old_start_date, old_end_date,
			new_start_date, new_end_date, success, failure_reason, recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := sharedPersistence.Executor(ctx, r.pool).Exec(ctx, query,
		record.ID,
		record.EntryID,
		record.TriggerID,
		string(record.Trigger),
		record.OldStart,
		record.OldEnd,
		record.NewStart,
		record.NewEnd,
		record.Success,
		record.FailureReason,
		record.RecordedAt,
	)
	return err
}

// ListByEntry returns records where the entry was either moved or the
// trigger, newest first.
func (r *PostgresRescheduleRecordRepository) ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.RescheduleRecord, error) {
	rows, err := sharedPersistence.Executor(ctx, r.pool).Query(ctx, `
		SELECT id, entry_id, trigger_id, trigger_kind, old_start_date, old_end_date,
			   new_start_date, new_end_date, success, failure_reason, recorded_at
		FROM reschedule_log
		WHERE entry_id = $1 OR trigger_id = $1
		ORDER BY recorded_at DESC
	`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPgRecords(rows)
}

// ListByRange returns records recorded within [from, to], newest first.
func (r *PostgresRescheduleRecordRepository) ListByRange(ctx context.Context, from, to time.Time) ([]domain.RescheduleRecord, error) {
	rows, err := sharedPersistence.Executor(ctx, r.pool).Query(ctx, `
		SELECT id, entry_id, trigger_id, trigger_kind, old_start_date, old_end_date,
			   new_start_date, new_end_date, success, failure_reason, recorded_at
		FROM reschedule_log
		WHERE recorded_at >= $1 AND recorded_at <= $2
		ORDER BY recorded_at DESC
	`, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPgRecords(rows)
}

func scanPgRecords(rows pgx.Rows) ([]domain.RescheduleRecord, error) {
	records := make([]domain.RescheduleRecord, 0)
	for rows.Next() {
		var (
			record      domain.RescheduleRecord
			triggerKind string
		)
		if err := rows.Scan(
			&record.ID, &record.EntryID, &record.TriggerID, &triggerKind,
			&record.OldStart, &record.OldEnd, &record.NewStart, &record.NewEnd,
			&record.Success, &record.FailureReason, &record.RecordedAt,
		); err != nil {
			return nil, err
		}
		record.Trigger = domain.RescheduleTrigger(triggerKind)
		records = append(records, record)
	}
	return records, rows.Err()
}
