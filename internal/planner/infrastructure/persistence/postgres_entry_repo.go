package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/cascal/internal/planner/domain"
	sharedPersistence "github.com/felixgeelhaar/cascal/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresEntryRepository implements domain.EntryRepository using PostgreSQL.
type PostgresEntryRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEntryRepository creates a new PostgreSQL entry repository.
func NewPostgresEntryRepository(pool *pgxpool.Pool) *PostgresEntryRepository {
	return &PostgresEntryRepository{pool: pool}
}

// Create persists a new entry.
func (r *PostgresEntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	query := `
		INSERT INTO entries (
			id, title, description, reference_id, start_date, end_date,
			locked, fixed, reminder, remind_days_before, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := sharedPersistence.Executor(ctx, r.pool).Exec(ctx, query,
		entry.ID(),
		entry.Title(),
		entry.Description(),
		refToPtr(entry.ReferenceID()),
		entry.Start(),
		entry.End(),
		entry.Locked(),
		entry.Fixed(),
		entry.Reminder(),
		entry.RemindDaysBefore(),
		entry.CreatedAt(),
		entry.UpdatedAt(),
	)
	return err
}

// Update persists changes to an existing entry.
func (r *PostgresEntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	query := `
		UPDATE entries
		SET title = $2, description = $3, reference_id = $4, start_date = $5,
			end_date = $6, locked = $7, fixed = $8, reminder = $9,
			remind_days_before = $10, updated_at = $11
		WHERE id = $1
	`
	tag, err := sharedPersistence.Executor(ctx, r.pool).Exec(ctx, query,
		entry.ID(),
		entry.Title(),
		entry.Description(),
		refToPtr(entry.ReferenceID()),
		entry.Start(),
		entry.End(),
		entry.Locked(),
		entry.Fixed(),
		entry.Reminder(),
		entry.RemindDaysBefore(),
		entry.UpdatedAt(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %s: %w", entry.ID(), domain.ErrEntryNotFound)
	}
	return nil
}

// Delete removes an entry.
func (r *PostgresEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := sharedPersistence.Executor(ctx, r.pool).Exec(ctx,
		`DELETE FROM entries WHERE id = $1`, id)
	return err
}

// FindByID retrieves an entry by its ID. Returns nil, nil when absent.
func (r *PostgresEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	row := sharedPersistence.Executor(ctx, r.pool).QueryRow(ctx, `
		SELECT id, title, description, reference_id, start_date, end_date,
			   locked, fixed, reminder, remind_days_before, created_at, updated_at
		FROM entries
		WHERE id = $1
	`, id)

	entry, err := scanPgEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

// FindByDateRange returns entries overlapping the inclusive [start, end]
// range, ordered by (start, end, id) so planning input is deterministic.
func (r *PostgresEntryRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Entry, error) {
	rows, err := sharedPersistence.Executor(ctx, r.pool).Query(ctx, `
		SELECT id, title, description, reference_id, start_date, end_date,
			   locked, fixed, reminder, remind_days_before, created_at, updated_at
		FROM entries
		WHERE start_date <= $1 AND end_date >= $2
		ORDER BY start_date, end_date, id
	`, domain.Day(end), domain.Day(start))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.Entry, 0)
	for rows.Next() {
		entry, err := scanPgEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanPgEntry(row pgx.Row) (*domain.Entry, error) {
	var (
		id                      uuid.UUID
		title, description      string
		refID                   *uuid.UUID
		start, end              time.Time
		locked, fixed, reminder bool
		remindDaysBefore        int
		createdAt, updatedAt    time.Time
	)
	if err := row.Scan(
		&id, &title, &description, &refID, &start, &end,
		&locked, &fixed, &reminder, &remindDaysBefore, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	reference := uuid.Nil
	if refID != nil {
		reference = *refID
	}

	return domain.RehydrateEntry(
		id,
		title,
		description,
		reference,
		domain.Day(start),
		domain.Day(end),
		locked,
		fixed,
		reminder,
		remindDaysBefore,
		createdAt,
		updatedAt,
	), nil
}

func refToPtr(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
