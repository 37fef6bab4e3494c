// Package persistence implements the planner repositories for SQLite and
// PostgreSQL.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/cascal/internal/planner/domain"
	sharedPersistence "github.com/felixgeelhaar/cascal/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
)

const (
	dateLayout = "2006-01-02"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteEntryRepository implements domain.EntryRepository using SQLite.
type SQLiteEntryRepository struct {
	db *sql.DB
}

// NewSQLiteEntryRepository creates a new SQLite entry repository.
func NewSQLiteEntryRepository(db *sql.DB) *SQLiteEntryRepository {
	return &SQLiteEntryRepository{db: db}
}

// getQuerier returns the transaction from context when inside a unit of
// work, otherwise the connection.
func (r *SQLiteEntryRepository) getQuerier(ctx context.Context) querier {
	if info, ok := sharedPersistence.SQLiteTxInfoFromContext(ctx); ok {
		return info.Tx
	}
	return r.db
}

// Create persists a new entry.
func (r *SQLiteEntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	query := `
		INSERT INTO entries (
			id, title, description, reference_id, start_date, end_date,
			locked, fixed, reminder, remind_days_before, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.getQuerier(ctx).ExecContext(ctx, query,
		entry.ID().String(),
		entry.Title(),
		entry.Description(),
		refToNullString(entry.ReferenceID()),
		entry.Start().Format(dateLayout),
		entry.End().Format(dateLayout),
		boolToInt64(entry.Locked()),
		boolToInt64(entry.Fixed()),
		boolToInt64(entry.Reminder()),
		int64(entry.RemindDaysBefore()),
		entry.CreatedAt().Format(time.RFC3339),
		entry.UpdatedAt().Format(time.RFC3339),
	)
	return err
}

// Update persists changes to an existing entry.
func (r *SQLiteEntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	query := `
		UPDATE entries
		SET title = ?, description = ?, reference_id = ?, start_date = ?,
			end_date = ?, locked = ?, fixed = ?, reminder = ?,
			remind_days_before = ?, updated_at = ?
		WHERE id = ?
	`
	res, err := r.getQuerier(ctx).ExecContext(ctx, query,
		entry.Title(),
		entry.Description(),
		refToNullString(entry.ReferenceID()),
		entry.Start().Format(dateLayout),
		entry.End().Format(dateLayout),
		boolToInt64(entry.Locked()),
		boolToInt64(entry.Fixed()),
		boolToInt64(entry.Reminder()),
		int64(entry.RemindDaysBefore()),
		entry.UpdatedAt().Format(time.RFC3339),
		entry.ID().String(),
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("entry %s: %w", entry.ID(), domain.ErrEntryNotFound)
	}
	return nil
}

// Delete removes an entry.
func (r *SQLiteEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.getQuerier(ctx).ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id.String())
	return err
}

// FindByID retrieves an entry by its ID. Returns nil, nil when absent.
func (r *SQLiteEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	row := r.getQuerier(ctx).QueryRowContext(ctx, `
		SELECT id, title, description, reference_id, start_date, end_date,
			   locked, fixed, reminder, remind_days_before, created_at, updated_at
		FROM entries
		WHERE id = ?
	`, id.String())

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

// FindByDateRange returns entries overlapping the inclusive [start, end]
// range, ordered by (start, end, id) so planning input is deterministic.
func (r *SQLiteEntryRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Entry, error) {
	rows, err := r.getQuerier(ctx).QueryContext(ctx, `
		SELECT id, title, description, reference_id, start_date, end_date,
			   locked, fixed, reminder, remind_days_before, created_at, updated_at
		FROM entries
		WHERE start_date <= ? AND end_date >= ?
		ORDER BY start_date, end_date, id
	`, domain.Day(end).Format(dateLayout), domain.Day(start).Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*domain.Entry, error) {
	var (
		idStr, title, description   string
		refID                       sql.NullString
		startStr, endStr            string
		locked, fixed, reminder     int64
		remindDaysBefore            int64
		createdAtStr, updatedAtStr  string
	)
	if err := row.Scan(
		&idStr, &title, &description, &refID, &startStr, &endStr,
		&locked, &fixed, &reminder, &remindDaysBefore, &createdAtStr, &updatedAtStr,
	); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid entry id %q: %w", idStr, err)
	}
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startStr, err)
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endStr, err)
	}
	createdAt, _ := time.Parse(time.RFC3339, createdAtStr)
	updatedAt, _ := time.Parse(time.RFC3339, updatedAtStr)

	reference := uuid.Nil
	if refID.Valid {
		reference, _ = uuid.Parse(refID.String)
	}

	return domain.RehydrateEntry(
		id,
		title,
		description,
		reference,
		start,
		end,
		locked != 0,
		fixed != 0,
		reminder != 0,
		int(remindDaysBefore),
		createdAt,
		updatedAt,
	), nil
}

func refToNullString(id uuid.UUID) sql.NullString {
	if id == uuid.Nil {
		return sql.NullString{}
	}
	return sql.NullString{String: id.String(), Valid: true}
}

func boolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
