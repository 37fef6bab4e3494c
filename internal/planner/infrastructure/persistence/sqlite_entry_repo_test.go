package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/felixgeelhaar/cascal/internal/planner/domain"
	sharedPersistence "github.com/felixgeelhaar/cascal/internal/shared/infrastructure/persistence"
	"github.com/felixgeelhaar/cascal/internal/shared/infrastructure/migrations"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory SQLite database with migrations applied.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	// An in-memory database exists per connection; keep the pool at one so
	// every statement sees the same schema.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, migrations.RunSQLiteMigrations(context.Background(), sqlDB))
	return sqlDB
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestEntry(t *testing.T, title string, start, end time.Time) *domain.Entry {
	t.Helper()
	e, err := domain.NewEntry(title, "", start, end)
	require.NoError(t, err)
	return e
}

func TestSQLiteEntryRepository_Create(t *testing.T) {
	repo := NewSQLiteEntryRepository(setupTestDB(t))
	ctx := context.Background()

	entry := newTestEntry(t, "Kitchen install", day(2026, time.March, 2), day(2026, time.March, 4))
	entry.SetDescription("cabinets and counters")
	entry.SetReference(uuid.New())
	entry.SetLocked(true)
	entry.SetReminder(true, 3)

	require.NoError(t, repo.Create(ctx, entry))

	found, err := repo.FindByID(ctx, entry.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, entry.ID(), found.ID())
	assert.Equal(t, "Kitchen install", found.Title())
	assert.Equal(t, "cabinets and counters", found.Description())
	assert.Equal(t, entry.ReferenceID(), found.ReferenceID())
	assert.Equal(t, day(2026, time.March, 2), found.Start())
	assert.Equal(t, day(2026, time.March, 4), found.End())
	assert.True(t, found.Locked())
	assert.False(t, found.Fixed())
	assert.True(t, found.Reminder())
	assert.Equal(t, 3, found.RemindDaysBefore())
}

func TestSQLiteEntryRepository_Create_NoReference(t *testing.T) {
	repo := NewSQLiteEntryRepository(setupTestDB(t))
	ctx := context.Background()

	entry := newTestEntry(t, "Standalone", day(2026, time.March, 2), day(2026, time.March, 2))
	require.NoError(t, repo.Create(ctx, entry))

	found, err := repo.FindByID(ctx, entry.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, uuid.Nil, found.ReferenceID())
}

func TestSQLiteEntryRepository_FindByID_NotFound(t *testing.T) {
	repo := NewSQLiteEntryRepository(setupTestDB(t))

	found, err := repo.FindByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestSQLiteEntryRepository_Update(t *testing.T) {
	repo := NewSQLiteEntryRepository(setupTestDB(t))
	ctx := context.Background()

	entry := newTestEntry(t, "Painting", day(2026, time.March, 10), day(2026, time.March, 11))
	require.NoError(t, repo.Create(ctx, entry))

	entry.Rename("Painting (rescheduled)")
	require.NoError(t, entry.Reschedule(day(2026, time.March, 12), day(2026, time.March, 13)))
	require.NoError(t, repo.Update(ctx, entry))

	found, err := repo.FindByID(ctx, entry.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Painting (rescheduled)", found.Title())
	assert.Equal(t, day(2026, time.March, 12), found.Start())
	assert.Equal(t, day(2026, time.March, 13), found.End())
}

func TestSQLiteEntryRepository_Update_NotFound(t *testing.T) {
	repo := NewSQLiteEntryRepository(setupTestDB(t))

	entry := newTestEntry(t, "Ghost", day(2026, time.March, 10), day(2026, time.March, 10))
	err := repo.Update(context.Background(), entry)
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestSQLiteEntryRepository_Delete(t *testing.T) {
	repo := NewSQLiteEntryRepository(setupTestDB(t))
	ctx := context.Background()

	entry := newTestEntry(t, "Demolition", day(2026, time.March, 10), day(2026, time.March, 10))
	require.NoError(t, repo.Create(ctx, entry))

	require.NoError(t, repo.Delete(ctx, entry.ID()))

	found, err := repo.FindByID(ctx, entry.ID())
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestSQLiteEntryRepository_FindByDateRange(t *testing.T) {
	repo := NewSQLiteEntryRepository(setupTestDB(t))
	ctx := context.Background()

	inside := newTestEntry(t, "Inside", day(2026, time.April, 10), day(2026, time.April, 12))
	touching := newTestEntry(t, "Touching", day(2026, time.April, 15), day(2026, time.April, 16))
	before := newTestEntry(t, "Before", day(2026, time.April, 1), day(2026, time.April, 2))
	after := newTestEntry(t, "After", day(2026, time.April, 20), day(2026, time.April, 21))

	for _, e := range []*domain.Entry{inside, touching, before, after} {
		require.NoError(t, repo.Create(ctx, e))
	}

	// Range is inclusive on both ends; an entry overlapping a single day of
	// the window is included.
	found, err := repo.FindByDateRange(ctx, day(2026, time.April, 12), day(2026, time.April, 15))
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Inside", found[0].Title())
	assert.Equal(t, "Touching", found[1].Title())
}

func TestSQLiteEntryRepository_FindByDateRange_Empty(t *testing.T) {
	repo := NewSQLiteEntryRepository(setupTestDB(t))

	found, err := repo.FindByDateRange(context.Background(), day(2026, time.April, 1), day(2026, time.April, 30))
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestSQLiteEntryRepository_TransactionRollback(t *testing.T) {
	sqlDB := setupTestDB(t)
	repo := NewSQLiteEntryRepository(sqlDB)
	uow := sharedPersistence.NewSQLiteUnitOfWork(sqlDB)
	ctx := context.Background()

	entry := newTestEntry(t, "Tentative", day(2026, time.May, 1), day(2026, time.May, 2))

	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Create(txCtx, entry))
	require.NoError(t, uow.Rollback(txCtx))

	found, err := repo.FindByID(ctx, entry.ID())
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestSQLiteEntryRepository_TransactionCommit(t *testing.T) {
	sqlDB := setupTestDB(t)
	repo := NewSQLiteEntryRepository(sqlDB)
	uow := sharedPersistence.NewSQLiteUnitOfWork(sqlDB)
	ctx := context.Background()

	entry := newTestEntry(t, "Committed", day(2026, time.May, 1), day(2026, time.May, 2))

	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Create(txCtx, entry))
	require.NoError(t, uow.Commit(txCtx))

	found, err := repo.FindByID(ctx, entry.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
}

func TestBoolToInt64(t *testing.T) {
	assert.Equal(t, int64(1), boolToInt64(true))
	assert.Equal(t, int64(0), boolToInt64(false))
}
