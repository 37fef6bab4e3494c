package queries

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/cascal/internal/planner/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockEntryRepo is a mock implementation of domain.EntryRepository.
type mockEntryRepo struct {
	mock.Mock
}

func (m *mockEntryRepo) Create(ctx context.Context, entry *domain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockEntryRepo) Update(ctx context.Context, entry *domain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockEntryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockEntryRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *mockEntryRepo) FindByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Entry, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Entry), args.Error(1)
}

// mockRecordRepo is a mock implementation of domain.RescheduleRecordRepository.
type mockRecordRepo struct {
	mock.Mock
}

func (m *mockRecordRepo) Create(ctx context.Context, record domain.RescheduleRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockRecordRepo) ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.RescheduleRecord, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RescheduleRecord), args.Error(1)
}

func (m *mockRecordRepo) ListByRange(ctx context.Context, from, to time.Time) ([]domain.RescheduleRecord, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RescheduleRecord), args.Error(1)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testEntry(t *testing.T, title string, start, end time.Time) *domain.Entry {
	t.Helper()
	e, err := domain.NewEntry(title, "", start, end)
	require.NoError(t, err)
	return e
}

func TestGetEntryHandler_Handle(t *testing.T) {
	t.Run("returns the entry", func(t *testing.T) {
		repo := new(mockEntryRepo)
		handler := NewGetEntryHandler(repo)

		entry := testEntry(t, "Flooring", date(2026, time.March, 2), date(2026, time.March, 4))
		repo.On("FindByID", mock.Anything, entry.ID()).Return(entry, nil)

		got, err := handler.Handle(context.Background(), GetEntryQuery{EntryID: entry.ID()})

		require.NoError(t, err)
		assert.Equal(t, entry, got)
	})

	t.Run("returns not found for an unknown entry", func(t *testing.T) {
		repo := new(mockEntryRepo)
		handler := NewGetEntryHandler(repo)

		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, nil)

		_, err := handler.Handle(context.Background(), GetEntryQuery{EntryID: id})

		assert.ErrorIs(t, err, domain.ErrEntryNotFound)
	})
}
