package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/cascal/internal/planner/application/services"
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

// mockPublisher is a mock implementation of eventbus.Publisher.
type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
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

func TestInsertEntryHandler_Handle(t *testing.T) {
	newHandler := func(repo *mockEntryRepo, records *mockRecordRepo, pub *mockPublisher) *InsertEntryHandler {
		return NewInsertEntryHandler(repo, records, services.NewCascadePlanner(nil), pub, nil)
	}

	t.Run("inserts without conflicts", func(t *testing.T) {
		repo := new(mockEntryRepo)
		records := new(mockRecordRepo)
		pub := new(mockPublisher)
		handler := newHandler(repo, records, pub)

		repo.On("FindByDateRange", mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Entry{}, nil)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Entry")).Return(nil)
		pub.On("Publish", mock.Anything, domain.RoutingKeyEntryScheduled, mock.Anything).Return(nil)

		result, err := handler.Handle(context.Background(), InsertEntryCommand{
			Title: "Kitchen install",
			Start: date(2026, time.September, 1),
			End:   date(2026, time.September, 5),
		})

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.NotEqual(t, uuid.Nil, result.EntryID)
		assert.Empty(t, result.Planned)
		assert.Empty(t, result.Applied)

		repo.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("pushes an overlapping neighbor and records the move", func(t *testing.T) {
		repo := new(mockEntryRepo)
		records := new(mockRecordRepo)
		pub := new(mockPublisher)
		handler := newHandler(repo, records, pub)

		neighbor := testEntry(t, "A", date(2024, time.January, 10), date(2024, time.January, 12))

		repo.On("FindByDateRange", mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Entry{neighbor}, nil)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Entry")).Return(nil)
		repo.On("Update", mock.Anything, neighbor).Return(nil)
		records.On("Create", mock.Anything, mock.AnythingOfType("domain.RescheduleRecord")).Return(nil)
		pub.On("Publish", mock.Anything, domain.RoutingKeyEntryMoved, mock.Anything).Return(nil)
		pub.On("Publish", mock.Anything, domain.RoutingKeyEntryScheduled, mock.Anything).Return(nil)

		result, err := handler.Handle(context.Background(), InsertEntryCommand{
			Title: "New",
			Start: date(2024, time.January, 11),
			Plan:  domain.PlanConfig{Policy: domain.PolicyForward},
		})

		require.NoError(t, err)
		require.Len(t, result.Applied, 1)
		assert.Equal(t, neighbor.ID(), result.Applied[0].EntryID)
		// The snapshot entry carries the new dates once applied.
		assert.Equal(t, date(2024, time.January, 12), neighbor.Start())
		assert.Equal(t, date(2024, time.January, 14), neighbor.End())

		repo.AssertExpectations(t)
		records.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("skips failed moves without aborting the batch", func(t *testing.T) {
		repo := new(mockEntryRepo)
		records := new(mockRecordRepo)
		pub := new(mockPublisher)
		handler := newHandler(repo, records, pub)

		neighbor := testEntry(t, "A", date(2024, time.January, 10), date(2024, time.January, 12))

		repo.On("FindByDateRange", mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Entry{neighbor}, nil)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Entry")).Return(nil)
		repo.On("Update", mock.Anything, neighbor).Return(errors.New("row locked"))
		records.On("Create", mock.Anything, mock.MatchedBy(func(r domain.RescheduleRecord) bool {
			return !r.Success && r.FailureReason != ""
		})).Return(nil)
		pub.On("Publish", mock.Anything, domain.RoutingKeyEntryScheduled, mock.Anything).Return(nil)

		result, err := handler.Handle(context.Background(), InsertEntryCommand{
			Title: "New",
			Start: date(2024, time.January, 11),
		})

		require.NoError(t, err)
		assert.Len(t, result.Planned, 1)
		assert.Empty(t, result.Applied)

		records.AssertExpectations(t)
	})

	t.Run("does not create the entry when planning fails", func(t *testing.T) {
		repo := new(mockEntryRepo)
		records := new(mockRecordRepo)
		pub := new(mockPublisher)
		handler := newHandler(repo, records, pub)

		c1 := testEntry(t, "C1", date(2024, time.March, 1), date(2024, time.March, 2))
		c2 := testEntry(t, "C2", date(2024, time.March, 3), date(2024, time.March, 4))
		c3 := testEntry(t, "C3", date(2024, time.March, 5), date(2024, time.March, 6))

		repo.On("FindByDateRange", mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Entry{c1, c2, c3}, nil)

		_, err := handler.Handle(context.Background(), InsertEntryCommand{
			Title: "New",
			Start: date(2024, time.March, 1),
			End:   date(2024, time.March, 2),
			Plan:  domain.PlanConfig{Policy: domain.PolicyForward, MaxCascade: 1},
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCascadeLimit)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("fails when the entry cannot be created", func(t *testing.T) {
		repo := new(mockEntryRepo)
		records := new(mockRecordRepo)
		pub := new(mockPublisher)
		handler := newHandler(repo, records, pub)

		repo.On("FindByDateRange", mock.Anything, mock.Anything, mock.Anything).Return([]*domain.Entry{}, nil)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Entry")).Return(errors.New("disk full"))

		_, err := handler.Handle(context.Background(), InsertEntryCommand{
			Title: "New",
			Start: date(2024, time.March, 1),
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create entry")
	})

	t.Run("requires a start date", func(t *testing.T) {
		handler := newHandler(new(mockEntryRepo), new(mockRecordRepo), new(mockPublisher))

		_, err := handler.Handle(context.Background(), InsertEntryCommand{Title: "No dates"})

		assert.ErrorIs(t, err, domain.ErrMissingStartDate)
	})
}
