package services

import (
	"context"
	"testing"
	"time"

	sharedApplication "github.com/felixgeelhaar/dayquest/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/dayquest/internal/shared/domain"
	tasksDomain "github.com/felixgeelhaar/dayquest/internal/tasks/domain"
	"github.com/felixgeelhaar/dayquest/internal/today/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T) (*memStore, int64) {
	t.Helper()
	store := newMemStore(makeTask(10, "Laundry", tasksDomain.RecurrenceDaily, 0, false, created))
	_, err := store.InsertIgnore(context.Background(), []*domain.DailyItem{domain.NewDailyItem("2026-02-14", 10, now)})
	require.NoError(t, err)
	return store, store.itemsOn("2026-02-14")[0].ID
}

func TestStatusMachine_Done(t *testing.T) {
	store, id := seededStore(t)
	machine := NewStatusMachine(store, sharedApplication.NoopUnitOfWork{})

	res, err := machine.Transition(context.Background(), TransitionCommand{ItemID: id, To: domain.StatusDone, Now: now})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTodo, res.Previous)

	item, _ := store.FindByID(context.Background(), id)
	assert.Equal(t, domain.StatusDone, item.Status)
	require.NotNil(t, item.CompletedAt)
	assert.Equal(t, now, *item.CompletedAt)

	// Undo clears the completion time.
	_, err = machine.Transition(context.Background(), TransitionCommand{ItemID: id, To: domain.StatusTodo, Now: now})
	require.NoError(t, err)
	item, _ = store.FindByID(context.Background(), id)
	assert.Equal(t, domain.StatusTodo, item.Status)
	assert.Nil(t, item.CompletedAt)
}

func TestStatusMachine_DeferDefaultsToNextDay(t *testing.T) {
	store, id := seededStore(t)
	machine := NewStatusMachine(store, sharedApplication.NoopUnitOfWork{})
	later := now.Add(2 * time.Hour)

	res, err := machine.Transition(context.Background(), TransitionCommand{ItemID: id, To: domain.StatusDeferred, Now: later})
	require.NoError(t, err)
	assert.True(t, res.DeferredItemCreated)
	assert.Equal(t, domain.DateKey("2026-02-15"), res.Item.DeferredTo)
	assert.Nil(t, res.Item.CompletedAt)

	next := store.itemsOn("2026-02-15")
	require.Len(t, next, 1)
	assert.Equal(t, int64(10), next[0].TaskID)
	assert.Equal(t, domain.StatusTodo, next[0].Status)
	assert.Equal(t, later, next[0].CreatedAt)
}

func TestStatusMachine_DeferOntoExistingItemDoesNotDuplicate(t *testing.T) {
	store, id := seededStore(t)
	_, err := store.InsertIgnore(context.Background(), []*domain.DailyItem{domain.NewDailyItem("2026-02-15", 10, now)})
	require.NoError(t, err)
	machine := NewStatusMachine(store, sharedApplication.NoopUnitOfWork{})

	res, err := machine.Transition(context.Background(), TransitionCommand{
		ItemID: id, To: domain.StatusDeferred, DeferTo: "2026-02-15", Now: now,
	})
	require.NoError(t, err)
	assert.False(t, res.DeferredItemCreated)
	assert.Len(t, store.itemsOn("2026-02-15"), 1)

	// Deferring again collapses to the same instance.
	_, err = machine.Transition(context.Background(), TransitionCommand{ItemID: id, To: domain.StatusDeferred, DeferTo: "2026-02-15", Now: now})
	require.NoError(t, err)
	assert.Len(t, store.itemsOn("2026-02-15"), 1)
}

func TestStatusMachine_DeferBackwardsIsRejectedWithoutWrites(t *testing.T) {
	store, id := seededStore(t)
	_, err := NewStatusMachine(store, sharedApplication.NoopUnitOfWork{}).Transition(context.Background(), TransitionCommand{ItemID: id, To: domain.StatusDone, Now: now})
	require.NoError(t, err)
	before, _ := store.FindByID(context.Background(), id)
	inserted := store.inserted

	_, err = NewStatusMachine(store, sharedApplication.NoopUnitOfWork{}).Transition(context.Background(), TransitionCommand{
		ItemID: id, To: domain.StatusDeferred, DeferTo: "2026-02-13", Now: now.Add(time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrDeferBeforeSource)
	assert.ErrorIs(t, err, sharedDomain.ErrValidation)

	after, _ := store.FindByID(context.Background(), id)
	assert.Equal(t, before, after)
	assert.Equal(t, inserted, store.inserted)
	assert.Empty(t, store.itemsOn("2026-02-13"))
}

func TestStatusMachine_Validation(t *testing.T) {
	store, id := seededStore(t)
	machine := NewStatusMachine(store, sharedApplication.NoopUnitOfWork{})

	_, err := machine.Transition(context.Background(), TransitionCommand{ItemID: 0, To: domain.StatusDone})
	assert.ErrorIs(t, err, domain.ErrInvalidItemID)

	_, err = machine.Transition(context.Background(), TransitionCommand{ItemID: id, To: "LATER"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = machine.Transition(context.Background(), TransitionCommand{ItemID: 999, To: domain.StatusDone})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	assert.ErrorIs(t, err, sharedDomain.ErrNotFound)
}

type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return ctx, args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestStatusMachine_RunsInOneUnitOfWork(t *testing.T) {
	store, id := seededStore(t)

	uow := new(mockUnitOfWork)
	uow.On("Begin", mock.Anything).Return(nil, nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()

	_, err := NewStatusMachine(store, uow).Transition(context.Background(), TransitionCommand{ItemID: id, To: domain.StatusDeferred, Now: now})
	require.NoError(t, err)
	uow.AssertExpectations(t)

	rollback := new(mockUnitOfWork)
	rollback.On("Begin", mock.Anything).Return(nil, nil).Once()
	rollback.On("Rollback", mock.Anything).Return(nil).Once()

	_, err = NewStatusMachine(store, rollback).Transition(context.Background(), TransitionCommand{ItemID: id, To: domain.StatusDeferred, DeferTo: "2026-01-01", Now: now})
	require.Error(t, err)
	rollback.AssertExpectations(t)
}
