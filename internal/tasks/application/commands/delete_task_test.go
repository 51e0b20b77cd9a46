package commands

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/dayquest/internal/tasks/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteTaskHandler(t *testing.T) {
	now := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)

	t.Run("soft deletes", func(t *testing.T) {
		repo := new(mockTaskRepo)
		uow := newCommittingUoW()
		pub := new(mockPublisher)

		repo.On("FindByID", mock.Anything, int64(4)).Return(existingTask(4, "Read"), nil)
		repo.On("SoftDelete", mock.Anything, int64(4), now).Return(nil)
		pub.On("Publish", mock.Anything, "tasks.task.deleted", mock.Anything).Return(nil)

		err := NewDeleteTaskHandler(repo, uow, pub).Handle(context.Background(), DeleteTaskCommand{TaskID: 4, Now: now})
		require.NoError(t, err)
		repo.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := new(mockTaskRepo)
		uow := newRollingBackUoW()
		repo.On("FindByID", mock.Anything, int64(5)).Return(nil, domain.ErrTaskNotFound)

		err := NewDeleteTaskHandler(repo, uow, nil).Handle(context.Background(), DeleteTaskCommand{TaskID: 5, Now: now})
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
		repo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid id", func(t *testing.T) {
		err := NewDeleteTaskHandler(new(mockTaskRepo), new(mockUnitOfWork), nil).Handle(context.Background(), DeleteTaskCommand{})
		assert.ErrorIs(t, err, domain.ErrInvalidTaskID)
	})
}
