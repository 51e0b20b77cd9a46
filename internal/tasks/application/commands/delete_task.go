package commands

import (
	"context"
	"time"

	sharedApplication "github.com/felixgeelhaar/dayquest/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/dayquest/internal/shared/domain"
	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/dayquest/internal/tasks/domain"
)

// DeleteTaskCommand soft-deletes a task. Items already generated stay.
type DeleteTaskCommand struct {
	TaskID int64
	Now    time.Time
}

// DeleteTaskHandler handles the DeleteTaskCommand.
type DeleteTaskHandler struct {
	repo      domain.Repository
	uow       sharedApplication.UnitOfWork
	publisher eventbus.Publisher
}

// NewDeleteTaskHandler creates a new DeleteTaskHandler.
func NewDeleteTaskHandler(repo domain.Repository, uow sharedApplication.UnitOfWork, publisher eventbus.Publisher) *DeleteTaskHandler {
	return &DeleteTaskHandler{repo: repo, uow: uow, publisher: publisher}
}

// Handle executes the DeleteTaskCommand.
func (h *DeleteTaskHandler) Handle(ctx context.Context, cmd DeleteTaskCommand) error {
	if cmd.TaskID <= 0 {
		return domain.ErrInvalidTaskID
	}
	now := cmd.Now
	if now.IsZero() {
		now = time.Now()
	}

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if _, err := h.repo.FindByID(txCtx, cmd.TaskID); err != nil {
			return err
		}
		return h.repo.SoftDelete(txCtx, cmd.TaskID, now)
	})
	if err != nil {
		return err
	}

	events := []sharedDomain.DomainEvent{domain.NewTaskDeleted(cmd.TaskID, now)}
	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(ctx))
	eventbus.PublishDomainEvents(ctx, h.publisher, events, nil)
	return nil
}
