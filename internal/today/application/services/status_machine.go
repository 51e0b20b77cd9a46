package services

import (
	"context"
	"time"

	sharedApplication "github.com/felixgeelhaar/dayquest/internal/shared/application"
	"github.com/felixgeelhaar/dayquest/internal/today/domain"
)

// TransitionCommand moves one item to a new status.
type TransitionCommand struct {
	ItemID int64
	To     domain.ItemStatus
	// DeferTo is only read for DEFERRED; empty means the next day.
	DeferTo domain.DateKey
	Now     time.Time
}

// TransitionResult describes the applied transition.
type TransitionResult struct {
	Item     *domain.DailyItem
	Previous domain.ItemStatus
	// DeferredItemCreated is false when the target date already had an item
	// for the task.
	DeferredItemCreated bool
}

// StatusMachine applies item status transitions.
type StatusMachine struct {
	items domain.ItemRepository
	uow   sharedApplication.UnitOfWork
}

// NewStatusMachine creates a StatusMachine.
func NewStatusMachine(items domain.ItemRepository, uow sharedApplication.UnitOfWork) *StatusMachine {
	return &StatusMachine{items: items, uow: uow}
}

// Transition rewrites the item's state. Deferral also puts a TODO item for
// the same task on the target date; the state write and that insert commit
// together.
func (m *StatusMachine) Transition(ctx context.Context, cmd TransitionCommand) (*TransitionResult, error) {
	if cmd.ItemID <= 0 {
		return nil, domain.ErrInvalidItemID
	}
	if !cmd.To.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	var result *TransitionResult
	err := sharedApplication.WithUnitOfWork(ctx, m.uow, func(txCtx context.Context) error {
		item, err := m.items.FindByID(txCtx, cmd.ItemID)
		if err != nil {
			return err
		}

		var target domain.DateKey
		if cmd.To == domain.StatusDeferred {
			target, err = item.DeferTarget(cmd.DeferTo)
			if err != nil {
				return err
			}
		}

		previous := item.Status
		if err := item.SetStatus(cmd.To, cmd.Now, target); err != nil {
			return err
		}
		if err := m.items.UpdateState(txCtx, item); err != nil {
			return err
		}

		result = &TransitionResult{Item: item, Previous: previous}
		if cmd.To != domain.StatusDeferred {
			return nil
		}

		inserted, err := m.items.InsertIgnore(txCtx, []*domain.DailyItem{
			domain.NewDailyItem(target, item.TaskID, cmd.Now),
		})
		if err != nil {
			return err
		}
		result.DeferredItemCreated = inserted > 0
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
