package commands

import (
	"context"
	"time"

	sharedApplication "github.com/felixgeelhaar/dayquest/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/dayquest/internal/shared/domain"
	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/dayquest/internal/tasks/domain"
)

// SaveTaskCommand creates a task when TaskID is zero and updates it otherwise.
type SaveTaskCommand struct {
	TaskID     int64
	Title      string
	Category   string
	Priority   string
	Important  bool
	Recurrence string
	Mask       domain.WeekdayMask
	// GoalTime is "HH:MM" or empty.
	GoalTime string
	Now      time.Time
}

// SaveTaskResult reports the saved id and whether it was created.
type SaveTaskResult struct {
	TaskID  int64
	Created bool
}

// SaveTaskHandler handles the SaveTaskCommand.
type SaveTaskHandler struct {
	repo      domain.Repository
	uow       sharedApplication.UnitOfWork
	publisher eventbus.Publisher
}

// NewSaveTaskHandler creates a new SaveTaskHandler.
func NewSaveTaskHandler(repo domain.Repository, uow sharedApplication.UnitOfWork, publisher eventbus.Publisher) *SaveTaskHandler {
	return &SaveTaskHandler{repo: repo, uow: uow, publisher: publisher}
}

// Handle executes the SaveTaskCommand. A trimmed, case-insensitive title
// clash with another active task is rejected.
func (h *SaveTaskHandler) Handle(ctx context.Context, cmd SaveTaskCommand) (*SaveTaskResult, error) {
	if cmd.TaskID < 0 {
		return nil, domain.ErrInvalidTaskID
	}
	now := cmd.Now
	if now.IsZero() {
		now = time.Now()
	}

	def := domain.Definition{
		Title:      cmd.Title,
		Category:   cmd.Category,
		Priority:   domain.Priority(cmd.Priority),
		Important:  cmd.Important,
		Recurrence: domain.RecurrenceKind(cmd.Recurrence),
		Mask:       cmd.Mask,
	}
	if cmd.GoalTime != "" {
		goal, err := domain.ParseGoalTime(cmd.GoalTime)
		if err != nil {
			return nil, err
		}
		def.GoalTime = &goal
	}

	var (
		result *SaveTaskResult
		task   *domain.Task
	)
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		active, err := h.repo.FindActive(txCtx)
		if err != nil {
			return err
		}
		normalized := domain.NormalizeTitle(cmd.Title)
		for _, other := range active {
			if other.ID() != cmd.TaskID && other.NormalizedTitle() == normalized {
				return domain.ErrDuplicateTitle
			}
		}

		created := cmd.TaskID == 0
		if created {
			task, err = domain.NewTask(def, now)
			if err != nil {
				return err
			}
		} else {
			task, err = h.repo.FindByID(txCtx, cmd.TaskID)
			if err != nil {
				return err
			}
			if err := task.Update(def, now); err != nil {
				return err
			}
		}

		if err := h.repo.Save(txCtx, task); err != nil {
			return err
		}
		result = &SaveTaskResult{TaskID: task.ID(), Created: created}
		return nil
	})
	if err != nil {
		return nil, err
	}

	events := []sharedDomain.DomainEvent{domain.NewTaskSaved(task, result.Created, now)}
	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(ctx))
	eventbus.PublishDomainEvents(ctx, h.publisher, events, nil)

	return result, nil
}
