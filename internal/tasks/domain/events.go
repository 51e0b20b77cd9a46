package domain

import (
	"strconv"
	"time"

	sharedDomain "github.com/felixgeelhaar/dayquest/internal/shared/domain"
)

const aggregateType = "Task"

// TaskSaved is emitted when a task is created or updated.
type TaskSaved struct {
	sharedDomain.BaseEvent
	TaskID     int64  `json:"task_id"`
	Title      string `json:"title"`
	Recurrence string `json:"recurrence"`
	Created    bool   `json:"created"`
}

// NewTaskSaved creates a TaskSaved event.
func NewTaskSaved(t *Task, created bool, now time.Time) *TaskSaved {
	return &TaskSaved{
		BaseEvent:  sharedDomain.NewBaseEvent(strconv.FormatInt(t.ID(), 10), aggregateType, "tasks.task.saved", now),
		TaskID:     t.ID(),
		Title:      t.Title(),
		Recurrence: string(t.Recurrence()),
		Created:    created,
	}
}

// TaskDeleted is emitted when a task is soft-deleted.
type TaskDeleted struct {
	sharedDomain.BaseEvent
	TaskID int64 `json:"task_id"`
}

// NewTaskDeleted creates a TaskDeleted event.
func NewTaskDeleted(id int64, now time.Time) *TaskDeleted {
	return &TaskDeleted{
		BaseEvent: sharedDomain.NewBaseEvent(strconv.FormatInt(id, 10), aggregateType, "tasks.task.deleted", now),
		TaskID:    id,
	}
}
