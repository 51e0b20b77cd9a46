package domain

import (
	"context"

	tasksDomain "github.com/felixgeelhaar/dayquest/internal/tasks/domain"
)

// TaskCatalog is the read side of task definitions the generator needs.
type TaskCatalog interface {
	FindActive(ctx context.Context) ([]*tasksDomain.Task, error)
}

// TaskRow is one line of the today view: an item joined with its task.
type TaskRow struct {
	ItemID     int64      `json:"item_id" yaml:"item_id"`
	TaskID     int64      `json:"task_id" yaml:"task_id"`
	Title      string     `json:"title" yaml:"title"`
	Category   string     `json:"category" yaml:"category"`
	Important  bool       `json:"important" yaml:"important"`
	Priority   string     `json:"priority" yaml:"priority"`
	Status     ItemStatus `json:"status" yaml:"status"`
	DeferredTo DateKey    `json:"deferred_to,omitempty" yaml:"deferred_to,omitempty"`
	// GoalTime is the task's "HH:MM" goal time, empty when unset.
	GoalTime string `json:"goal_time,omitempty" yaml:"goal_time,omitempty"`
}

// ItemRepository persists daily items.
type ItemRepository interface {
	CountByDate(ctx context.Context, date DateKey) (int, error)
	CountByDateAndStatus(ctx context.Context, date DateKey, status ItemStatus) (int, error)
	// CountImportantByDate counts items whose task is flagged important.
	CountImportantByDate(ctx context.Context, date DateKey) (int, error)
	CountImportantByDateAndStatus(ctx context.Context, date DateKey, status ItemStatus) (int, error)

	// FindByID returns ErrItemNotFound when no row matches.
	FindByID(ctx context.Context, id int64) (*DailyItem, error)

	// InsertIgnore inserts items, silently skipping (date, task) pairs that
	// already exist, and returns the number of rows actually inserted.
	InsertIgnore(ctx context.Context, items []*DailyItem) (int, error)

	// UpdateState writes status, completion time and deferral target.
	UpdateState(ctx context.Context, item *DailyItem) error

	// ListTaskRows returns the date's items with task details, by item id.
	ListTaskRows(ctx context.Context, date DateKey) ([]TaskRow, error)
}

// QuestRepository persists quests.
type QuestRepository interface {
	// FindByType returns ErrQuestNotFound when the quest does not exist.
	FindByType(ctx context.Context, date DateKey, questType QuestType) (*Quest, error)
	FindByDate(ctx context.Context, date DateKey) ([]*Quest, error)
	// InsertIgnore inserts q unless (date, type) exists, reporting whether it did.
	InsertIgnore(ctx context.Context, q *Quest) (bool, error)
	Update(ctx context.Context, q *Quest) error
	CountAchievedByDate(ctx context.Context, date DateKey) (int, error)
}

// StreakRepository persists the singleton streak row.
type StreakRepository interface {
	// Get returns a zero-valued streak when none was saved yet.
	Get(ctx context.Context) (*Streak, error)
	Save(ctx context.Context, s *Streak) error
}
