// Package persistence stores task definitions in SQLite or PostgreSQL.
package persistence

import (
	"time"

	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/dayquest/internal/tasks/domain"
)

const taskColumns = `id, title, category, priority, is_important, repeat_type,
	repeat_days_mask, goal_time, is_active, created_at, updated_at`

// taskRow represents a database row for tasks. Timestamps are epoch millis.
type taskRow struct {
	ID         int64
	Title      string
	Category   string
	Priority   string
	Important  bool
	RepeatType string
	Mask       *int64
	GoalTime   *string
	Active     bool
	CreatedAt  int64
	UpdatedAt  int64
}

func (r *taskRow) toDomain() *domain.Task {
	def := domain.Definition{
		Title:      r.Title,
		Category:   r.Category,
		Priority:   domain.Priority(r.Priority),
		Important:  r.Important,
		Recurrence: domain.RecurrenceKind(r.RepeatType),
	}
	if r.Mask != nil {
		def.Mask = domain.WeekdayMask(*r.Mask)
	}
	if r.GoalTime != nil {
		if g, err := domain.ParseGoalTime(*r.GoalTime); err == nil {
			def.GoalTime = &g
		}
	}
	return domain.RehydrateTask(r.ID, def, r.Active,
		time.UnixMilli(r.CreatedAt), time.UnixMilli(r.UpdatedAt))
}

// taskParams flattens a task into column values.
func taskParams(t *domain.Task) (mask *int64, goal *string) {
	if m := t.WeekdayMask(); m != 0 {
		v := int64(m)
		mask = &v
	}
	if g := t.GoalTime(); g != nil {
		s := g.String()
		goal = &s
	}
	return mask, goal
}

func scanTasks(rows database.Rows, scan func(database.Rows, *taskRow) error) ([]*domain.Task, error) {
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		var row taskRow
		if err := scan(rows, &row); err != nil {
			return nil, err
		}
		tasks = append(tasks, row.toDomain())
	}
	return tasks, rows.Err()
}
