package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/dayquest/internal/tasks/domain"
)

// PostgresTaskRepository implements domain.Repository using PostgreSQL.
type PostgresTaskRepository struct {
	conn database.Connection
}

// NewPostgresTaskRepository creates a new PostgreSQL task repository.
func NewPostgresTaskRepository(conn database.Connection) *PostgresTaskRepository {
	return &PostgresTaskRepository{conn: conn}
}

func scanPostgresTask(row database.Row, r *taskRow) error {
	return row.Scan(
		&r.ID, &r.Title, &r.Category, &r.Priority, &r.Important, &r.RepeatType,
		&r.Mask, &r.GoalTime, &r.Active, &r.CreatedAt, &r.UpdatedAt,
	)
}

// FindActive returns active tasks ordered by id.
func (r *PostgresTaskRepository) FindActive(ctx context.Context) ([]*domain.Task, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query active tasks: %w", err)
	}
	return scanTasks(rows, func(rows database.Rows, row *taskRow) error {
		return scanPostgresTask(rows, row)
	})
}

// FindByID retrieves a task by its ID, active or not.
func (r *PostgresTaskRepository) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	var row taskRow
	err := scanPostgresTask(exec.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id), &row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task %d: %w", id, err)
	}
	return row.toDomain(), nil
}

// Save inserts new tasks and updates existing ones.
func (r *PostgresTaskRepository) Save(ctx context.Context, t *domain.Task) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	mask, goal := taskParams(t)

	if t.IsNew() {
		var id int64
		err := exec.QueryRow(ctx, `
			INSERT INTO tasks (title, category, priority, is_important, repeat_type,
				repeat_days_mask, goal_time, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id`,
			t.Title(), t.Category(), string(t.Priority()), t.IsImportant(), string(t.Recurrence()),
			mask, goal, t.IsActive(), t.CreatedAt().UnixMilli(), t.UpdatedAt().UnixMilli(),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
		t.AssignID(id)
		return nil
	}

	res, err := exec.Exec(ctx, `
		UPDATE tasks SET title = $1, category = $2, priority = $3, is_important = $4, repeat_type = $5,
			repeat_days_mask = $6, goal_time = $7, is_active = $8, updated_at = $9
		WHERE id = $10`,
		t.Title(), t.Category(), string(t.Priority()), t.IsImportant(), string(t.Recurrence()),
		mask, goal, t.IsActive(), t.UpdatedAt().UnixMilli(), t.ID(),
	)
	if err != nil {
		return fmt.Errorf("update task %d: %w", t.ID(), err)
	}
	return requireAffected(res)
}

// SoftDelete marks a task inactive.
func (r *PostgresTaskRepository) SoftDelete(ctx context.Context, id int64, now time.Time) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	res, err := exec.Exec(ctx, `UPDATE tasks SET is_active = FALSE, updated_at = $1 WHERE id = $2`, now.UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return requireAffected(res)
}
