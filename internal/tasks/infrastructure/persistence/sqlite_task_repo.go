package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/dayquest/internal/tasks/domain"
)

// SQLiteTaskRepository implements domain.Repository using SQLite.
type SQLiteTaskRepository struct {
	conn database.Connection
}

// NewSQLiteTaskRepository creates a new SQLite task repository.
func NewSQLiteTaskRepository(conn database.Connection) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{conn: conn}
}

func scanSQLiteTask(row database.Row, r *taskRow) error {
	var important, active int64
	if err := row.Scan(
		&r.ID, &r.Title, &r.Category, &r.Priority, &important, &r.RepeatType,
		&r.Mask, &r.GoalTime, &active, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return err
	}
	r.Important = important != 0
	r.Active = active != 0
	return nil
}

// FindActive returns active tasks ordered by id.
func (r *SQLiteTaskRepository) FindActive(ctx context.Context) ([]*domain.Task, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE is_active = 1 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query active tasks: %w", err)
	}
	return scanTasks(rows, func(rows database.Rows, row *taskRow) error {
		return scanSQLiteTask(rows, row)
	})
}

// FindByID retrieves a task by its ID, active or not.
func (r *SQLiteTaskRepository) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	var row taskRow
	err := scanSQLiteTask(exec.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id), &row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task %d: %w", id, err)
	}
	return row.toDomain(), nil
}

// Save inserts new tasks and updates existing ones.
func (r *SQLiteTaskRepository) Save(ctx context.Context, t *domain.Task) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	mask, goal := taskParams(t)

	if t.IsNew() {
		res, err := exec.Exec(ctx, `
			INSERT INTO tasks (title, category, priority, is_important, repeat_type,
				repeat_days_mask, goal_time, is_active, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.Title(), t.Category(), string(t.Priority()), boolToInt(t.IsImportant()), string(t.Recurrence()),
			mask, goal, boolToInt(t.IsActive()), t.CreatedAt().UnixMilli(), t.UpdatedAt().UnixMilli(),
		)
		if err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
		t.AssignID(id)
		return nil
	}

	res, err := exec.Exec(ctx, `
		UPDATE tasks SET title = ?, category = ?, priority = ?, is_important = ?, repeat_type = ?,
			repeat_days_mask = ?, goal_time = ?, is_active = ?, updated_at = ?
		WHERE id = ?`,
		t.Title(), t.Category(), string(t.Priority()), boolToInt(t.IsImportant()), string(t.Recurrence()),
		mask, goal, boolToInt(t.IsActive()), t.UpdatedAt().UnixMilli(), t.ID(),
	)
	if err != nil {
		return fmt.Errorf("update task %d: %w", t.ID(), err)
	}
	return requireAffected(res)
}

// SoftDelete marks a task inactive.
func (r *SQLiteTaskRepository) SoftDelete(ctx context.Context, id int64, now time.Time) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	res, err := exec.Exec(ctx, `UPDATE tasks SET is_active = 0, updated_at = ? WHERE id = ?`, now.UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return requireAffected(res)
}

func requireAffected(res database.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
