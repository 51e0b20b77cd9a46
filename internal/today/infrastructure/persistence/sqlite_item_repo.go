package persistence

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/dayquest/internal/today/domain"
)

// SQLiteItemRepository implements domain.ItemRepository using SQLite.
type SQLiteItemRepository struct {
	conn database.Connection
}

// NewSQLiteItemRepository creates a new SQLite daily item repository.
func NewSQLiteItemRepository(conn database.Connection) *SQLiteItemRepository {
	return &SQLiteItemRepository{conn: conn}
}

func (r *SQLiteItemRepository) CountByDate(ctx context.Context, date domain.DateKey) (int, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	n, err := countOne(exec.QueryRow(ctx, `SELECT COUNT(*) FROM daily_items WHERE date_key = ?`, date.String()))
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

func (r *SQLiteItemRepository) CountByDateAndStatus(ctx context.Context, date domain.DateKey, status domain.ItemStatus) (int, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	n, err := countOne(exec.QueryRow(ctx,
		`SELECT COUNT(*) FROM daily_items WHERE date_key = ? AND status = ?`, date.String(), string(status)))
	if err != nil {
		return 0, fmt.Errorf("count %s items: %w", status, err)
	}
	return n, nil
}

func (r *SQLiteItemRepository) CountImportantByDate(ctx context.Context, date domain.DateKey) (int, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	n, err := countOne(exec.QueryRow(ctx, `
		SELECT COUNT(*) FROM daily_items d JOIN tasks t ON t.id = d.task_id
		WHERE d.date_key = ? AND t.is_important = 1`, date.String()))
	if err != nil {
		return 0, fmt.Errorf("count important items: %w", err)
	}
	return n, nil
}

func (r *SQLiteItemRepository) CountImportantByDateAndStatus(ctx context.Context, date domain.DateKey, status domain.ItemStatus) (int, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	n, err := countOne(exec.QueryRow(ctx, `
		SELECT COUNT(*) FROM daily_items d JOIN tasks t ON t.id = d.task_id
		WHERE d.date_key = ? AND d.status = ? AND t.is_important = 1`, date.String(), string(status)))
	if err != nil {
		return 0, fmt.Errorf("count important %s items: %w", status, err)
	}
	return n, nil
}

// FindByID retrieves an item by its ID.
func (r *SQLiteItemRepository) FindByID(ctx context.Context, id int64) (*domain.DailyItem, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	var row itemRow
	if err := row.scan(exec.QueryRow(ctx, `SELECT `+itemColumns+` FROM daily_items WHERE id = ?`, id)); err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item %d: %w", id, err)
	}
	return row.toDomain()
}

// InsertIgnore inserts each item unless its (date, task) pair exists.
// Inserted items get their ID assigned.
func (r *SQLiteItemRepository) InsertIgnore(ctx context.Context, items []*domain.DailyItem) (int, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	inserted := 0
	for _, item := range items {
		res, err := exec.Exec(ctx, `
			INSERT INTO daily_items (date_key, task_id, status, completed_at, deferred_to_date_key, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (date_key, task_id) DO NOTHING`,
			item.DateKey.String(), item.TaskID, string(item.Status),
			toMillis(item.CompletedAt), nullableKey(item.DeferredTo), item.CreatedAt.UnixMilli(),
		)
		if err != nil {
			return inserted, fmt.Errorf("insert item for task %d on %s: %w", item.TaskID, item.DateKey, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return inserted, err
		}
		if n == 0 {
			continue
		}
		if id, err := res.LastInsertId(); err == nil {
			item.ID = id
		}
		inserted++
	}
	return inserted, nil
}

// UpdateState writes status, completion time and deferral target.
func (r *SQLiteItemRepository) UpdateState(ctx context.Context, item *domain.DailyItem) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	res, err := exec.Exec(ctx, `
		UPDATE daily_items SET status = ?, completed_at = ?, deferred_to_date_key = ?
		WHERE id = ?`,
		string(item.Status), toMillis(item.CompletedAt), nullableKey(item.DeferredTo), item.ID,
	)
	if err != nil {
		return fmt.Errorf("update item %d: %w", item.ID, err)
	}
	return requireAffected(res, domain.ErrItemNotFound)
}

// ListTaskRows returns the date's items joined with their tasks.
func (r *SQLiteItemRepository) ListTaskRows(ctx context.Context, date domain.DateKey) ([]domain.TaskRow, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, fmt.Sprintf(taskRowsQuery, "?"), date.String())
	if err != nil {
		return nil, fmt.Errorf("list items for %s: %w", date, err)
	}
	return scanTaskRows(rows, func(rows database.Rows, row *domain.TaskRow) error {
		var important int64
		var deferred, goal *string
		if err := rows.Scan(&row.ItemID, &row.TaskID, &row.Title, &row.Category, &important, &row.Priority,
			&row.Status, &deferred, &goal); err != nil {
			return err
		}
		row.Important = important != 0
		if deferred != nil {
			key, err := storedKey("deferred_to_date_key", *deferred)
			if err != nil {
				return err
			}
			row.DeferredTo = key
		}
		if goal != nil {
			row.GoalTime = *goal
		}
		return nil
	})
}
