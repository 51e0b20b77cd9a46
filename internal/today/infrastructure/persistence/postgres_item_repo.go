package persistence

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/dayquest/internal/today/domain"
	"github.com/lib/pq"
)

// PostgresItemRepository implements domain.ItemRepository using PostgreSQL.
type PostgresItemRepository struct {
	conn database.Connection
}

// NewPostgresItemRepository creates a new PostgreSQL daily item repository.
func NewPostgresItemRepository(conn database.Connection) *PostgresItemRepository {
	return &PostgresItemRepository{conn: conn}
}

func (r *PostgresItemRepository) CountByDate(ctx context.Context, date domain.DateKey) (int, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	n, err := countOne(exec.QueryRow(ctx, `SELECT COUNT(*) FROM daily_items WHERE date_key = $1`, date.String()))
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

func (r *PostgresItemRepository) CountByDateAndStatus(ctx context.Context, date domain.DateKey, status domain.ItemStatus) (int, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	n, err := countOne(exec.QueryRow(ctx,
		`SELECT COUNT(*) FROM daily_items WHERE date_key = $1 AND status = $2`, date.String(), string(status)))
	if err != nil {
		return 0, fmt.Errorf("count %s items: %w", status, err)
	}
	return n, nil
}

func (r *PostgresItemRepository) CountImportantByDate(ctx context.Context, date domain.DateKey) (int, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	n, err := countOne(exec.QueryRow(ctx, `
		SELECT COUNT(*) FROM daily_items d JOIN tasks t ON t.id = d.task_id
		WHERE d.date_key = $1 AND t.is_important`, date.String()))
	if err != nil {
		return 0, fmt.Errorf("count important items: %w", err)
	}
	return n, nil
}

func (r *PostgresItemRepository) CountImportantByDateAndStatus(ctx context.Context, date domain.DateKey, status domain.ItemStatus) (int, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	n, err := countOne(exec.QueryRow(ctx, `
		SELECT COUNT(*) FROM daily_items d JOIN tasks t ON t.id = d.task_id
		WHERE d.date_key = $1 AND d.status = $2 AND t.is_important`, date.String(), string(status)))
	if err != nil {
		return 0, fmt.Errorf("count important %s items: %w", status, err)
	}
	return n, nil
}

// FindByID retrieves an item by its ID.
func (r *PostgresItemRepository) FindByID(ctx context.Context, id int64) (*domain.DailyItem, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	var row itemRow
	if err := row.scan(exec.QueryRow(ctx, `SELECT `+itemColumns+` FROM daily_items WHERE id = $1`, id)); err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item %d: %w", id, err)
	}
	return row.toDomain()
}

// InsertIgnore inserts all items in one statement, skipping existing
// (date, task) pairs. New items are always TODO, so only the keys and the
// creation time travel as arrays.
func (r *PostgresItemRepository) InsertIgnore(ctx context.Context, items []*domain.DailyItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	dates := make([]string, len(items))
	taskIDs := make([]int64, len(items))
	created := make([]int64, len(items))
	for i, item := range items {
		dates[i] = item.DateKey.String()
		taskIDs[i] = item.TaskID
		created[i] = item.CreatedAt.UnixMilli()
	}

	exec := database.ExecutorFromContext(ctx, r.conn)
	res, err := exec.Exec(ctx, `
		INSERT INTO daily_items (date_key, task_id, status, created_at)
		SELECT d, t, 'TODO', c FROM unnest($1::text[], $2::bigint[], $3::bigint[]) AS x(d, t, c)
		ON CONFLICT (date_key, task_id) DO NOTHING`,
		pq.Array(dates), pq.Array(taskIDs), pq.Array(created),
	)
	if err != nil {
		return 0, fmt.Errorf("insert %d items: %w", len(items), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// UpdateState writes status, completion time and deferral target.
func (r *PostgresItemRepository) UpdateState(ctx context.Context, item *domain.DailyItem) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	res, err := exec.Exec(ctx, `
		UPDATE daily_items SET status = $1, completed_at = $2, deferred_to_date_key = $3
		WHERE id = $4`,
		string(item.Status), toMillis(item.CompletedAt), nullableKey(item.DeferredTo), item.ID,
	)
	if err != nil {
		return fmt.Errorf("update item %d: %w", item.ID, err)
	}
	return requireAffected(res, domain.ErrItemNotFound)
}

// ListTaskRows returns the date's items joined with their tasks.
func (r *PostgresItemRepository) ListTaskRows(ctx context.Context, date domain.DateKey) ([]domain.TaskRow, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, fmt.Sprintf(taskRowsQuery, "$1"), date.String())
	if err != nil {
		return nil, fmt.Errorf("list items for %s: %w", date, err)
	}
	return scanTaskRows(rows, func(rows database.Rows, row *domain.TaskRow) error {
		var deferred, goal *string
		if err := rows.Scan(&row.ItemID, &row.TaskID, &row.Title, &row.Category, &row.Important, &row.Priority,
			&row.Status, &deferred, &goal); err != nil {
			return err
		}
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
