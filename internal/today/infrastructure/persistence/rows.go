// Package persistence stores daily items, quests and the streak in SQLite or
// PostgreSQL.
package persistence

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/dayquest/internal/today/domain"
)

const itemColumns = `id, date_key, task_id, status, completed_at, deferred_to_date_key, created_at`

const questColumns = `id, date_key, quest_type, title, target, progress, achieved, achieved_at`

// taskRowsQuery selects the today view; the placeholder is rewritten per driver.
const taskRowsQuery = `
	SELECT d.id, d.task_id, t.title, t.category, t.is_important, t.priority,
		d.status, d.deferred_to_date_key, t.goal_time
	FROM daily_items d
	JOIN tasks t ON t.id = d.task_id
	WHERE d.date_key = %s
	ORDER BY d.id`

// itemRow represents a database row for daily items. Timestamps are epoch millis.
type itemRow struct {
	ID          int64
	DateKey     string
	TaskID      int64
	Status      string
	CompletedAt *int64
	DeferredTo  *string
	CreatedAt   int64
}

func (r *itemRow) scan(row database.Row) error {
	return row.Scan(&r.ID, &r.DateKey, &r.TaskID, &r.Status, &r.CompletedAt, &r.DeferredTo, &r.CreatedAt)
}

// storedKey validates a date key read from a row.
func storedKey(column, value string) (domain.DateKey, error) {
	key := domain.DateKey(value)
	if err := key.Validate(); err != nil {
		return "", fmt.Errorf("stored %s %q: %w", column, value, err)
	}
	return key, nil
}

func (r *itemRow) toDomain() (*domain.DailyItem, error) {
	date, err := storedKey("date_key", r.DateKey)
	if err != nil {
		return nil, err
	}
	item := &domain.DailyItem{
		ID:          r.ID,
		DateKey:     date,
		TaskID:      r.TaskID,
		Status:      domain.ItemStatus(r.Status),
		CompletedAt: fromMillis(r.CompletedAt),
		CreatedAt:   time.UnixMilli(r.CreatedAt),
	}
	if r.DeferredTo != nil {
		if item.DeferredTo, err = storedKey("deferred_to_date_key", *r.DeferredTo); err != nil {
			return nil, err
		}
	}
	return item, nil
}

// questRow represents a database row for quests.
type questRow struct {
	ID         int64
	DateKey    string
	Type       string
	Title      string
	Target     int
	Progress   int
	Achieved   bool
	AchievedAt *int64
}

func (r *questRow) toDomain() (*domain.Quest, error) {
	date, err := storedKey("date_key", r.DateKey)
	if err != nil {
		return nil, err
	}
	return &domain.Quest{
		ID:         r.ID,
		DateKey:    date,
		Type:       domain.QuestType(r.Type),
		Title:      r.Title,
		Target:     r.Target,
		Progress:   r.Progress,
		Achieved:   r.Achieved,
		AchievedAt: fromMillis(r.AchievedAt),
	}, nil
}

func scanQuests(rows database.Rows, scan func(database.Rows, *questRow) error) ([]*domain.Quest, error) {
	defer rows.Close()

	var quests []*domain.Quest
	for rows.Next() {
		var row questRow
		if err := scan(rows, &row); err != nil {
			return nil, err
		}
		quest, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		quests = append(quests, quest)
	}
	return quests, rows.Err()
}

func scanTaskRows(rows database.Rows, scan func(database.Rows, *domain.TaskRow) error) ([]domain.TaskRow, error) {
	defer rows.Close()

	var out []domain.TaskRow
	for rows.Next() {
		var row domain.TaskRow
		if err := scan(rows, &row); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func toMillis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func fromMillis(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms)
	return &t
}

func nullableKey(k domain.DateKey) *string {
	if k.IsZero() {
		return nil
	}
	s := k.String()
	return &s
}

func countOne(row database.Row) (int, error) {
	var n int
	err := row.Scan(&n)
	return n, err
}

func requireAffected(res database.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
