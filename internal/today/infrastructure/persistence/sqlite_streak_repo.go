package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/dayquest/internal/today/domain"
)

// SQLiteStreakRepository implements domain.StreakRepository using SQLite.
type SQLiteStreakRepository struct {
	conn database.Connection
}

// NewSQLiteStreakRepository creates a new SQLite streak repository.
func NewSQLiteStreakRepository(conn database.Connection) *SQLiteStreakRepository {
	return &SQLiteStreakRepository{conn: conn}
}

// Get loads the streak row, or a zero streak before the first save.
func (r *SQLiteStreakRepository) Get(ctx context.Context) (*domain.Streak, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	return getStreak(exec.QueryRow(ctx,
		`SELECT current_streak, best_streak, last_achieved_date_key, updated_at FROM streaks WHERE id = 1`))
}

// Save upserts the streak row.
func (r *SQLiteStreakRepository) Save(ctx context.Context, s *domain.Streak) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, `
		INSERT INTO streaks (id, current_streak, best_streak, last_achieved_date_key, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			current_streak = excluded.current_streak,
			best_streak = excluded.best_streak,
			last_achieved_date_key = excluded.last_achieved_date_key,
			updated_at = excluded.updated_at`,
		s.Current, s.Best, nullableKey(s.LastAchieved), s.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	return nil
}

func getStreak(row database.Row) (*domain.Streak, error) {
	var (
		s         domain.Streak
		last      *string
		updatedAt int64
	)
	if err := row.Scan(&s.Current, &s.Best, &last, &updatedAt); err != nil {
		if database.IsNoRows(err) {
			return &domain.Streak{}, nil
		}
		return nil, fmt.Errorf("load streak: %w", err)
	}
	if last != nil {
		key, err := storedKey("last_achieved_date_key", *last)
		if err != nil {
			return nil, fmt.Errorf("load streak: %w", err)
		}
		s.LastAchieved = key
	}
	s.UpdatedAt = time.UnixMilli(updatedAt)
	return &s, nil
}
