package persistence

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/dayquest/internal/today/domain"
)

// PostgresStreakRepository implements domain.StreakRepository using PostgreSQL.
type PostgresStreakRepository struct {
	conn database.Connection
}

// NewPostgresStreakRepository creates a new PostgreSQL streak repository.
func NewPostgresStreakRepository(conn database.Connection) *PostgresStreakRepository {
	return &PostgresStreakRepository{conn: conn}
}

// Get loads the streak row, or a zero streak before the first save.
func (r *PostgresStreakRepository) Get(ctx context.Context) (*domain.Streak, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	return getStreak(exec.QueryRow(ctx,
		`SELECT current_streak, best_streak, last_achieved_date_key, updated_at FROM streaks WHERE id = 1`))
}

// Save upserts the streak row.
func (r *PostgresStreakRepository) Save(ctx context.Context, s *domain.Streak) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err := exec.Exec(ctx, `
		INSERT INTO streaks (id, current_streak, best_streak, last_achieved_date_key, updated_at)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			current_streak = EXCLUDED.current_streak,
			best_streak = EXCLUDED.best_streak,
			last_achieved_date_key = EXCLUDED.last_achieved_date_key,
			updated_at = EXCLUDED.updated_at`,
		s.Current, s.Best, nullableKey(s.LastAchieved), s.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	return nil
}
