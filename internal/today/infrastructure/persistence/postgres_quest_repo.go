package persistence

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/dayquest/internal/today/domain"
)

// PostgresQuestRepository implements domain.QuestRepository using PostgreSQL.
type PostgresQuestRepository struct {
	conn database.Connection
}

// NewPostgresQuestRepository creates a new PostgreSQL quest repository.
func NewPostgresQuestRepository(conn database.Connection) *PostgresQuestRepository {
	return &PostgresQuestRepository{conn: conn}
}

func scanPostgresQuest(row database.Row, r *questRow) error {
	return row.Scan(&r.ID, &r.DateKey, &r.Type, &r.Title, &r.Target, &r.Progress, &r.Achieved, &r.AchievedAt)
}

// FindByType returns the quest of the given type for date.
func (r *PostgresQuestRepository) FindByType(ctx context.Context, date domain.DateKey, questType domain.QuestType) (*domain.Quest, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	var row questRow
	err := scanPostgresQuest(exec.QueryRow(ctx,
		`SELECT `+questColumns+` FROM quests WHERE date_key = $1 AND quest_type = $2`,
		date.String(), string(questType)), &row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrQuestNotFound
		}
		return nil, fmt.Errorf("find quest %s for %s: %w", questType, date, err)
	}
	return row.toDomain()
}

// FindByDate returns the date's quests in creation order.
func (r *PostgresQuestRepository) FindByDate(ctx context.Context, date domain.DateKey) ([]*domain.Quest, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, `SELECT `+questColumns+` FROM quests WHERE date_key = $1 ORDER BY id`, date.String())
	if err != nil {
		return nil, fmt.Errorf("query quests for %s: %w", date, err)
	}
	return scanQuests(rows, func(rows database.Rows, row *questRow) error {
		return scanPostgresQuest(rows, row)
	})
}

// InsertIgnore inserts q unless its (date, type) pair exists.
func (r *PostgresQuestRepository) InsertIgnore(ctx context.Context, q *domain.Quest) (bool, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	var id int64
	err := exec.QueryRow(ctx, `
		INSERT INTO quests (date_key, quest_type, title, target, progress, achieved, achieved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (date_key, quest_type) DO NOTHING
		RETURNING id`,
		q.DateKey.String(), string(q.Type), q.Title, q.Target, q.Progress, q.Achieved, toMillis(q.AchievedAt),
	).Scan(&id)
	if database.IsNoRows(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("insert quest %s for %s: %w", q.Type, q.DateKey, err)
	}
	q.ID = id
	return true, nil
}

// Update writes every mutable quest column.
func (r *PostgresQuestRepository) Update(ctx context.Context, q *domain.Quest) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	res, err := exec.Exec(ctx, `
		UPDATE quests SET title = $1, target = $2, progress = $3, achieved = $4, achieved_at = $5
		WHERE id = $6`,
		q.Title, q.Target, q.Progress, q.Achieved, toMillis(q.AchievedAt), q.ID,
	)
	if err != nil {
		return fmt.Errorf("update quest %d: %w", q.ID, err)
	}
	return requireAffected(res, domain.ErrQuestNotFound)
}

func (r *PostgresQuestRepository) CountAchievedByDate(ctx context.Context, date domain.DateKey) (int, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	n, err := countOne(exec.QueryRow(ctx, `SELECT COUNT(*) FROM quests WHERE date_key = $1 AND achieved`, date.String()))
	if err != nil {
		return 0, fmt.Errorf("count achieved quests: %w", err)
	}
	return n, nil
}
