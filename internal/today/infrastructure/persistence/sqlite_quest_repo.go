package persistence

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/dayquest/internal/today/domain"
)

// SQLiteQuestRepository implements domain.QuestRepository using SQLite.
type SQLiteQuestRepository struct {
	conn database.Connection
}

// NewSQLiteQuestRepository creates a new SQLite quest repository.
func NewSQLiteQuestRepository(conn database.Connection) *SQLiteQuestRepository {
	return &SQLiteQuestRepository{conn: conn}
}

func scanSQLiteQuest(row database.Row, r *questRow) error {
	var achieved int64
	if err := row.Scan(&r.ID, &r.DateKey, &r.Type, &r.Title, &r.Target, &r.Progress, &achieved, &r.AchievedAt); err != nil {
		return err
	}
	r.Achieved = achieved != 0
	return nil
}

// FindByType returns the quest of the given type for date.
func (r *SQLiteQuestRepository) FindByType(ctx context.Context, date domain.DateKey, questType domain.QuestType) (*domain.Quest, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	var row questRow
	err := scanSQLiteQuest(exec.QueryRow(ctx,
		`SELECT `+questColumns+` FROM quests WHERE date_key = ? AND quest_type = ?`,
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
func (r *SQLiteQuestRepository) FindByDate(ctx context.Context, date domain.DateKey) ([]*domain.Quest, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, `SELECT `+questColumns+` FROM quests WHERE date_key = ? ORDER BY id`, date.String())
	if err != nil {
		return nil, fmt.Errorf("query quests for %s: %w", date, err)
	}
	return scanQuests(rows, func(rows database.Rows, row *questRow) error {
		return scanSQLiteQuest(rows, row)
	})
}

// InsertIgnore inserts q unless its (date, type) pair exists.
func (r *SQLiteQuestRepository) InsertIgnore(ctx context.Context, q *domain.Quest) (bool, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	res, err := exec.Exec(ctx, `
		INSERT INTO quests (date_key, quest_type, title, target, progress, achieved, achieved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (date_key, quest_type) DO NOTHING`,
		q.DateKey.String(), string(q.Type), q.Title, q.Target, q.Progress, boolToInt(q.Achieved), toMillis(q.AchievedAt),
	)
	if err != nil {
		return false, fmt.Errorf("insert quest %s for %s: %w", q.Type, q.DateKey, err)
	}
	n, err := res.RowsAffected()
	if err != nil || n == 0 {
		return false, err
	}
	if id, err := res.LastInsertId(); err == nil {
		q.ID = id
	}
	return true, nil
}

// Update writes every mutable quest column.
func (r *SQLiteQuestRepository) Update(ctx context.Context, q *domain.Quest) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	res, err := exec.Exec(ctx, `
		UPDATE quests SET title = ?, target = ?, progress = ?, achieved = ?, achieved_at = ?
		WHERE id = ?`,
		q.Title, q.Target, q.Progress, boolToInt(q.Achieved), toMillis(q.AchievedAt), q.ID,
	)
	if err != nil {
		return fmt.Errorf("update quest %d: %w", q.ID, err)
	}
	return requireAffected(res, domain.ErrQuestNotFound)
}

func (r *SQLiteQuestRepository) CountAchievedByDate(ctx context.Context, date domain.DateKey) (int, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	n, err := countOne(exec.QueryRow(ctx, `SELECT COUNT(*) FROM quests WHERE date_key = ? AND achieved = 1`, date.String()))
	if err != nil {
		return 0, fmt.Errorf("count achieved quests: %w", err)
	}
	return n, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
