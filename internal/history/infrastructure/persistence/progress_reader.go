// Package persistence reads history aggregates from SQLite or PostgreSQL.
package persistence

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/dayquest/internal/history/domain"
	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/database"
	todayDomain "github.com/felixgeelhaar/dayquest/internal/today/domain"
)

// dialect holds the driver-specific statements. Date keys compare
// lexicographically, so ranges are plain string comparisons.
type dialect struct {
	countRange         string
	countRangeByStatus string
	dailyProgress      string
}

var sqliteDialect = dialect{
	countRange:         `SELECT COUNT(*) FROM daily_items WHERE date_key >= ? AND date_key <= ?`,
	countRangeByStatus: `SELECT COUNT(*) FROM daily_items WHERE date_key >= ? AND date_key <= ? AND status = ?`,
	dailyProgress: `
		SELECT date_key,
			COUNT(*),
			SUM(CASE WHEN status = 'DONE' THEN 1 ELSE 0 END),
			SUM(CASE WHEN status = 'DEFERRED' THEN 1 ELSE 0 END)
		FROM daily_items
		WHERE date_key >= ? AND date_key <= ?
		GROUP BY date_key
		ORDER BY date_key DESC`,
}

var postgresDialect = dialect{
	countRange:         `SELECT COUNT(*) FROM daily_items WHERE date_key >= $1 AND date_key <= $2`,
	countRangeByStatus: `SELECT COUNT(*) FROM daily_items WHERE date_key >= $1 AND date_key <= $2 AND status = $3`,
	dailyProgress: `
		SELECT date_key,
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'DONE'),
			COUNT(*) FILTER (WHERE status = 'DEFERRED')
		FROM daily_items
		WHERE date_key >= $1 AND date_key <= $2
		GROUP BY date_key
		ORDER BY date_key DESC`,
}

// ProgressReader implements domain.ProgressReader.
type ProgressReader struct {
	conn database.Connection
	sql  dialect
}

// NewSQLiteProgressReader creates a reader for SQLite.
func NewSQLiteProgressReader(conn database.Connection) *ProgressReader {
	return &ProgressReader{conn: conn, sql: sqliteDialect}
}

// NewPostgresProgressReader creates a reader for PostgreSQL.
func NewPostgresProgressReader(conn database.Connection) *ProgressReader {
	return &ProgressReader{conn: conn, sql: postgresDialect}
}

// CountByDateRange counts items with from <= date <= to.
func (r *ProgressReader) CountByDateRange(ctx context.Context, from, to todayDomain.DateKey) (int, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	var n int
	if err := exec.QueryRow(ctx, r.sql.countRange, from.String(), to.String()).Scan(&n); err != nil {
		return 0, fmt.Errorf("count items in range: %w", err)
	}
	return n, nil
}

// CountByDateRangeAndStatus counts items in the range with the given status.
func (r *ProgressReader) CountByDateRangeAndStatus(ctx context.Context, from, to todayDomain.DateKey, status todayDomain.ItemStatus) (int, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	var n int
	if err := exec.QueryRow(ctx, r.sql.countRangeByStatus, from.String(), to.String(), string(status)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s items in range: %w", status, err)
	}
	return n, nil
}

// DailyProgress groups the range by date, most recent first.
func (r *ProgressReader) DailyProgress(ctx context.Context, from, to todayDomain.DateKey) ([]domain.DailyProgressRow, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	rows, err := exec.Query(ctx, r.sql.dailyProgress, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("query daily progress: %w", err)
	}
	defer rows.Close()

	var out []domain.DailyProgressRow
	for rows.Next() {
		var (
			row  domain.DailyProgressRow
			date string
		)
		if err := rows.Scan(&date, &row.Total, &row.Done, &row.Deferred); err != nil {
			return nil, err
		}
		row.Date = todayDomain.DateKey(date)
		if err := row.Date.Validate(); err != nil {
			return nil, fmt.Errorf("stored date_key %q: %w", date, err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
