// Package domain projects per-date item aggregates onto dense timelines.
package domain

import (
	"context"

	sharedDomain "github.com/felixgeelhaar/dayquest/internal/shared/domain"
	todayDomain "github.com/felixgeelhaar/dayquest/internal/today/domain"
)

// ErrInvalidPeriod is returned for a non-positive period length.
var ErrInvalidPeriod = sharedDomain.NewValidation("history period must be at least one day")

// DailyProgressRow is the stored aggregate for one date. Dates without items
// have no row.
type DailyProgressRow struct {
	Date     todayDomain.DateKey
	Total    int
	Done     int
	Deferred int
}

// DayProgress is one entry of a dense timeline.
type DayProgress struct {
	Date     todayDomain.DateKey `json:"date" yaml:"date"`
	Total    int                 `json:"total" yaml:"total"`
	Done     int                 `json:"done" yaml:"done"`
	Deferred int                 `json:"deferred" yaml:"deferred"`
	// Rate is the integer completion percentage.
	Rate int `json:"rate" yaml:"rate"`
}

// Counts aggregates item states over a date range.
type Counts struct {
	Total    int `json:"total" yaml:"total"`
	Done     int `json:"done" yaml:"done"`
	Deferred int `json:"deferred" yaml:"deferred"`
}

// CompletionRate returns done*100/total using integer division, 0 for an
// empty day.
func CompletionRate(done, total int) int {
	if total <= 0 {
		return 0
	}
	return done * 100 / total
}

// BuildTimeline returns exactly periodDays entries ending at today, most
// recent first. Dates missing from rows are zero-filled.
func BuildTimeline(today todayDomain.DateKey, periodDays int, rows []DailyProgressRow) ([]DayProgress, error) {
	if periodDays < 1 {
		return nil, ErrInvalidPeriod
	}

	byDate := make(map[todayDomain.DateKey]DailyProgressRow, len(rows))
	for _, row := range rows {
		byDate[row.Date] = row
	}

	timeline := make([]DayProgress, 0, periodDays)
	for i := 0; i < periodDays; i++ {
		date := today.AddDays(-i)
		row := byDate[date]
		timeline = append(timeline, DayProgress{
			Date:     date,
			Total:    row.Total,
			Done:     row.Done,
			Deferred: row.Deferred,
			Rate:     CompletionRate(row.Done, row.Total),
		})
	}
	return timeline, nil
}

// FilterActiveDays drops days without items when activeOnly is set. It runs
// on a dense timeline so rates are computed before anything is removed.
func FilterActiveDays(timeline []DayProgress, activeOnly bool) []DayProgress {
	if !activeOnly {
		return timeline
	}
	out := make([]DayProgress, 0, len(timeline))
	for _, day := range timeline {
		if day.Total > 0 {
			out = append(out, day)
		}
	}
	return out
}

// ProgressReader reads item aggregates over inclusive date ranges.
type ProgressReader interface {
	CountByDateRange(ctx context.Context, from, to todayDomain.DateKey) (int, error)
	CountByDateRangeAndStatus(ctx context.Context, from, to todayDomain.DateKey, status todayDomain.ItemStatus) (int, error)
	// DailyProgress returns one row per date that has items.
	DailyProgress(ctx context.Context, from, to todayDomain.DateKey) ([]DailyProgressRow, error)
}
