package queries

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/dayquest/internal/history/domain"
	todayDomain "github.com/felixgeelhaar/dayquest/internal/today/domain"
)

// HistorySummaryQuery asks for the reporting view ending at Today.
type HistorySummaryQuery struct {
	Today      todayDomain.DateKey
	PeriodDays int
	ActiveOnly bool
}

// HistorySummary is today's counts, this week's counts and the timeline.
type HistorySummary struct {
	Today    domain.Counts        `json:"today" yaml:"today"`
	Week     domain.Counts        `json:"week" yaml:"week"`
	WeekRate int                  `json:"week_rate" yaml:"week_rate"`
	Timeline []domain.DayProgress `json:"timeline" yaml:"timeline"`
}

// HistorySummaryHandler handles the HistorySummaryQuery.
type HistorySummaryHandler struct {
	reader domain.ProgressReader
}

// NewHistorySummaryHandler creates a new HistorySummaryHandler.
func NewHistorySummaryHandler(reader domain.ProgressReader) *HistorySummaryHandler {
	return &HistorySummaryHandler{reader: reader}
}

// Handle executes the HistorySummaryQuery. The week runs from Monday to Today.
func (h *HistorySummaryHandler) Handle(ctx context.Context, q HistorySummaryQuery) (*HistorySummary, error) {
	if q.PeriodDays < 1 {
		return nil, domain.ErrInvalidPeriod
	}

	today, err := h.counts(ctx, q.Today, q.Today)
	if err != nil {
		return nil, err
	}
	week, err := h.counts(ctx, q.Today.WeekStart(), q.Today)
	if err != nil {
		return nil, err
	}

	from := q.Today.AddDays(-(q.PeriodDays - 1))
	rows, err := h.reader.DailyProgress(ctx, from, q.Today)
	if err != nil {
		return nil, fmt.Errorf("daily progress %s..%s: %w", from, q.Today, err)
	}
	timeline, err := domain.BuildTimeline(q.Today, q.PeriodDays, rows)
	if err != nil {
		return nil, err
	}

	return &HistorySummary{
		Today:    today,
		Week:     week,
		WeekRate: domain.CompletionRate(week.Done, week.Total),
		Timeline: domain.FilterActiveDays(timeline, q.ActiveOnly),
	}, nil
}

func (h *HistorySummaryHandler) counts(ctx context.Context, from, to todayDomain.DateKey) (domain.Counts, error) {
	var c domain.Counts
	var err error
	if c.Total, err = h.reader.CountByDateRange(ctx, from, to); err != nil {
		return c, fmt.Errorf("count items %s..%s: %w", from, to, err)
	}
	if c.Done, err = h.reader.CountByDateRangeAndStatus(ctx, from, to, todayDomain.StatusDone); err != nil {
		return c, fmt.Errorf("count done items %s..%s: %w", from, to, err)
	}
	if c.Deferred, err = h.reader.CountByDateRangeAndStatus(ctx, from, to, todayDomain.StatusDeferred); err != nil {
		return c, fmt.Errorf("count deferred items %s..%s: %w", from, to, err)
	}
	return c, nil
}
