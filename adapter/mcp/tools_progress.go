package mcp

import (
	"context"
	"errors"
	"time"

	historyQueries "github.com/felixgeelhaar/dayquest/internal/history/application/queries"
	"github.com/felixgeelhaar/dayquest/internal/reminders/domain"
	todayQueries "github.com/felixgeelhaar/dayquest/internal/today/application/queries"
	"github.com/felixgeelhaar/mcp-go"
)

type historyInput struct {
	Days       int  `json:"days,omitempty"`
	ActiveOnly bool `json:"active_only,omitempty"`
}

type reminderListInput struct {
	Days int `json:"days,omitempty"`
}

type reminderNextOutput struct {
	Reminder  *domain.Reminder `json:"reminder"`
	InSeconds int64            `json:"in_seconds"`
}

func registerProgressTools(srv *mcp.Server, t tools) {
	srv.Tool("history.summary").
		Description("Completion counts for today and this week plus a per-day timeline").
		Handler(t.historySummary)

	srv.Tool("streak.get").
		Description("Current and best streak of days with an achieved quest").
		Handler(func(ctx context.Context, input struct{}) (todayQueries.StreakDTO, error) {
			if t.app == nil || t.app.GetStreakHandler == nil {
				return todayQueries.StreakDTO{}, errors.New("streak requires database connection")
			}
			return t.app.GetStreakHandler.Handle(ctx)
		})

	srv.Tool("reminder.next").
		Description("The next reminder and the delay until it fires").
		Handler(t.reminderNext)

	srv.Tool("reminder.list").
		Description("Upcoming reminders over the next days").
		Handler(func(ctx context.Context, input reminderListInput) ([]domain.Reminder, error) {
			if t.app == nil || t.app.ReminderPlanner == nil {
				return nil, errors.New("reminders require database connection")
			}
			days := input.Days
			if days == 0 {
				days = 1
			}
			upcoming, err := t.app.ReminderPlanner.Upcoming(ctx, t.app.Now(), days)
			if upcoming == nil && err == nil {
				upcoming = []domain.Reminder{}
			}
			return upcoming, err
		})
}

func (t tools) historySummary(ctx context.Context, input historyInput) (*historyQueries.HistorySummary, error) {
	if t.app == nil || t.app.HistorySummaryHandler == nil {
		return nil, errors.New("history requires database connection")
	}
	days := input.Days
	if days == 0 && t.app.Preferences != nil {
		prefs, err := t.app.Preferences.Load()
		if err != nil {
			return nil, err
		}
		days = prefs.HistoryPeriodDays
	}
	return t.app.HistorySummaryHandler.Handle(ctx, historyQueries.HistorySummaryQuery{
		Today:      t.app.Today(),
		PeriodDays: days,
		ActiveOnly: input.ActiveOnly,
	})
}

func (t tools) reminderNext(ctx context.Context, input struct{}) (*reminderNextOutput, error) {
	if t.app == nil || t.app.ReminderPlanner == nil {
		return nil, errors.New("reminders require database connection")
	}
	next, delay, err := t.app.ReminderPlanner.Next(ctx, t.app.Now())
	if err != nil {
		return nil, err
	}
	return &reminderNextOutput{Reminder: next, InSeconds: int64(delay / time.Second)}, nil
}
