package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/dayquest/pkg/config"
	"github.com/felixgeelhaar/mcp-go"
)

type settingsUpdateInput struct {
	NotificationsEnabled *bool `json:"notifications_enabled,omitempty"`
	GoalRemindersEnabled *bool `json:"goal_reminders_enabled,omitempty"`
	HistoryPeriodDays    int   `json:"history_period_days,omitempty"`
}

func registerSettingsTools(srv *mcp.Server, t tools) {
	srv.Tool("settings.get").
		Description("Read notification and history preferences").
		Handler(func(ctx context.Context, input struct{}) (config.Preferences, error) {
			if t.app == nil || t.app.Preferences == nil {
				return config.Preferences{}, errors.New("preferences not configured")
			}
			return t.app.Preferences.Load()
		})

	srv.Tool("settings.update").
		Description("Change notification toggles or the history period; omitted fields are kept").
		Handler(t.updateSettings)
}

func (t tools) updateSettings(ctx context.Context, input settingsUpdateInput) (config.Preferences, error) {
	if t.app == nil || t.app.Preferences == nil {
		return config.Preferences{}, errors.New("preferences not configured")
	}
	if input.HistoryPeriodDays < 0 {
		return config.Preferences{}, errors.New("history_period_days must be positive")
	}
	return t.app.Preferences.Update(func(p *config.Preferences) {
		if input.NotificationsEnabled != nil {
			p.NotificationsEnabled = *input.NotificationsEnabled
		}
		if input.GoalRemindersEnabled != nil {
			p.GoalRemindersEnabled = *input.GoalRemindersEnabled
		}
		if input.HistoryPeriodDays > 0 {
			p.HistoryPeriodDays = input.HistoryPeriodDays
		}
	})
}
