package cli

import (
	"context"
	"time"

	internalApp "github.com/felixgeelhaar/dayquest/internal/app"
	historyQueries "github.com/felixgeelhaar/dayquest/internal/history/application/queries"
	reminderServices "github.com/felixgeelhaar/dayquest/internal/reminders/application/services"
	"github.com/felixgeelhaar/dayquest/internal/tasks/application/commands"
	"github.com/felixgeelhaar/dayquest/internal/tasks/application/queries"
	todayQueries "github.com/felixgeelhaar/dayquest/internal/today/application/queries"
	todayServices "github.com/felixgeelhaar/dayquest/internal/today/application/services"
	todayDomain "github.com/felixgeelhaar/dayquest/internal/today/domain"
	"github.com/felixgeelhaar/dayquest/pkg/config"
	"github.com/felixgeelhaar/dayquest/pkg/observability"
)

// App holds the CLI application dependencies.
type App struct {
	// Task handlers
	SaveTaskHandler   *commands.SaveTaskHandler
	DeleteTaskHandler *commands.DeleteTaskHandler
	ListTasksHandler  *queries.ListTasksHandler
	GetTaskHandler    *queries.GetTaskHandler

	// Daily pipeline
	Refresher         *todayServices.Refresher
	TodayTasksHandler *todayQueries.TodayTasksHandler
	GetStreakHandler  *todayQueries.GetStreakHandler

	HistorySummaryHandler *historyQueries.HistorySummaryHandler
	ReminderPlanner       *reminderServices.Planner

	Preferences *config.PreferencesStore
	Health      *observability.HealthRegistry

	// ResetData wipes all stored data and restores default preferences.
	ResetData func(ctx context.Context) error

	// Now returns the current time in the user's zone.
	Now func() time.Time
}

var app *App

// NewApp creates the CLI application from a wired container.
func NewApp(c *internalApp.Container) *App {
	return &App{
		SaveTaskHandler:       c.SaveTaskHandler,
		DeleteTaskHandler:     c.DeleteTaskHandler,
		ListTasksHandler:      c.ListTasksHandler,
		GetTaskHandler:        c.GetTaskHandler,
		Refresher:             c.Refresher,
		TodayTasksHandler:     c.TodayTasksHandler,
		GetStreakHandler:      c.GetStreakHandler,
		HistorySummaryHandler: c.HistorySummaryHandler,
		ReminderPlanner:       c.ReminderPlanner,
		Preferences:           c.Preferences,
		Health:                c.Health,
		ResetData:             c.ResetLocalData,
		Now:                   c.Now,
	}
}

// Today returns the current calendar date.
func (a *App) Today() todayDomain.DateKey {
	return todayDomain.DateKeyOf(a.Now())
}

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
