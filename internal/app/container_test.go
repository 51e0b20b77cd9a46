package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	historyQueries "github.com/felixgeelhaar/dayquest/internal/history/application/queries"
	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/lock"
	"github.com/felixgeelhaar/dayquest/internal/tasks/application/commands"
	"github.com/felixgeelhaar/dayquest/internal/tasks/application/queries"
	todayServices "github.com/felixgeelhaar/dayquest/internal/today/application/services"
	todayDomain "github.com/felixgeelhaar/dayquest/internal/today/domain"
	"github.com/felixgeelhaar/dayquest/pkg/config"
	"github.com/felixgeelhaar/dayquest/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLocalContainer(t *testing.T) *Container {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		AppEnv:          "test",
		Timezone:        "UTC",
		DatabaseDriver:  "sqlite",
		SQLitePath:      filepath.Join(dir, "data.db"),
		LocalMode:       true,
		RefreshLockTTL:  time.Second,
		PreferencesPath: filepath.Join(dir, "preferences.toml"),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	c, err := NewContainer(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestNewContainer_LocalMode(t *testing.T) {
	c := setupLocalContainer(t)

	assert.Equal(t, database.DriverSQLite, c.DB.Driver())
	assert.IsType(t, &lock.LocalLocker{}, c.Locker)
	assert.Same(t, c.EventBus, c.Publisher)
	assert.Nil(t, c.Breaker)
	assert.Equal(t, time.UTC, c.Location)

	health := c.Health.Check(context.Background())
	assert.Equal(t, observability.HealthStatusHealthy, health.Status)
	assert.Contains(t, health.Checks, "database")
}

func TestNewContainer_UnknownDriver(t *testing.T) {
	cfg := &config.Config{DatabaseDriver: "oracle", PreferencesPath: filepath.Join(t.TempDir(), "p.toml")}
	_, err := NewContainer(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestContainer_DailyWorkflow(t *testing.T) {
	c := setupLocalContainer(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
	date := todayDomain.DateKeyOf(now)

	var notes bytes.Buffer
	c.RegisterNotifier(&notes)

	saved, err := c.SaveTaskHandler.Handle(ctx, commands.SaveTaskCommand{
		Title:      "Stretch",
		Recurrence: "daily",
		GoalTime:   "18:30",
		Now:        now,
	})
	require.NoError(t, err)
	assert.True(t, saved.Created)

	listed, err := c.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{})
	require.NoError(t, err)
	require.Len(t, listed, 1)

	refreshed, err := c.Refresher.EnsureTodayReady(ctx, date, now)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshed.Generated)
	assert.Equal(t, int64(1), c.Metrics.GetCounter("items_generated"))

	view, err := c.TodayTasksHandler.Handle(ctx, date)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, todayDomain.StatusTodo, view.Items[0].Status)
	assert.Equal(t, "18:30", view.Items[0].GoalTime)

	outcome, err := c.Refresher.ApplyStatusTransition(ctx, todayServices.TransitionCommand{
		ItemID: view.Items[0].ItemID,
		To:     todayDomain.StatusDone,
		Now:    now.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, outcome.Achieved)
	assert.Equal(t, 1, outcome.Streak.Current)
	assert.Contains(t, notes.String(), "Quest complete:")

	streak, err := c.GetStreakHandler.Handle(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, streak.Current)

	summary, err := c.HistorySummaryHandler.Handle(ctx, historyQueries.HistorySummaryQuery{Today: date, PeriodDays: 7})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Today.Total)
	assert.Equal(t, 1, summary.Today.Done)
	assert.Len(t, summary.Timeline, 7)
}

func TestContainer_RemindersFollowPreferences(t *testing.T) {
	c := setupLocalContainer(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 14, 6, 0, 0, 0, time.UTC)

	next, delay, err := c.ReminderPlanner.Next(ctx, now)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, time.Hour, delay)

	_, err = c.Preferences.Update(func(p *config.Preferences) { p.NotificationsEnabled = false })
	require.NoError(t, err)

	next, _, err = c.ReminderPlanner.Next(ctx, now)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestContainer_ResetLocalData(t *testing.T) {
	c := setupLocalContainer(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
	date := todayDomain.DateKeyOf(now)

	_, err := c.SaveTaskHandler.Handle(ctx, commands.SaveTaskCommand{Title: "Stretch", Recurrence: "daily", Now: now})
	require.NoError(t, err)
	_, err = c.Refresher.EnsureTodayReady(ctx, date, now)
	require.NoError(t, err)
	view, err := c.TodayTasksHandler.Handle(ctx, date)
	require.NoError(t, err)
	_, err = c.Refresher.ApplyStatusTransition(ctx, todayServices.TransitionCommand{
		ItemID: view.Items[0].ItemID,
		To:     todayDomain.StatusDone,
		Now:    now,
	})
	require.NoError(t, err)
	_, err = c.Preferences.Update(func(p *config.Preferences) { p.HistoryPeriodDays = 30 })
	require.NoError(t, err)

	require.NoError(t, c.ResetLocalData(ctx))

	listed, err := c.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{})
	require.NoError(t, err)
	assert.Empty(t, listed)

	view, err = c.TodayTasksHandler.Handle(ctx, date)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	streak, err := c.GetStreakHandler.Handle(ctx)
	require.NoError(t, err)
	assert.Zero(t, streak.Current)
	assert.Zero(t, streak.Best)

	prefs, err := c.Preferences.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultHistoryPeriodDays, prefs.HistoryPeriodDays)
}
