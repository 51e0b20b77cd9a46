package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	internalApp "github.com/felixgeelhaar/dayquest/internal/app"
	"github.com/felixgeelhaar/dayquest/internal/tasks/application/commands"
	"github.com/felixgeelhaar/dayquest/internal/today/application/services"
	"github.com/felixgeelhaar/dayquest/internal/today/domain"
	"github.com/felixgeelhaar/dayquest/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var e2eNow = time.Date(2026, 2, 14, 6, 0, 0, 0, time.UTC)

func newTestContainer(t *testing.T, cfg *config.Config) *internalApp.Container {
	t.Helper()
	dir := t.TempDir()
	cfg.AppEnv = "test"
	cfg.Timezone = "UTC"
	cfg.PreferencesPath = filepath.Join(dir, "preferences.toml")
	if cfg.DatabaseDriver == "sqlite" {
		cfg.SQLitePath = filepath.Join(dir, "test.db")
	}

	container, err := internalApp.NewContainer(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(container.Close)

	app := NewApp(container)
	app.Now = func() time.Time { return e2eNow }
	SetApp(app)
	t.Cleanup(func() {
		SetApp(nil)
		streakFormat, reminderFormat, healthFormat = FormatText, FormatText, FormatText
		reminderDays = 1
	})
	return container
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()), out.String())
	return out.String()
}

func completeFirstItem(t *testing.T, c *internalApp.Container) {
	t.Helper()
	ctx := context.Background()
	_, err := c.SaveTaskHandler.Handle(ctx, commands.SaveTaskCommand{
		Title:      "Write integration test",
		Recurrence: "daily",
		GoalTime:   "06:30",
		Now:        e2eNow,
	})
	require.NoError(t, err)

	date := domain.DateKeyOf(e2eNow)
	_, err = c.Refresher.EnsureTodayReady(ctx, date, e2eNow)
	require.NoError(t, err)
	view, err := c.TodayTasksHandler.Handle(ctx, date)
	require.NoError(t, err)
	require.NotEmpty(t, view.Items)

	_, err = c.Refresher.ApplyStatusTransition(ctx, services.TransitionCommand{
		ItemID: view.Items[0].ItemID,
		To:     domain.StatusDone,
		Now:    e2eNow,
	})
	require.NoError(t, err)
}

func runEndToEnd(t *testing.T, c *internalApp.Container) {
	completeFirstItem(t, c)

	out := execute(t, "streak")
	assert.Contains(t, out, "Current streak: 1 day")
	assert.Contains(t, out, "Last achieved:  2026-02-14")

	out = execute(t, "reminder", "next")
	assert.Contains(t, out, "2026-02-14 06:30  goal: Write integration test  (in 30m0s)")

	out = execute(t, "reminder", "list", "--format", "json")
	var upcoming []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &upcoming))
	assert.Len(t, upcoming, 3)

	out = execute(t, "health")
	assert.Contains(t, out, "status: healthy")

	out = execute(t, "version")
	assert.Contains(t, out, "dayquest "+Version)
}

func TestCLIEndToEnd_SQLite(t *testing.T) {
	c := newTestContainer(t, &config.Config{DatabaseDriver: "sqlite", LocalMode: true})
	runEndToEnd(t, c)
}

func TestCLIEndToEnd_Postgres(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	c := newTestContainer(t, &config.Config{DatabaseDriver: "postgres", DatabaseURL: dbURL})
	ctx := context.Background()
	for _, table := range []string{"quests", "daily_items", "tasks", "streaks"} {
		_, err := c.DB.Exec(ctx, "DELETE FROM "+table)
		require.NoError(t, err)
	}
	runEndToEnd(t, c)
}

func TestRequireApp(t *testing.T) {
	SetApp(nil)
	_, err := RequireApp()
	assert.Error(t, err)
}
