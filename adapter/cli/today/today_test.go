package today

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/felixgeelhaar/dayquest/adapter/cli"
	internalApp "github.com/felixgeelhaar/dayquest/internal/app"
	"github.com/felixgeelhaar/dayquest/internal/tasks/application/commands"
	todayQueries "github.com/felixgeelhaar/dayquest/internal/today/application/queries"
	"github.com/felixgeelhaar/dayquest/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)

func setupTestApp(t *testing.T) *cli.App {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		AppEnv:          "test",
		Timezone:        "UTC",
		DatabaseDriver:  "sqlite",
		SQLitePath:      filepath.Join(dir, "test.db"),
		LocalMode:       true,
		PreferencesPath: filepath.Join(dir, "preferences.toml"),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	container, err := internalApp.NewContainer(context.Background(), cfg, logger)
	require.NoError(t, err)

	app := cli.NewApp(container)
	app.Now = func() time.Time { return testNow }
	cli.SetApp(app)
	t.Cleanup(func() {
		cli.SetApp(nil)
		container.Close()
		dateFlag, formatFlag, deferTo = "", cli.FormatText, ""
	})
	return app
}

func addTask(t *testing.T, app *cli.App, title string, important bool) {
	t.Helper()
	_, err := app.SaveTaskHandler.Handle(context.Background(), commands.SaveTaskCommand{
		Title:      title,
		Recurrence: "daily",
		Important:  important,
		Now:        testNow,
	})
	require.NoError(t, err)
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetErr(&out)
	Cmd.SetArgs(args)
	require.NoError(t, Cmd.ExecuteContext(context.Background()), out.String())
	return out.String()
}

func TestTodayShowsGeneratedChecklist(t *testing.T) {
	app := setupTestApp(t)
	addTask(t, app, "Stretch", false)
	addTask(t, app, "Taxes", true)

	out := run(t)
	assert.Contains(t, out, "2026-02-14  (0/2 done)")
	assert.Contains(t, out, "[ ] #1    Stretch")
	assert.Contains(t, out, "Taxes  (important)")
	assert.Contains(t, out, "Streak: 0 (best 0)")
}

func TestTodayJSON(t *testing.T) {
	app := setupTestApp(t)
	addTask(t, app, "Stretch", false)

	out := run(t, "--format", "json")

	var view todayQueries.TodayView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "2026-02-14", view.Date)
	assert.Len(t, view.Items, 1)
	assert.Len(t, view.Quests, 2)
}

func TestTodayTransitions(t *testing.T) {
	app := setupTestApp(t)
	addTask(t, app, "Stretch", false)
	addTask(t, app, "Read", false)
	run(t, "refresh")

	out := run(t, "done", "1")
	assert.Contains(t, out, "Item #1: TODO -> DONE")
	assert.Contains(t, out, "Quest complete:")
	assert.Contains(t, out, "Streak: 1 (best 1)")

	out = run(t, "undo", "1")
	assert.Contains(t, out, "Item #1: DONE -> TODO")
	assert.Contains(t, out, "Streak: 1 (best 1)")

	out = run(t, "defer", "2", "--to", "2026-02-16")
	assert.Contains(t, out, "Item #2 deferred to 2026-02-16")

	out = run(t, "skip", "1")
	assert.Contains(t, out, "Item #1: TODO -> SKIPPED")
}

func TestTodayRejectsBadInput(t *testing.T) {
	setupTestApp(t)

	Cmd.SetOut(io.Discard)
	Cmd.SetErr(io.Discard)
	Cmd.SetArgs([]string{"done", "abc"})
	assert.Error(t, Cmd.ExecuteContext(context.Background()))

	Cmd.SetArgs([]string{"--date", "14/02/2026"})
	assert.Error(t, Cmd.ExecuteContext(context.Background()))
}
