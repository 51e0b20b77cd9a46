package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/dayquest/adapter/cli"
	"github.com/felixgeelhaar/dayquest/adapter/cli/history"
	"github.com/felixgeelhaar/dayquest/adapter/cli/mcp"
	cliSettings "github.com/felixgeelhaar/dayquest/adapter/cli/settings"
	"github.com/felixgeelhaar/dayquest/adapter/cli/task"
	"github.com/felixgeelhaar/dayquest/adapter/cli/today"
	"github.com/felixgeelhaar/dayquest/internal/app"
	"github.com/felixgeelhaar/dayquest/pkg/config"
	"github.com/felixgeelhaar/dayquest/pkg/observability"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{AppEnv: "development"}
	}

	logger := observability.NewLogger(observability.LogConfigFor("dayquest", cfg.AppEnv, cfg.LogLevel, cfg.LogFormat))
	if err != nil {
		logger.Warn("failed to load config, using development mode", "error", err)
	}
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		// Commands that need the database report it through RequireApp;
		// version and help still work.
		logger.Warn("failed to initialize container", "error", err)
	} else {
		defer container.Close()
		container.RegisterNotifier(os.Stdout)
		cli.SetApp(cli.NewApp(container))
	}

	cli.AddCommand(today.Cmd)
	cli.AddCommand(task.Cmd)
	cli.AddCommand(history.Cmd)
	cli.AddCommand(cliSettings.Cmd)
	cli.AddCommand(mcp.Cmd)

	cli.Execute(ctx)
}
