// Package mcp exposes DayQuest operations as MCP tools, resources and
// prompts that mirror the CLI.
package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/dayquest/adapter/cli"
	"github.com/felixgeelhaar/mcp-go"
)

// ToolDependencies provides handlers and context for MCP tools.
type ToolDependencies struct {
	App *cli.App
}

// tools holds the handler logic behind each registered tool.
type tools struct {
	app *cli.App
}

func (t tools) require() (*cli.App, error) {
	if t.app == nil || t.app.Refresher == nil {
		return nil, errors.New("operation requires database connection")
	}
	return t.app, nil
}

// RegisterCLITools registers MCP tools that mirror CLI functionality.
func RegisterCLITools(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	if deps.App == nil {
		return errors.New("app is required")
	}

	t := tools{app: deps.App}
	registerCoreTools(srv, t)
	registerTodayTools(srv, t)
	registerTaskTools(srv, t)
	registerProgressTools(srv, t)
	registerSettingsTools(srv, t)
	return nil
}

func registerCoreTools(srv *mcp.Server, t tools) {
	srv.Tool("cli.health").
		Description("Check database, lock and broker connectivity").
		Handler(func(ctx context.Context, input struct{}) (any, error) {
			if t.app == nil || t.app.Health == nil {
				return map[string]string{"status": "ok"}, nil
			}
			return t.app.Health.Check(ctx), nil
		})

	srv.Tool("cli.version").
		Description("Get CLI version information").
		Handler(func(ctx context.Context, input struct{}) (map[string]string, error) {
			return map[string]string{
				"version":    cli.Version,
				"commit":     cli.Commit,
				"build_date": cli.BuildDate,
			}, nil
		})
}
