package mcp

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/felixgeelhaar/dayquest/adapter/cli"
	mcpinternal "github.com/felixgeelhaar/dayquest/internal/mcp"
	"github.com/felixgeelhaar/dayquest/pkg/config"
	"github.com/felixgeelhaar/dayquest/pkg/observability"
	"github.com/spf13/cobra"
)

var addr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on the configured address",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if addr != "" {
			cfg.MCPAddr = addr
		}

		logger := newServerLogger(cmd.ErrOrStderr(), cfg)
		err = mcpinternal.Serve(cmd.Context(), cfg, app, logger)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default MCP_ADDR)")
}

func newServerLogger(out io.Writer, cfg *config.Config) *slog.Logger {
	logCfg := observability.LogConfigFor("dayquest-mcp", cfg.AppEnv, cfg.LogLevel, cfg.LogFormat)
	logCfg.Output = out
	return observability.NewLogger(logCfg)
}
