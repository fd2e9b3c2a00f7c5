package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/restaurant-mcp/internal/app"
	"github.com/bobmcallan/restaurant-mcp/internal/common"
	"github.com/bobmcallan/restaurant-mcp/internal/config"
	"github.com/bobmcallan/restaurant-mcp/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		port      int
		host      string
		transport string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		Long: "Run the MCP server over stdio (for desktop hosts) or streamable HTTP.\n" +
			"The HTTP transport also serves /api/health, /api/version, /api/catalog\n" +
			"and /api/backend-health.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd.ErrOrStderr(), port, host, transport)
			if err != nil {
				return err
			}
			if cfg.Server.Transport == config.TransportStdio {
				return serveStdio(cfg)
			}
			return serveHTTP(cmd.Context(), cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP port (overrides config)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP host (overrides config)")
	cmd.Flags().StringVarP(&transport, "transport", "t", "", "Transport: stdio or http (overrides config)")

	return cmd
}

// serveStdio runs the JSON-RPC loop on stdin/stdout. Console logging is
// removed first so nothing but protocol frames reaches stdout.
func serveStdio(cfg *config.Config) error {
	logger := common.NewLoggerFromConfig(common.StdioSafe(cfg.Logging))

	application, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	logger.Info().Str("api_url", cfg.API.BaseURL).Msg("serving MCP over stdio")

	if err := mcpserver.ServeStdio(application.MCPServer); err != nil {
		logger.Error().Str("error", err.Error()).Msg("stdio server error")
		return fmt.Errorf("stdio server error: %w", err)
	}
	return nil
}

// serveHTTP runs the HTTP server until SIGINT/SIGTERM or a listen failure.
func serveHTTP(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	logger := common.NewLoggerFromConfig(cfg.Logging)

	logger.Info().
		Int("port", cfg.Server.Port).
		Str("host", cfg.Server.Host).
		Str("api_url", cfg.API.BaseURL).
		Msg("configuration loaded")

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error().Str("error", err.Error()).Msg("failed to initialize application")
		return err
	}
	defer application.Close()

	srv := server.New(application)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Str("error", err.Error()).Msg("server stopped with error")
		return err
	}

	logger.Info().Msg("server stopped")
	return nil
}
