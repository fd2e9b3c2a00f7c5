// Package app wires the restaurant MCP components together using go.uber.org/dig.
package app

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/dig"

	"github.com/bobmcallan/restaurant-mcp/internal/client"
	"github.com/bobmcallan/restaurant-mcp/internal/common"
	"github.com/bobmcallan/restaurant-mcp/internal/config"
	"github.com/bobmcallan/restaurant-mcp/internal/handlers"
	"github.com/bobmcallan/restaurant-mcp/internal/mcp"
	"github.com/bobmcallan/restaurant-mcp/internal/restaurant"
)

// App holds all application components and dependencies.
type App struct {
	Config  *config.Config
	Logger  *common.Logger
	Client  *client.Client
	Service *restaurant.Service

	// MCP
	MCPServer  *mcpserver.MCPServer
	MCPHandler *mcp.Handler

	// HTTP handlers
	HealthHandler        *handlers.HealthHandler
	VersionHandler       *handlers.VersionHandler
	CatalogHandler       *handlers.CatalogHandler
	BackendHealthHandler *handlers.BackendHealthHandler
}

// New initializes the application with all dependencies. The logger is
// supplied by the caller so stdio mode can keep stdout free.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	if issues := cfg.Validate(); len(issues) > 0 {
		return nil, fmt.Errorf("invalid configuration: %v", issues)
	}

	d := dig.New()
	providers := []interface{}{
		func() *config.Config { return cfg },
		func() *common.Logger { return logger },
		newClient,
		restaurant.NewService,
		newMCPServer,
		mcp.NewHandler,
		handlers.NewHealthHandler,
		handlers.NewVersionHandler,
		newCatalogHandler,
		newBackendHealthHandler,
	}
	for _, p := range providers {
		if err := d.Provide(p); err != nil {
			return nil, fmt.Errorf("provide: %w", err)
		}
	}

	a := &App{Config: cfg, Logger: logger}
	err := d.Invoke(func(
		c *client.Client,
		svc *restaurant.Service,
		mcpSrv *mcpserver.MCPServer,
		mcpHandler *mcp.Handler,
		health *handlers.HealthHandler,
		version *handlers.VersionHandler,
		catalog *handlers.CatalogHandler,
		backendHealth *handlers.BackendHealthHandler,
	) {
		a.Client = c
		a.Service = svc
		a.MCPServer = mcpSrv
		a.MCPHandler = mcpHandler
		a.HealthHandler = health
		a.VersionHandler = version
		a.CatalogHandler = catalog
		a.BackendHealthHandler = backendHealth
	})
	if err != nil {
		return nil, fmt.Errorf("wire application: %w", dig.RootCause(err))
	}

	logger.Info().
		Str("api_url", cfg.API.BaseURL).
		Str("transport", cfg.Server.Transport).
		Msg("application initialization complete")

	return a, nil
}

func newClient(cfg *config.Config, logger *common.Logger) *client.Client {
	return client.New(cfg.API.BaseURL, cfg.API.Username, cfg.API.Password, cfg.API.GetTimeout(), logger)
}

func newMCPServer(cfg *config.Config, svc *restaurant.Service, logger *common.Logger) (*mcpserver.MCPServer, error) {
	return mcp.NewServer(cfg.Server.Name, svc, logger)
}

func newCatalogHandler() *handlers.CatalogHandler {
	return handlers.NewCatalogHandler(mcp.Catalog())
}

func newBackendHealthHandler(logger *common.Logger, svc *restaurant.Service) *handlers.BackendHealthHandler {
	return handlers.NewBackendHealthHandler(logger, svc)
}

// Close closes all application resources.
func (a *App) Close() error {
	return nil
}
