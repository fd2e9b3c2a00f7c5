package mcp

import (
	"context"
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/restaurant-mcp/internal/client"
	"github.com/bobmcallan/restaurant-mcp/internal/common"
	"github.com/bobmcallan/restaurant-mcp/internal/config"
	"github.com/bobmcallan/restaurant-mcp/internal/restaurant"
)

// NewServer creates an MCPServer with every catalog tool and get_version registered.
func NewServer(name string, svc *restaurant.Service, logger *common.Logger) (*mcpserver.MCPServer, error) {
	mcpSrv := mcpserver.NewMCPServer(
		name,
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)

	count, err := RegisterTools(mcpSrv, svc, logger)
	if err != nil {
		return nil, err
	}

	logger.Info().Int("tools", count).Msg("MCP server initialized")
	return mcpSrv, nil
}

// RegisterTools validates the catalog and registers each entry plus get_version.
func RegisterTools(s *mcpserver.MCPServer, svc *restaurant.Service, logger *common.Logger) (int, error) {
	catalog := Catalog()
	if err := ValidateCatalog(catalog); err != nil {
		return 0, err
	}
	for _, ct := range catalog {
		s.AddTool(BuildMCPTool(ct), ToolHandler(svc, ct, logger))
	}
	s.AddTool(VersionTool(), VersionToolHandler())
	return len(catalog) + 1, nil
}

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
}

// NewHandler wraps mcpSrv for the streamable HTTP transport. Requests are
// stateless and carry the inbound correlation ID into tool calls.
func NewHandler(mcpSrv *mcpserver.MCPServer) *Handler {
	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
		mcpserver.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			if id, ok := client.CorrelationID(r.Context()); ok {
				return client.WithCorrelationID(ctx, id)
			}
			return ctx
		}),
	)
	return &Handler{streamable: streamable}
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
