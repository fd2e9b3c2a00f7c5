package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/restaurant-mcp/internal/client"
	"github.com/bobmcallan/restaurant-mcp/internal/common"
	"github.com/bobmcallan/restaurant-mcp/internal/restaurant"
)

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// textResult wraps plain text, or JSON-encodes anything else.
func textResult(v interface{}) *mcp.CallToolResult {
	if s, ok := v.(string); ok {
		return &mcp.CallToolResult{Content: []mcp.Content{mcp.NewTextContent(s)}}
	}
	out, err := json.Marshal(v)
	if err != nil {
		return errorResult(fmt.Sprintf("Error: failed to encode result: %v", err))
	}
	return &mcp.CallToolResult{Content: []mcp.Content{mcp.NewTextContent(string(out))}}
}

// ToolHandler creates a handler that checks arguments against the tool's
// parameters and then runs its resource operation. Failures become error
// results scoped to the one call.
func ToolHandler(svc *restaurant.Service, ct CatalogTool, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		correlationID, ok := client.CorrelationID(ctx)
		if !ok {
			correlationID = uuid.New().String()
			ctx = client.WithCorrelationID(ctx, correlationID)
		}
		log := logger.WithCorrelationId(correlationID)

		args := arguments(r.GetArguments())
		if err := args.check(ct.Params); err != nil {
			log.Warn().Str("tool", ct.Name).Str("error", err.Error()).Msg("invalid tool arguments")
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}

		start := time.Now()
		result, err := ct.call(ctx, svc, args)
		duration := time.Since(start)
		if err != nil {
			log.Warn().Str("tool", ct.Name).Int("status", client.StatusCode(err)).Int64("duration_ms", duration.Milliseconds()).Str("error", err.Error()).Msg("tool call failed")
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}

		log.Info().Str("tool", ct.Name).Int64("duration_ms", duration.Milliseconds()).Msg("tool call")
		return textResult(result), nil
	}
}
