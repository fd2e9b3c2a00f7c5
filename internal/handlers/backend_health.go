package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/bobmcallan/restaurant-mcp/internal/common"
	"github.com/bobmcallan/restaurant-mcp/internal/restaurant"
)

// backendHealthTimeout bounds the whole probe so the endpoint stays responsive.
const backendHealthTimeout = 5 * time.Second

// Prober lists every backend collection and reports the outcome of each.
type Prober interface {
	Probe(ctx context.Context) []restaurant.ProbeResult
}

// BackendHealthHandler reports whether the restaurant API is reachable
// with the configured credentials.
type BackendHealthHandler struct {
	logger *common.Logger
	prober Prober
}

// NewBackendHealthHandler creates a new backend health handler.
func NewBackendHealthHandler(logger *common.Logger, prober Prober) *BackendHealthHandler {
	return &BackendHealthHandler{logger: logger, prober: prober}
}

// ServeHTTP handles GET /api/backend-health.
func (h *BackendHealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), backendHealthTimeout)
	defer cancel()

	results := h.prober.Probe(ctx)
	if restaurant.Healthy(results) {
		WriteJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "checks": results})
		return
	}

	if h.logger != nil {
		for _, res := range results {
			if !res.OK {
				h.logger.Warn().Str("path", res.Path).Int("status", res.Status).Str("error", res.Error).Msg("backend health check failed")
			}
		}
	}
	WriteJSON(w, http.StatusServiceUnavailable, map[string]interface{}{"status": "down", "checks": results})
}
