package handlers

import (
	"net/http"

	"github.com/bobmcallan/restaurant-mcp/internal/common"
	"github.com/bobmcallan/restaurant-mcp/internal/config"
)

// HealthHandler reports that the adapter process is up. It never contacts
// the restaurant API; BackendHealthHandler covers that.
type HealthHandler struct {
	logger *common.Logger
}

func NewHealthHandler(logger *common.Logger) *HealthHandler {
	return &HealthHandler{logger: logger}
}

// ServeHTTP handles GET /api/health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": config.GetVersion(),
	})
}
