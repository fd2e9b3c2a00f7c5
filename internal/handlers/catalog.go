package handlers

import (
	"net/http"

	"github.com/bobmcallan/restaurant-mcp/internal/mcp"
)

// CatalogHandler serves the static tool catalog.
type CatalogHandler struct {
	catalog []mcp.CatalogTool
}

// NewCatalogHandler creates a handler for the given catalog.
func NewCatalogHandler(catalog []mcp.CatalogTool) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ServeHTTP handles GET /api/catalog.
func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(h.catalog),
		"tools": h.catalog,
	})
}
