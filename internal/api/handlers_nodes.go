// handlers_nodes.go - Node catalog proxy
package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/venue-navigator/backend/internal/models"
)

// nodesResponse wraps the node catalog. When the venue service is down the
// catalog is empty and Warning carries a retry suggestion, so the selectors
// stay renderable instead of the page failing.
type nodesResponse struct {
	Nodes   models.NodeCatalog `json:"nodes"`
	Warning string             `json:"warning,omitempty"`
}

// HandleListNodes proxies the venue service's node catalog.
func (h *Handler) HandleListNodes(c echo.Context) error {
	catalog, err := h.catalog.ListNodes(c.Request().Context())
	if err != nil {
		fmt.Printf("[Nodes] Catalog fetch failed: %v\n", err)
		return c.JSON(http.StatusOK, nodesResponse{
			Nodes:   models.NodeCatalog{},
			Warning: "Could not load locations from the venue service, please try again.",
		})
	}

	return c.JSON(http.StatusOK, nodesResponse{Nodes: catalog})
}
