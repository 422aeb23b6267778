// handlers.go - Handler wiring shared across the API surface
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/venue-navigator/backend/internal/floorplan"
	"github.com/venue-navigator/backend/internal/history"
	"github.com/venue-navigator/backend/internal/session"
)

// Handler holds the dependencies of the HTTP API.
type Handler struct {
	catalog  NodeLister
	sessions *session.Manager
	plan     *floorplan.Plan
	history  *history.Store // nil when history is disabled
	version  string
}

// NewHandler creates the API handler.
func NewHandler(catalog NodeLister, sessions *session.Manager, plan *floorplan.Plan, hist *history.Store, version string) *Handler {
	return &Handler{
		catalog:  catalog,
		sessions: sessions,
		plan:     plan,
		history:  hist,
		version:  version,
	}
}

// HandleHealth reports service liveness.
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"version":  h.version,
		"sessions": h.sessions.Len(),
	})
}

// sessionFromParam resolves the :sessionId path parameter.
func (h *Handler) sessionFromParam(c echo.Context) (*session.Controller, error) {
	id := c.Param("sessionId")
	ctrl, ok := h.sessions.Get(id)
	if !ok {
		return nil, NewNotFoundError("session", id)
	}
	return ctrl, nil
}
