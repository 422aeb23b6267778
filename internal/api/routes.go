// routes.go - Route registration helpers
package api

import (
	"github.com/labstack/echo/v4"
	"github.com/venue-navigator/backend/internal/floorplan"
	"github.com/venue-navigator/backend/internal/history"
	"github.com/venue-navigator/backend/internal/session"
)

// Dependencies holds everything the API surface needs.
type Dependencies struct {
	Catalog    NodeLister
	SessionMgr *session.Manager
	Plan       *floorplan.Plan
	History    *history.Store // nil disables the history endpoints
	Version    string
}

// NewHandlers creates the handler instances.
func NewHandlers(deps *Dependencies) (*Handler, *WebSocketHandler) {
	h := NewHandler(deps.Catalog, deps.SessionMgr, deps.Plan, deps.History, deps.Version)
	return h, NewWebSocketHandler(h)
}

// RegisterRoutes registers all API routes with the Echo instance.
func RegisterRoutes(e *echo.Echo, h *Handler, wsh *WebSocketHandler) {
	apiGroup := e.Group("/api")

	apiGroup.GET("/health", h.HandleHealth)

	// Venue data
	apiGroup.GET("/nodes", h.HandleListNodes)
	apiGroup.GET("/floorplan", h.HandleGetFloorPlan)
	apiGroup.GET("/floorplan/info", h.HandleGetFloorPlanInfo)

	// Navigation sessions
	sessionGroup := apiGroup.Group("/session")
	sessionGroup.POST("", h.HandleCreateSession)
	sessionGroup.GET("/:sessionId", h.HandleGetSession)
	sessionGroup.POST("/:sessionId/route", h.HandleRequestRoute)
	sessionGroup.POST("/:sessionId/clear", h.HandleClearSession)
	sessionGroup.POST("/:sessionId/surface", h.HandleSurfaceEvent)
	sessionGroup.GET("/:sessionId/overlay.png", h.HandleGetOverlay)
	sessionGroup.GET("/:sessionId/route/msgpack", h.HandleGetScaledRoute)

	// Surface event channel
	apiGroup.GET("/ws/:sessionId", wsh.HandleWebSocket)

	// Route request history
	apiGroup.GET("/history", h.HandleGetHistory)
}
