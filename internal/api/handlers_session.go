// handlers_session.go - Navigation session operation handlers
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/venue-navigator/backend/internal/history"
	"github.com/venue-navigator/backend/internal/models"
	"github.com/vmihailenco/msgpack/v5"
)

// routeRequest is the body of POST /api/session/:sessionId/route.
type routeRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// surfaceRequest is the body of POST /api/session/:sessionId/surface:
// the rendered size of the floor-plan image as measured by the viewer,
// sent on window resize and when the image finishes loading.
type surfaceRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// HandleCreateSession starts a new navigation session.
func (h *Handler) HandleCreateSession(c echo.Context) error {
	ctrl := h.sessions.Create()
	return c.JSON(http.StatusCreated, ctrl.Snapshot())
}

// HandleGetSession returns the session summary: state, selection, summary
// panel text and route statistics.
func (h *Handler) HandleGetSession(c echo.Context) error {
	ctrl, err := h.sessionFromParam(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ctrl.Snapshot())
}

// HandleRequestRoute records the selection and requests a route from the
// venue service. All venue failures are recovered into the session state;
// the response is always 200 with the resulting snapshot.
func (h *Handler) HandleRequestRoute(c echo.Context) error {
	ctrl, err := h.sessionFromParam(c)
	if err != nil {
		return err
	}

	var req routeRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid route request body", err)
	}

	start := time.Now()
	ctrl.RequestRoute(c.Request().Context(), req.Start, req.End)
	snap := ctrl.Snapshot()

	h.recordHistory(snap, time.Since(start))

	return c.JSON(http.StatusOK, snap)
}

// HandleClearSession returns the session to idle: selection back to
// placeholder, route discarded, overlay blanked.
func (h *Handler) HandleClearSession(c echo.Context) error {
	ctrl, err := h.sessionFromParam(c)
	if err != nil {
		return err
	}

	ctrl.Clear()
	return c.JSON(http.StatusOK, ctrl.Snapshot())
}

// HandleSurfaceEvent applies a display-surface resize or image-load event.
// The overlay is re-rendered from the stored native-coordinate route; no
// venue call is made.
func (h *Handler) HandleSurfaceEvent(c echo.Context) error {
	ctrl, err := h.sessionFromParam(c)
	if err != nil {
		return err
	}

	var req surfaceRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid surface event body", err)
	}
	if req.Width < 0 || req.Height < 0 {
		return NewValidationError("width/height")
	}

	ctrl.Resize(models.SurfaceSize{Width: req.Width, Height: req.Height})
	return c.JSON(http.StatusOK, ctrl.Snapshot())
}

// HandleGetOverlay serves the rendered overlay PNG for the current surface.
func (h *Handler) HandleGetOverlay(c echo.Context) error {
	ctrl, err := h.sessionFromParam(c)
	if err != nil {
		return err
	}

	data := ctrl.OverlayPNG()
	if data == nil {
		return NewInternalError("overlay not rendered", nil)
	}

	c.Response().Header().Set("Cache-Control", "no-store")
	return c.Blob(http.StatusOK, "image/png", data)
}

// HandleGetScaledRoute serves the current route in surface coordinates as
// msgpack, for viewers that paint the polyline on a canvas themselves.
func (h *Handler) HandleGetScaledRoute(c echo.Context) error {
	ctrl, err := h.sessionFromParam(c)
	if err != nil {
		return err
	}

	data, err := msgpack.Marshal(ctrl.ScaledRoute())
	if err != nil {
		return NewInternalError("failed to encode route", err)
	}

	return c.Blob(http.StatusOK, "application/x-msgpack", data)
}

// recordHistory appends the request outcome to the history store.
// Best-effort: failures are logged and never surfaced.
func (h *Handler) recordHistory(snap models.NavSession, elapsed time.Duration) {
	if h.history == nil {
		return
	}

	outcome := history.OutcomeError
	if snap.State == models.StateRouteDisplayed {
		outcome = history.OutcomeRouteDisplayed
		if snap.WaypointCount == 0 {
			outcome = history.OutcomeNoRouteFound
		}
	}

	err := h.history.Record(history.Entry{
		SessionID: snap.ID,
		StartID:   snap.StartID,
		EndID:     snap.EndID,
		Outcome:   outcome,
		Waypoints: snap.WaypointCount,
		Length:    snap.RouteLength,
		ElapsedMs: elapsed.Milliseconds(),
	})
	if err != nil {
		fmt.Printf("[History] Record failed: %v\n", err)
	}
}
