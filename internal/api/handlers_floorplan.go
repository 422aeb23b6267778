// handlers_floorplan.go - Floor plan image handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HandleGetFloorPlan serves the deployed floor-plan image.
func (h *Handler) HandleGetFloorPlan(c echo.Context) error {
	data := h.plan.Bytes()
	if len(data) == 0 {
		return NewNotFoundError("floor plan", "image")
	}
	return c.Blob(http.StatusOK, h.plan.ContentType(), data)
}

// HandleGetFloorPlanInfo returns the image's native dimensions, the
// reference frame for every route waypoint.
func (h *Handler) HandleGetFloorPlanInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, h.plan.NativeSize())
}
