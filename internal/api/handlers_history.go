// handlers_history.go - Route request history handlers
package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// HandleGetHistory returns the most recent route requests, newest first.
func (h *Handler) HandleGetHistory(c echo.Context) error {
	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return NewValidationError("limit")
		}
		limit = n
	}

	if h.history == nil {
		return NewNotFoundError("history", "disabled")
	}

	entries, err := h.history.Recent(limit)
	if err != nil {
		return NewInternalError("failed to query history", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}
