// handlers_nodes_test.go - Tests for the node catalog proxy
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/venue-navigator/backend/internal/models"
	"github.com/venue-navigator/backend/internal/testutil"
)

func TestHandleListNodes(t *testing.T) {
	tests := []struct {
		name        string
		nodesFn     func(ctx context.Context) (models.NodeCatalog, error)
		wantNodes   int
		wantWarning bool
	}{
		{
			name: "catalog available",
			nodesFn: func(ctx context.Context) (models.NodeCatalog, error) {
				return models.NodeCatalog{
					"entrance": {"name": "Main Entrance"},
					"shop_1":   {},
				}, nil
			},
			wantNodes: 2,
		},
		{
			name: "service down falls back to empty catalog with retry warning",
			nodesFn: func(ctx context.Context) (models.NodeCatalog, error) {
				return nil, errors.New("connection refused")
			},
			wantNodes:   0,
			wantWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockVenue()
			mock.NodesFn = tt.nodesFn
			h := newTestHandler(mock)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/nodes", nil)
			rec := httptest.NewRecorder()

			if err := h.HandleListNodes(e.NewContext(req, rec)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			// Fallback still answers 200 so the selectors stay renderable.
			if rec.Code != http.StatusOK {
				t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
			}

			var resp nodesResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(resp.Nodes) != tt.wantNodes {
				t.Errorf("expected %d nodes, got %d", tt.wantNodes, len(resp.Nodes))
			}
			if tt.wantWarning && resp.Warning == "" {
				t.Error("expected a retry warning")
			}
			if !tt.wantWarning && resp.Warning != "" {
				t.Errorf("unexpected warning: %q", resp.Warning)
			}
		})
	}
}

func TestHandleGetHistoryDisabled(t *testing.T) {
	h := newTestHandler(testutil.NewMockVenue()) // history nil

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec := httptest.NewRecorder()

	err := h.HandleGetHistory(e.NewContext(req, rec))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Code != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %s", apiErr.Code)
	}
}

func TestHandleGetHistoryBadLimit(t *testing.T) {
	h := newTestHandler(testutil.NewMockVenue())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/history?limit=zero", nil)
	rec := httptest.NewRecorder()

	err := h.HandleGetHistory(e.NewContext(req, rec))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR, got %s", apiErr.Code)
	}
}
