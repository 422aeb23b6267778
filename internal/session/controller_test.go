package session

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venue-navigator/backend/internal/models"
	"github.com/venue-navigator/backend/internal/overlay"
	"github.com/venue-navigator/backend/internal/testutil"
	"github.com/venue-navigator/backend/internal/venue"
)

func newTestController(mock *testutil.MockVenue) *Controller {
	c := NewController("test-session", mock, overlay.NewRenderer(overlay.DefaultStyle()),
		overlay.Dimensions{Width: 200, Height: 100})
	c.Resize(models.SurfaceSize{Width: 100, Height: 50})
	return c
}

func TestRequestRouteIncompleteSelection(t *testing.T) {
	tests := []struct {
		name    string
		startID string
		endID   string
		wantMsg string
	}{
		{name: "missing end", startID: "entrance", endID: "", wantMsg: "end location is not selected"},
		{name: "missing start", startID: "", endID: "shop_1", wantMsg: "start location is not selected"},
		{name: "missing both", startID: "", endID: "", wantMsg: "start location is not selected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockVenue()
			c := newTestController(mock)

			c.RequestRoute(context.Background(), tt.startID, tt.endID)

			snap := c.Snapshot()
			assert.Equal(t, models.StateError, snap.State)
			assert.Equal(t, tt.wantMsg, snap.Summary)
			// Fails fast: no network call is made.
			assert.Equal(t, 0, mock.RouteCalls())
		})
	}
}

func TestRequestRouteSuccess(t *testing.T) {
	mock := testutil.NewMockVenue()
	mock.RouteFn = func(ctx context.Context, startID, endID string) (models.Route, error) {
		assert.Equal(t, "entrance", startID)
		assert.Equal(t, "shop_1", endID)
		return models.Route{{X: 0, Y: 0}, {X: 3, Y: 4}}, nil
	}
	c := newTestController(mock)

	c.RequestRoute(context.Background(), "entrance", "shop_1")

	snap := c.Snapshot()
	assert.Equal(t, models.StateRouteDisplayed, snap.State)
	assert.Equal(t, 2, snap.WaypointCount)
	assert.Equal(t, 5, snap.RouteLength)
	assert.Equal(t, "Route found: 2 waypoints, length 5 px.", snap.Summary)
	assert.Equal(t, 1, mock.RouteCalls())
}

func TestRequestRouteEmptyResultIsDisplayedNotError(t *testing.T) {
	mock := testutil.NewMockVenue() // default: empty route, no error
	c := newTestController(mock)

	c.RequestRoute(context.Background(), "entrance", "island")

	snap := c.Snapshot()
	assert.Equal(t, models.StateRouteDisplayed, snap.State)
	assert.Equal(t, summaryNoRoute, snap.Summary)
	assert.Zero(t, snap.WaypointCount)
	assert.Zero(t, snap.RouteLength)
}

func TestRequestRouteRejectedDetailShownVerbatim(t *testing.T) {
	mock := testutil.NewMockVenue()
	mock.RouteFn = func(ctx context.Context, startID, endID string) (models.Route, error) {
		return nil, venue.NewStatusError(http.StatusNotFound, "no path")
	}
	c := newTestController(mock)

	c.RequestRoute(context.Background(), "entrance", "shop_1")

	snap := c.Snapshot()
	assert.Equal(t, models.StateError, snap.State)
	assert.Equal(t, "no path", snap.Summary)
}

func TestRequestRouteStatusWithoutDetail(t *testing.T) {
	mock := testutil.NewMockVenue()
	mock.RouteFn = func(ctx context.Context, startID, endID string) (models.Route, error) {
		return nil, venue.NewStatusError(http.StatusBadGateway, "")
	}
	c := newTestController(mock)

	c.RequestRoute(context.Background(), "a", "b")

	assert.Equal(t, "HTTP error 502", c.Snapshot().Summary)
}

func TestRequestRouteTransportFailure(t *testing.T) {
	mock := testutil.NewMockVenue()
	mock.RouteFn = func(ctx context.Context, startID, endID string) (models.Route, error) {
		return nil, venue.NewUnavailableError("route request failed", context.DeadlineExceeded)
	}
	c := newTestController(mock)

	c.RequestRoute(context.Background(), "a", "b")

	snap := c.Snapshot()
	assert.Equal(t, models.StateError, snap.State)
	assert.Equal(t, summaryUnavailable, snap.Summary)
}

func TestErrorDiscardsPreviousRoute(t *testing.T) {
	mock := testutil.NewMockVenue()
	mock.RouteFn = func(ctx context.Context, startID, endID string) (models.Route, error) {
		return models.Route{{X: 0, Y: 0}, {X: 10, Y: 0}}, nil
	}
	c := newTestController(mock)
	c.RequestRoute(context.Background(), "a", "b")
	require.Equal(t, models.StateRouteDisplayed, c.State())

	mock.RouteFn = func(ctx context.Context, startID, endID string) (models.Route, error) {
		return nil, venue.NewUnavailableError("boom", nil)
	}
	c.RequestRoute(context.Background(), "a", "b")

	// A failed request resets the stored route to empty.
	assert.Equal(t, models.StateError, c.State())
	assert.Empty(t, c.Route())
}

func TestClearResetsEverything(t *testing.T) {
	mock := testutil.NewMockVenue()
	mock.RouteFn = func(ctx context.Context, startID, endID string) (models.Route, error) {
		return models.Route{{X: 10, Y: 10}, {X: 50, Y: 40}}, nil
	}
	c := newTestController(mock)
	c.RequestRoute(context.Background(), "entrance", "shop_1")
	require.Equal(t, models.StateRouteDisplayed, c.State())

	c.Clear()

	snap := c.Snapshot()
	assert.Equal(t, models.StateIdle, snap.State)
	assert.Empty(t, snap.StartID)
	assert.Empty(t, snap.EndID)
	assert.Equal(t, summaryIdle, snap.Summary)

	// A resize after clear redraws nothing: the overlay matches one from a
	// controller that never displayed a route.
	c.Resize(models.SurfaceSize{Width: 120, Height: 60})

	fresh := newTestController(testutil.NewMockVenue())
	fresh.Resize(models.SurfaceSize{Width: 120, Height: 60})

	assert.Equal(t, fresh.OverlayPNG(), c.OverlayPNG())
}

func TestResizeRerendersWithoutNetwork(t *testing.T) {
	mock := testutil.NewMockVenue()
	mock.RouteFn = func(ctx context.Context, startID, endID string) (models.Route, error) {
		return models.Route{{X: 0, Y: 0}, {X: 200, Y: 100}}, nil
	}
	c := newTestController(mock)
	c.RequestRoute(context.Background(), "a", "b")
	require.Equal(t, 1, mock.RouteCalls())

	before := c.ScaledRoute()
	c.Resize(models.SurfaceSize{Width: 200, Height: 100})
	after := c.ScaledRoute()

	// No extra venue call, same state, new scale applied.
	assert.Equal(t, 1, mock.RouteCalls())
	assert.Equal(t, models.StateRouteDisplayed, c.State())
	assert.Equal(t, before[1].X*2, after[1].X)
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	// A slow early response must not overwrite a faster later one: the
	// sequence guard keeps the latest issued request authoritative.
	slowRelease := make(chan struct{})
	slowStarted := make(chan struct{})

	mock := testutil.NewMockVenue()
	mock.RouteFn = func(ctx context.Context, startID, endID string) (models.Route, error) {
		if endID == "slow" {
			close(slowStarted)
			<-slowRelease
			return models.Route{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}, nil
		}
		return models.Route{{X: 9, Y: 9}, {X: 12, Y: 13}}, nil
	}
	c := newTestController(mock)

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.RequestRoute(context.Background(), "entrance", "slow")
	}()

	<-slowStarted
	c.RequestRoute(context.Background(), "entrance", "fast")
	fastSnap := c.Snapshot()
	require.Equal(t, 2, fastSnap.WaypointCount)

	close(slowRelease)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("slow request did not finish")
	}

	// The slow response arrived after the fast one and was dropped.
	snap := c.Snapshot()
	assert.Equal(t, fastSnap.Summary, snap.Summary)
	assert.Equal(t, 2, snap.WaypointCount)
	assert.Equal(t, 2, mock.RouteCalls())
}

func TestClearMakesInflightResponseStale(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	mock := testutil.NewMockVenue()
	mock.RouteFn = func(ctx context.Context, startID, endID string) (models.Route, error) {
		close(started)
		<-release
		return models.Route{{X: 1, Y: 1}, {X: 2, Y: 2}}, nil
	}
	c := newTestController(mock)

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.RequestRoute(context.Background(), "a", "b")
	}()

	<-started
	c.Clear()
	close(release)
	<-done

	assert.Equal(t, models.StateIdle, c.State())
	assert.Empty(t, c.Route())
}

func TestOnUpdateNotified(t *testing.T) {
	c := newTestController(testutil.NewMockVenue())

	updates := 0
	c.OnUpdate(func() { updates++ })

	c.RequestRoute(context.Background(), "a", "b")
	c.Resize(models.SurfaceSize{Width: 10, Height: 10})
	c.Clear()

	assert.Equal(t, 3, updates)
}
