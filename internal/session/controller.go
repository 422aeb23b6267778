package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/venue-navigator/backend/internal/models"
	"github.com/venue-navigator/backend/internal/overlay"
	"github.com/venue-navigator/backend/internal/route"
	"github.com/venue-navigator/backend/internal/venue"
)

// VenueClient is the outbound dependency of a session controller.
type VenueClient interface {
	FindRoute(ctx context.Context, startID, endID string) (models.Route, error)
}

// Summary messages shown in the route summary panel.
const (
	summaryIdle        = "Select a start and end location to find a route."
	summaryNoRoute     = "No route found between the selected locations."
	summaryUnavailable = "Venue service is unavailable, please try again."
	summaryFoundFormat = "Route found: %d waypoints, length %d px."
)

// Controller owns one viewer's navigation state: the current selection, the
// current route (always in native coordinates) and the display-surface scale.
// It is the only place venue failures are recovered; every transition leaves
// the session in a displayable state.
//
// Transitions have exactly three side-effect categories: a venue call (when
// applicable), an overlay redraw, and a summary update. History recording and
// event notification live with the callers.
type Controller struct {
	mu sync.Mutex

	id       string
	venue    VenueClient
	renderer *overlay.Renderer

	native  overlay.Dimensions
	surface models.SurfaceSize
	scale   overlay.Scale

	state   models.SessionState
	startID string
	endID   string
	route   models.Route
	summary string

	// seq is the latest issued route request. A response is applied only if
	// it is still the latest, so a slow early response can never overwrite a
	// faster later one.
	seq uint64

	overlayPNG []byte

	onUpdate func()
}

// NewController creates an idle controller for one viewer session.
func NewController(id string, client VenueClient, renderer *overlay.Renderer, native overlay.Dimensions) *Controller {
	c := &Controller{
		id:       id,
		venue:    client,
		renderer: renderer,
		native:   native,
		state:    models.StateIdle,
		route:    models.Route{},
		summary:  summaryIdle,
	}
	c.redraw()
	return c
}

// OnUpdate registers a callback invoked after every overlay redraw. Used by
// the websocket channel to push "overlay updated" notices.
func (c *Controller) OnUpdate(fn func()) {
	c.mu.Lock()
	c.onUpdate = fn
	c.mu.Unlock()
}

// RequestRoute selects the given start/end and requests a route from the
// venue service. An incomplete selection transitions straight to Error
// without any network call. While the call is in flight the controller stays
// responsive; a response that is no longer the latest issued request is
// discarded.
func (c *Controller) RequestRoute(ctx context.Context, startID, endID string) {
	c.mu.Lock()
	c.startID = startID
	c.endID = endID

	if startID == "" {
		c.applyErrorLocked(venue.NewInvalidSelectionError("start"))
		c.mu.Unlock()
		c.notify()
		return
	}
	if endID == "" {
		c.applyErrorLocked(venue.NewInvalidSelectionError("end"))
		c.mu.Unlock()
		c.notify()
		return
	}

	c.seq++
	seq := c.seq
	c.mu.Unlock()

	found, err := c.venue.FindRoute(ctx, startID, endID)

	c.mu.Lock()
	if seq != c.seq {
		fmt.Printf("[Session %s] Discarding stale route response (seq %d, latest %d)\n",
			shortID(c.id), seq, c.seq)
		c.mu.Unlock()
		return
	}

	if err != nil {
		c.applyErrorLocked(err)
	} else {
		c.applyRouteLocked(found)
	}
	c.mu.Unlock()
	c.notify()
}

// Clear returns the session to Idle: selections back to placeholder, route
// discarded, overlay blanked. A later resize therefore redraws nothing.
func (c *Controller) Clear() {
	c.mu.Lock()
	c.seq++ // in-flight responses become stale
	c.state = models.StateIdle
	c.startID = ""
	c.endID = ""
	c.route = models.Route{}
	c.summary = summaryIdle
	c.redraw()
	c.mu.Unlock()
	c.notify()
}

// Resize records a new display-surface size, re-derives the scale factors
// and re-renders the current route without touching the venue service. Image
// (re)load events arrive here too: the viewer reports the freshly measured
// rendered size once the image's natural dimensions are known.
func (c *Controller) Resize(surface models.SurfaceSize) {
	c.mu.Lock()
	c.surface = surface
	c.redraw()
	c.mu.Unlock()
	c.notify()
}

// applyRouteLocked installs a successful route result.
func (c *Controller) applyRouteLocked(found models.Route) {
	c.state = models.StateRouteDisplayed
	c.route = found

	if len(found) == 0 {
		c.summary = summaryNoRoute
	} else {
		c.summary = fmt.Sprintf(summaryFoundFormat, route.Count(found), route.Length(found))
	}
	c.redraw()
}

// applyErrorLocked installs a failed route result. The stored route is reset
// to empty, so the overlay clears along with the transition.
func (c *Controller) applyErrorLocked(err error) {
	c.state = models.StateError
	c.route = models.Route{}
	c.summary = displayMessage(err)
	c.redraw()
}

// redraw re-derives the scale and renders the overlay for the current state.
// Callers hold c.mu.
func (c *Controller) redraw() {
	c.scale = overlay.ScaleFor(c.native, overlay.Dimensions{
		Width:  c.surface.Width,
		Height: c.surface.Height,
	})

	data, err := c.renderer.RenderPNG(c.route, c.scale, c.surface)
	if err != nil {
		fmt.Printf("[Session %s] Overlay render failed: %v\n", shortID(c.id), err)
		return
	}
	c.overlayPNG = data
}

func (c *Controller) notify() {
	c.mu.Lock()
	fn := c.onUpdate
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// displayMessage derives the summary panel text for a venue failure.
// Rejections and status-derived failures surface their message verbatim
// ("no path", "HTTP error 502"); pure transport failures get the generic
// retry suggestion.
func displayMessage(err error) string {
	var ve *venue.Error
	if !errors.As(err, &ve) {
		return summaryUnavailable
	}

	switch ve.Kind {
	case venue.KindRejected, venue.KindInvalidSelection:
		return ve.Message
	default:
		if ve.Status != 0 {
			return ve.Message
		}
		return summaryUnavailable
	}
}

// Snapshot returns the session's wire representation.
func (c *Controller) Snapshot() models.NavSession {
	c.mu.Lock()
	defer c.mu.Unlock()

	return models.NavSession{
		ID:            c.id,
		State:         c.state,
		StartID:       c.startID,
		EndID:         c.endID,
		Summary:       c.summary,
		RouteLength:   route.Length(c.route),
		WaypointCount: route.Count(c.route),
		Surface:       c.surface,
	}
}

// OverlayPNG returns the current rendered overlay.
func (c *Controller) OverlayPNG() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.overlayPNG
}

// ScaledRoute returns the current route in surface coordinates, for viewers
// that paint the polyline themselves.
func (c *Controller) ScaledRoute() models.Route {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scale.MapRoute(c.route)
}

// Route returns a copy of the current native-coordinate route.
func (c *Controller) Route() models.Route {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append(models.Route{}, c.route...)
}

// State returns the current display state.
func (c *Controller) State() models.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
