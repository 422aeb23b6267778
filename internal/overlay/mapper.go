// Package overlay maps native-coordinate routes onto the display surface and
// renders them as a transparent overlay image.
package overlay

import "github.com/venue-navigator/backend/internal/models"

// Dimensions holds a width/height pair in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Scale holds the independent horizontal and vertical factors that convert
// native image coordinates to display-surface coordinates.
type Scale struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ScaleFor derives the scale factors for a native/surface dimension pair.
// If the native dimensions are zero or negative (image not loaded yet), it
// returns a zero scale: mapped points degenerate to the origin rather than
// failing. Callers are expected to not render before the image has reported
// its natural size.
func ScaleFor(native, surface Dimensions) Scale {
	if native.Width <= 0 || native.Height <= 0 {
		return Scale{}
	}
	return Scale{
		X: float64(surface.Width) / float64(native.Width),
		Y: float64(surface.Height) / float64(native.Height),
	}
}

// Map converts a waypoint from native image coordinates to surface
// coordinates.
func (s Scale) Map(p models.Waypoint) models.Waypoint {
	return models.Waypoint{X: p.X * s.X, Y: p.Y * s.Y}
}

// MapRoute converts a whole route to surface coordinates. The input route is
// never mutated; native coordinates stay the single source of truth.
func (s Scale) MapRoute(r models.Route) models.Route {
	if len(r) == 0 {
		return models.Route{}
	}
	out := make(models.Route, len(r))
	for i, p := range r {
		out[i] = s.Map(p)
	}
	return out
}
