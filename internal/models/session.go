package models

// SessionState represents the display state of a navigation session.
type SessionState string

const (
	// StateIdle means no selection and no result are held.
	StateIdle SessionState = "idle"
	// StateRouteDisplayed means the last route request succeeded. The route
	// may still be empty ("searched, none found").
	StateRouteDisplayed SessionState = "routeDisplayed"
	// StateError means the last route request failed; the message is held
	// for display until the next transition.
	StateError SessionState = "error"
)

// SurfaceSize is the rendered size of the floor-plan image in the viewer,
// independent of the image's native dimensions. It changes on window resize
// and on image (re)load.
type SurfaceSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NavSession is the wire representation of a navigation session's state.
type NavSession struct {
	ID            string       `json:"id"`
	State         SessionState `json:"state"`
	StartID       string       `json:"startId,omitempty"`
	EndID         string       `json:"endId,omitempty"`
	Summary       string       `json:"summary"`
	RouteLength   int          `json:"routeLength"`
	WaypointCount int          `json:"waypointCount"`
	Surface       SurfaceSize  `json:"surface"`
}
