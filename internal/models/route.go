package models

// Waypoint is a point on the floor plan in native image pixel coordinates
// (relative to the image's original, unscaled dimensions).
type Waypoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Route is an ordered sequence of waypoints from the selected start node to
// the selected end node. An empty route means "searched, no path exists".
// Routes are always held in native coordinates; scaling to the display
// surface happens at render time only.
type Route []Waypoint

// NodeCatalog maps node identifiers to arbitrary per-node metadata.
// The metadata shape belongs to the venue service and is opaque here;
// only the identifier keys matter for selection.
type NodeCatalog map[string]map[string]interface{}
