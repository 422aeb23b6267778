// Package route provides pure statistics over routes.
package route

import (
	"math"

	"github.com/venue-navigator/backend/internal/models"
)

// Length returns the total path length of a route: the sum of euclidean
// distances between consecutive waypoints, rounded to the nearest integer.
// Routes of fewer than two waypoints have length 0.
//
// Length operates on native coordinates, so the reported distance does not
// change as the display surface resizes.
func Length(r models.Route) int {
	if len(r) < 2 {
		return 0
	}

	var total float64
	for i := 1; i < len(r); i++ {
		dx := r[i].X - r[i-1].X
		dy := r[i].Y - r[i-1].Y
		total += math.Hypot(dx, dy)
	}
	return int(math.Round(total))
}

// Count returns the number of waypoints in a route.
func Count(r models.Route) int {
	return len(r)
}
