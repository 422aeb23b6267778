package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/venue-navigator/backend/internal/models"
)

func TestLength(t *testing.T) {
	tests := []struct {
		name  string
		route models.Route
		want  int
	}{
		{
			name:  "empty route",
			route: models.Route{},
			want:  0,
		},
		{
			name:  "nil route",
			route: nil,
			want:  0,
		},
		{
			name:  "single waypoint",
			route: models.Route{{X: 0, Y: 0}},
			want:  0,
		},
		{
			name:  "3-4-5 triangle",
			route: models.Route{{X: 0, Y: 0}, {X: 3, Y: 4}},
			want:  5,
		},
		{
			name:  "two segments",
			route: models.Route{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 14}},
			want:  15,
		},
		{
			name:  "rounds to nearest",
			route: models.Route{{X: 0, Y: 0}, {X: 1, Y: 1}}, // sqrt(2) ~ 1.414
			want:  1,
		},
		{
			name:  "backtracking still accumulates",
			route: models.Route{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 0}},
			want:  20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Length(tt.route))
		})
	}
}

func TestLengthScaleIndependent(t *testing.T) {
	// Length is computed on native coordinates; a resized surface must not
	// influence it. There is no surface parameter at all, but guard against
	// accidental mutation too.
	r := models.Route{{X: 10, Y: 20}, {X: 40, Y: 60}}
	before := append(models.Route{}, r...)

	assert.Equal(t, 50, Length(r))
	assert.Equal(t, before, r)
}

func TestCount(t *testing.T) {
	assert.Equal(t, 0, Count(nil))
	assert.Equal(t, 0, Count(models.Route{}))
	assert.Equal(t, 1, Count(models.Route{{X: 1, Y: 2}}))
	assert.Equal(t, 3, Count(models.Route{{}, {}, {}}))
}
