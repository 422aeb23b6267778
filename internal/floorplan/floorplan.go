// Package floorplan loads the deployed floor-plan image and exposes its
// native dimensions. The native size is the reference frame every route
// waypoint is expressed in; it only becomes known once the image decodes.
package floorplan

import (
	"bytes"
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/venue-navigator/backend/internal/overlay"
)

// Plan is a loaded floor-plan image.
type Plan struct {
	path   string
	data   []byte
	native overlay.Dimensions
	format string
}

// Load reads and decodes the floor-plan image at the given path.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read floor plan: %w", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode floor plan %s: %w", path, err)
	}

	fmt.Printf("[FloorPlan] Loaded %s (%s, %dx%d)\n", path, format, cfg.Width, cfg.Height)

	return &Plan{
		path:   path,
		data:   data,
		native: overlay.Dimensions{Width: cfg.Width, Height: cfg.Height},
		format: format,
	}, nil
}

// Empty returns a placeholder plan with zero native dimensions. The mapper
// degenerates to zero scale until a real plan is deployed, so the server
// stays up even without an image.
func Empty() *Plan {
	return &Plan{format: "png"}
}

// NativeSize returns the image's original, unscaled dimensions.
func (p *Plan) NativeSize() overlay.Dimensions {
	return p.native
}

// Bytes returns the raw image file contents.
func (p *Plan) Bytes() []byte {
	return p.data
}

// ContentType returns the MIME type for serving the image.
func (p *Plan) ContentType() string {
	switch p.format {
	case "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	default:
		return "image/png"
	}
}
