package overlay

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"
	"github.com/venue-navigator/backend/internal/models"
)

// Renderer draws a route polyline with start/end/interior markers onto a
// fully transparent surface. Rendering is idempotent: every call starts from
// a cleared surface, so redrawing the same route over a resize produces the
// same visible result.
type Renderer struct {
	style    Style
	route    color.RGBA
	start    color.RGBA
	end      color.RGBA
	waypoint color.RGBA
}

// NewRenderer creates a renderer for the given style. Malformed color values
// are replaced with the corresponding default and logged.
func NewRenderer(style Style) *Renderer {
	style = style.withDefaults()
	def := DefaultStyle()

	pick := func(name, value, fallback string) color.RGBA {
		c, err := parseHexColor(value)
		if err != nil {
			fmt.Printf("[Renderer] invalid %s %q, using default %s\n", name, value, fallback)
			c, _ = parseHexColor(fallback)
		}
		return c
	}

	return &Renderer{
		style:    style,
		route:    pick("routeColor", style.RouteColor, def.RouteColor),
		start:    pick("startColor", style.StartColor, def.StartColor),
		end:      pick("endColor", style.EndColor, def.EndColor),
		waypoint: pick("waypointColor", style.WaypointColor, def.WaypointColor),
	}
}

// Render produces the overlay image for a route at the given scale and
// surface size. An empty route yields a fully transparent surface: the same
// pixels as if nothing had ever been drawn.
func (r *Renderer) Render(rt models.Route, sc Scale, surface models.SurfaceSize) image.Image {
	w, h := surface.Width, surface.Height
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	// A fresh context is the "clear" step: all pixels start transparent.
	dc := gg.NewContext(w, h)
	if len(rt) == 0 {
		return dc.Image()
	}

	scaled := sc.MapRoute(rt)

	// Connected polyline through every waypoint in order.
	dc.SetColor(r.route)
	dc.SetLineWidth(r.style.StrokeWidth)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	for i, p := range scaled {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
		} else {
			dc.LineTo(p.X, p.Y)
		}
	}
	dc.Stroke()

	// Interior markers first so the endpoint markers stay on top.
	dc.SetColor(r.waypoint)
	for i := 1; i < len(scaled)-1; i++ {
		dc.DrawCircle(scaled[i].X, scaled[i].Y, r.style.WaypointRadius)
		dc.Fill()
	}

	if len(scaled) > 1 {
		last := scaled[len(scaled)-1]
		dc.SetColor(r.end)
		dc.DrawCircle(last.X, last.Y, r.style.EndpointRadius)
		dc.Fill()
	}

	dc.SetColor(r.start)
	dc.DrawCircle(scaled[0].X, scaled[0].Y, r.style.EndpointRadius)
	dc.Fill()

	return dc.Image()
}

// RenderPNG renders the route and encodes the overlay as PNG bytes.
func (r *Renderer) RenderPNG(rt models.Route, sc Scale, surface models.SurfaceSize) ([]byte, error) {
	img := r.Render(rt, sc, surface)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}
	return buf.Bytes(), nil
}
