package overlay

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Style controls how a route is drawn on the overlay. The YAML format mirrors
// the deployed `overlay_style.yaml`; zero-valued fields fall back to defaults.
type Style struct {
	StrokeWidth    float64 `yaml:"strokeWidth"`
	RouteColor     string  `yaml:"routeColor"`
	StartColor     string  `yaml:"startColor"`
	EndColor       string  `yaml:"endColor"`
	WaypointColor  string  `yaml:"waypointColor"`
	EndpointRadius float64 `yaml:"endpointRadius"`
	WaypointRadius float64 `yaml:"waypointRadius"`
}

// DefaultStyle returns the built-in overlay styling.
func DefaultStyle() Style {
	return Style{
		StrokeWidth:    4,
		RouteColor:     "#ff3b30",
		StartColor:     "#34c759",
		EndColor:       "#007aff",
		WaypointColor:  "#ff9500",
		EndpointRadius: 8,
		WaypointRadius: 4,
	}
}

// LoadStyle reads an overlay style from a YAML file, filling unset fields
// with defaults. A missing file is not an error: the defaults are returned.
func LoadStyle(filePath string) (Style, error) {
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultStyle(), nil
		}
		return DefaultStyle(), err
	}
	defer file.Close()

	return LoadStyleFromReader(file)
}

// LoadStyleFromReader parses a style from an io.Reader.
func LoadStyleFromReader(r io.Reader) (Style, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return DefaultStyle(), err
	}

	var s Style
	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultStyle(), err
	}

	return s.withDefaults(), nil
}

// withDefaults fills any unset field from DefaultStyle.
func (s Style) withDefaults() Style {
	def := DefaultStyle()
	if s.StrokeWidth <= 0 {
		s.StrokeWidth = def.StrokeWidth
	}
	if s.RouteColor == "" {
		s.RouteColor = def.RouteColor
	}
	if s.StartColor == "" {
		s.StartColor = def.StartColor
	}
	if s.EndColor == "" {
		s.EndColor = def.EndColor
	}
	if s.WaypointColor == "" {
		s.WaypointColor = def.WaypointColor
	}
	if s.EndpointRadius <= 0 {
		s.EndpointRadius = def.EndpointRadius
	}
	if s.WaypointRadius <= 0 {
		s.WaypointRadius = def.WaypointRadius
	}
	return s
}

// parseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func parseHexColor(s string) (color.RGBA, error) {
	c := color.RGBA{A: 0xff}

	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 9:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("invalid color %q", s)
	}
	return c, err
}
