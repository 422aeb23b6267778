// Package config provides XML-based configuration management for air-gapped deployment.
package config

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// AppConfig represents the root XML configuration structure
type AppConfig struct {
	XMLName xml.Name `xml:"VenueNavigator"`

	// Server configuration
	Server ServerConfig `xml:"Server"`

	// Remote venue/navigation service
	Venue VenueConfig `xml:"Venue"`

	// Floor plan deployment
	FloorPlan FloorPlanConfig `xml:"FloorPlan"`

	// Overlay rendering
	Renderer RendererConfig `xml:"Renderer"`

	// Route request history
	History HistoryConfig `xml:"History"`

	// Session housekeeping
	Processing ProcessingConfig `xml:"Processing"`

	// Advanced options
	Advanced AdvancedConfig `xml:"Advanced"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         int    `xml:"Port"`
	BindAddress  string `xml:"BindAddress"`
	EnableCORS   bool   `xml:"EnableCORS"`
	AllowOrigins string `xml:"AllowOrigins"`
	ReadTimeout  int    `xml:"ReadTimeoutSeconds"`
	WriteTimeout int    `xml:"WriteTimeoutSeconds"`
	IdleTimeout  int    `xml:"IdleTimeoutSeconds"`
	BodyLimit    string `xml:"BodyLimit"`
}

// VenueConfig points at the remote venue/navigation service
type VenueConfig struct {
	BaseURL        string `xml:"BaseURL"`
	TimeoutSeconds int    `xml:"TimeoutSeconds"`
}

// FloorPlanConfig locates the deployed floor-plan image
type FloorPlanConfig struct {
	ImagePath string `xml:"ImagePath"`
}

// RendererConfig locates the overlay style file
type RendererConfig struct {
	StylePath string `xml:"StylePath"`
}

// HistoryConfig controls the route request history store
type HistoryConfig struct {
	Enabled      bool   `xml:"Enabled"`
	DatabasePath string `xml:"DatabasePath"`
}

// ProcessingConfig contains session housekeeping settings
type ProcessingConfig struct {
	SessionTimeoutMinutes  int `xml:"SessionTimeoutMinutes"`
	CleanupIntervalMinutes int `xml:"CleanupIntervalMinutes"`
}

// AdvancedConfig contains advanced/tuning options
type AdvancedConfig struct {
	EnableRequestLogging bool `xml:"EnableRequestLogging"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:         8090,
			BindAddress:  "0.0.0.0",
			EnableCORS:   true,
			AllowOrigins: "*",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  120,
			BodyLimit:    "1M",
		},
		Venue: VenueConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 15,
		},
		FloorPlan: FloorPlanConfig{
			ImagePath: "./data/floorplan.png",
		},
		Renderer: RendererConfig{
			StylePath: "./data/overlay_style.yaml",
		},
		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: "./data/history.duckdb",
		},
		Processing: ProcessingConfig{
			SessionTimeoutMinutes:  30,
			CleanupIntervalMinutes: 5,
		},
		Advanced: AdvancedConfig{
			EnableRequestLogging: true,
		},
	}
}

// LoadConfig loads configuration from XML file
func LoadConfig(configPath string) (*AppConfig, error) {
	// If file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := DefaultConfig()
		if err := config.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		config.applyEnvironmentOverrides()
		config.resolvePaths(filepath.Dir(configPath))
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &AppConfig{}
	if err := xml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnvironmentOverrides()
	config.resolvePaths(filepath.Dir(configPath))

	return config, nil
}

// Save saves the configuration to XML file
func (c *AppConfig) Save(configPath string) error {
	output, err := xml.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(xml.Header + "\n<!-- Venue Navigator Configuration -->\n<!-- This file is auto-generated on first run -->\n\n")
	content := append(header, output...)

	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvironmentOverrides allows environment variables to override config values
func (c *AppConfig) applyEnvironmentOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if baseURL := os.Getenv("VENUE_SERVICE_URL"); baseURL != "" {
		c.Venue.BaseURL = baseURL
	}

	if imagePath := os.Getenv("FLOORPLAN_PATH"); imagePath != "" {
		c.FloorPlan.ImagePath = imagePath
	}
}

// resolvePaths converts relative paths to absolute based on config file location
func (c *AppConfig) resolvePaths(configDir string) {
	if !filepath.IsAbs(c.FloorPlan.ImagePath) {
		c.FloorPlan.ImagePath = filepath.Join(configDir, c.FloorPlan.ImagePath)
	}
	if !filepath.IsAbs(c.Renderer.StylePath) {
		c.Renderer.StylePath = filepath.Join(configDir, c.Renderer.StylePath)
	}
	if c.History.DatabasePath != "" && !filepath.IsAbs(c.History.DatabasePath) {
		c.History.DatabasePath = filepath.Join(configDir, c.History.DatabasePath)
	}
}

// EnsureDirectories creates the directories referenced by the configuration
func (c *AppConfig) EnsureDirectories() error {
	dirs := []string{
		filepath.Dir(c.FloorPlan.ImagePath),
		filepath.Dir(c.Renderer.StylePath),
	}
	if c.History.Enabled && c.History.DatabasePath != "" {
		dirs = append(dirs, filepath.Dir(c.History.DatabasePath))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetServerAddr returns the server bind address
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}
