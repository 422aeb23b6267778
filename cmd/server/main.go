package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/venue-navigator/backend/internal/api"
	"github.com/venue-navigator/backend/internal/config"
	"github.com/venue-navigator/backend/internal/floorplan"
	"github.com/venue-navigator/backend/internal/history"
	"github.com/venue-navigator/backend/internal/overlay"
	"github.com/venue-navigator/backend/internal/session"
	"github.com/venue-navigator/backend/internal/venue"
	"github.com/venue-navigator/backend/internal/web"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Get the executable's directory for config resolution
	exePath, err := os.Executable()
	if err != nil {
		fmt.Printf("Failed to get executable path: %v\n", err)
		os.Exit(1)
	}
	exeDir := filepath.Dir(exePath)

	configPath := filepath.Join(exeDir, "VenueNavigator.config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Printf("Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	// Load the floor plan. The server stays up without one: the mapper
	// degenerates to zero scale until an image is deployed.
	plan, err := floorplan.Load(cfg.FloorPlan.ImagePath)
	if err != nil {
		fmt.Printf("Warning: no floor plan loaded: %v\n", err)
		plan = floorplan.Empty()
	}

	// Overlay styling, defaults when no style file is deployed
	style, err := overlay.LoadStyle(cfg.Renderer.StylePath)
	if err != nil {
		fmt.Printf("Warning: failed to load overlay style, using defaults: %v\n", err)
		style = overlay.DefaultStyle()
	}
	renderer := overlay.NewRenderer(style)

	// Venue service client
	venueClient := venue.NewClient(cfg.Venue.BaseURL, time.Duration(cfg.Venue.TimeoutSeconds)*time.Second)

	// Session manager
	sessionMgr := session.NewManager(venueClient, renderer, plan.NativeSize())

	// Start background session cleanup
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.Processing.CleanupIntervalMinutes) * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			sessionMgr.CleanupOldSessions(time.Duration(cfg.Processing.SessionTimeoutMinutes) * time.Minute)
		}
	}()

	// Route request history (best-effort; disabled on failure)
	var hist *history.Store
	if cfg.History.Enabled {
		hist, err = history.NewStore(cfg.History.DatabasePath)
		if err != nil {
			fmt.Printf("Warning: history disabled: %v\n", err)
			hist = nil
		} else {
			defer hist.Close()
		}
	}

	h, wsh := api.NewHandlers(&api.Dependencies{
		Catalog:    venueClient,
		SessionMgr: sessionMgr,
		Plan:       plan,
		History:    hist,
		Version:    Version,
	})

	e := echo.New()
	e.HTTPErrorHandler = api.ErrorHandler

	// Configure middleware
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			if !cfg.Advanced.EnableRequestLogging {
				return true
			}
			path := c.Request().URL.Path
			// Overlay fetches fire on every resize; keep the log readable.
			return strings.HasSuffix(path, "/overlay.png") || path == "/api/health"
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize:         1024 * 4,
		DisablePrintStack: false,
	}))

	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	if cfg.Server.EnableCORS {
		origins := strings.Split(cfg.Server.AllowOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	api.RegisterRoutes(e, h, wsh)

	// Register embedded viewer page if available
	embeddedMode := web.HasEmbeddedFiles()
	if embeddedMode {
		if err := web.RegisterStaticRoutes(e); err != nil {
			fmt.Printf("Warning: failed to register static routes: %v\n", err)
		} else {
			fmt.Println("Serving embedded viewer from binary")
		}
	}

	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	native := plan.NativeSize()
	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           Venue Navigator Server                          ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:     %-45s║\n", configPath)
	fmt.Printf("║  Listen:     http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("║  Venue:      %-45s║\n", cfg.Venue.BaseURL)
	fmt.Printf("║  Floor plan: %-45s║\n", fmt.Sprintf("%dx%d px", native.Width, native.Height))
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	if embeddedMode {
		fmt.Printf("Open http://localhost:%d in your browser\n\n", cfg.Server.Port)
	}

	e.Logger.Fatal(e.StartServer(s))
}
