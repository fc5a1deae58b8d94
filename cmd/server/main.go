package main

import (
	"log"
	"net/http"
	"time"

	"task_manager_app_go/config"
	"task_manager_app_go/db"
	"task_manager_app_go/handlers"
	"task_manager_app_go/middleware"
	"task_manager_app_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Services
	services.InitSecurityMonitor()
	taskAPI := services.NewTaskAPIClient(cfg)
	var snapshots *services.SnapshotService
	if cfg.SnapshotFallback {
		snapshots = services.NewSnapshotService(db.DB)
	}
	h := handlers.New(services.NewDashboardService(taskAPI, snapshots), taskAPI)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: !containsWildcard(cfg.AllowedOrigins),
	}))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "0",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         hstsMaxAge(cfg),
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	e.Use(middleware.ConfigInjector(cfg))
	e.Use(middleware.CSPNonce(services.AvatarOrigin, "https:"))

	// Public routes
	e.GET("/healthz", handlers.HealthHandler(db.Ping))
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	})
	e.GET("/htmx/validate/email", handlers.ValidateEmailHandler, middleware.ValidationRateLimiter.Middleware())

	// Protected routes (task API token required)
	protected := e.Group("")
	protected.Use(middleware.RequireAPIToken(taskAPI, cfg.LoginURL))
	protected.Use(middleware.CSRF(cfg.IsProduction()))
	{
		protected.GET("/dashboard", h.DashboardHandler)

		// HTMX routes
		protected.GET("/htmx/users/select", h.SelectUsersHandler)
		protected.POST("/htmx/users/select/toggle", h.ToggleUserHandler)

		// JSON API
		api := protected.Group("/api")
		api.Use(middleware.APIRateLimiter.Middleware())
		{
			api.GET("/dashboard", h.GetDashboardHandler)
			api.GET("/dashboard/export.xlsx", h.ExportDashboardHandler, middleware.ExportRateLimiter.Middleware())
		}
	}

	// Snapshot cleanup (runs every hour)
	if snapshots != nil {
		go func() {
			ticker := time.NewTicker(1 * time.Hour)
			defer ticker.Stop()

			for range ticker.C {
				removed, err := snapshots.CleanupOlderThan(cfg.SnapshotMaxAge)
				if err != nil {
					log.Printf("Error cleaning up dashboard snapshots: %v", err)
					continue
				}
				if removed > 0 {
					log.Printf("[INFO] Removed %d expired dashboard snapshots", removed)
				}
			}
		}()
	}

	// Start server
	log.Printf("Server starting on port %s (task API %s)", cfg.ServerPort, cfg.TaskAPIURL)
	if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}

func hstsMaxAge(cfg *config.Config) int {
	if cfg.IsProduction() {
		return 31536000
	}
	return 0
}
