// Package api wires the HTTP surface consumed by the web front end.
package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"energy-sizing/internal/api/handlers"
	"energy-sizing/internal/api/middleware"
	"energy-sizing/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter builds the gin engine. The returned func releases background
// resources (cache sweepers) and should be called on shutdown.
func NewRouter(settings config.ServerSettings, logger *zap.Logger) (*gin.Engine, func()) {
	if settings.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply middleware
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics())

	// Initialize handlers
	presetHandler := handlers.NewPresetHandler(settings.PresetDir, logger)
	microgridHandler := handlers.NewMicrogridHandler(presetHandler, settings.CacheTTL, logger)
	calculatorHandler := handlers.NewCalculatorHandler(settings.CacheTTL, logger)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/microgrid/simulate", microgridHandler.Simulate)
		v1.POST("/microgrid/compare", microgridHandler.Compare)

		v1.POST("/lcoh", calculatorHandler.LCOH)
		v1.POST("/bess/revenue", calculatorHandler.BESSRevenue)

		v1.GET("/archetypes", handlers.ListArchetypes)
		v1.GET("/presets", presetHandler.ListPresets)
	}

	serveStatic(router, settings.StaticDir, logger)

	return router, func() {
		microgridHandler.Close()
		calculatorHandler.Close()
	}
}

// serveStatic serves the SPA build from staticDir (if it exists), falling
// back to index.html for client-side routes.
func serveStatic(router *gin.Engine, staticDir string, logger *zap.Logger) {
	notFound := func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": handlers.CodeNotFound, "message": "Not found"}})
	}

	if staticDir == "" {
		router.NoRoute(notFound)
		return
	}
	if _, err := os.Stat(staticDir); err != nil {
		logger.Info("static directory not found, skipping static file serving", zap.String("dir", staticDir))
		router.NoRoute(notFound)
		return
	}

	router.Static("/assets", filepath.Join(staticDir, "assets"))
	router.StaticFile("/favicon.ico", filepath.Join(staticDir, "favicon.ico"))
	index := filepath.Join(staticDir, "index.html")
	router.NoRoute(func(c *gin.Context) {
		// Don't serve index.html for API routes
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			notFound(c)
			return
		}
		c.File(index)
	})
	logger.Info("serving static files", zap.String("dir", staticDir))
}
