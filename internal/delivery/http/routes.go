package http

import (
	"github.com/gemvault/storefront/config"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the Gin router. metrics may be nil.
func SetupRouter(cfg *config.Config, handler *Handler, metrics *Metrics, logger *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.SetHTMLTemplate(loadTemplates())

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware(logger))
	if metrics != nil {
		router.Use(metrics.Middleware())
	}
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)
	if metrics != nil {
		router.GET("/metrics", metrics.Handler())
	}

	// Server-rendered storefront
	router.GET("/catalog", handler.CatalogPage)
	router.GET("/catalog/:category", handler.CatalogPage)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		pages := v1.Group("/pages")
		{
			pages.POST("", handler.OpenPage)
			pages.GET("/:id", handler.GetPage)
			pages.PATCH("/:id/filters", handler.UpdateFilters)
			pages.POST("/:id/reset", handler.ResetFilters)
			pages.DELETE("/:id", handler.ClosePage)
		}
	}

	return router
}
