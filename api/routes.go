package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/annotator/api/data"
	"github.com/killallgit/annotator/api/datasets"
	"github.com/killallgit/annotator/api/health"
	"github.com/killallgit/annotator/api/labels"
	"github.com/killallgit/annotator/api/middleware"
	"github.com/killallgit/annotator/api/projects"
	"github.com/killallgit/annotator/api/segmentations"
	"github.com/killallgit/annotator/api/types"
	"github.com/killallgit/annotator/api/version"
	_ "github.com/killallgit/annotator/docs/swagger"
)

// RouteOptions tunes route registration
type RouteOptions struct {
	RateLimit     int
	RateBurst     int
	LabelCacheTTL time.Duration
}

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once, opts RouteOptions) {
	// Public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Swagger documentation
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if deps.AudioDir != "" {
		engine.Static("/audios", deps.AudioDir)
	}

	engine.NoRoute(NotFoundHandler())

	apiGroup := engine.Group("/api")
	apiGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, opts.RateLimit, opts.RateBurst))

	projects.RegisterRoutes(apiGroup, deps)
	datasets.RegisterRoutes(apiGroup, deps)
	data.RegisterRoutes(apiGroup, deps)

	project := apiGroup.Group("/projects/:project_id")
	segmentations.RegisterRoutes(project, deps)

	var labelCache gin.HandlerFunc
	if deps.ResponseCache != nil {
		labelCache = middleware.ResponseCache(middleware.CacheConfig{
			Cache:      deps.ResponseCache,
			DefaultTTL: opts.LabelCacheTTL,
			Enabled:    true,
		})
	}
	labels.RegisterRoutes(project, deps, labelCache)
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  types.StatusError,
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
