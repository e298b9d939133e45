package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/annotator/api/types"
	"github.com/killallgit/annotator/internal/services/cache"
	"github.com/killallgit/annotator/pkg/config"
)

// Server represents the HTTP server
type Server struct {
	engine             *gin.Engine
	httpServer         *http.Server
	cfg                config.ServerConfig
	rateLimiters       *sync.Map
	cleanupInitialized sync.Once
	cleanupStop        chan struct{}
	stopOnce           sync.Once
	responseCache      *cache.MemoryCache

	// Dependencies for handlers
	dependencies *types.Dependencies
}

// NewServer creates a new HTTP server
func NewServer(cfg config.ServerConfig, deps *types.Dependencies) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())

	if deps == nil {
		deps = &types.Dependencies{}
	}
	if deps.AudioDir == "" {
		deps.AudioDir = cfg.AudioDir
	}

	return &Server{
		engine:       engine,
		cfg:          cfg,
		rateLimiters: &sync.Map{},
		cleanupStop:  make(chan struct{}),
		dependencies: deps,
		httpServer: &http.Server{
			Addr:           fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:        engine,
			ReadTimeout:    cfg.ReadTimeout,
			WriteTimeout:   cfg.WriteTimeout,
			MaxHeaderBytes: cfg.MaxHeaderBytes,
		},
	}
}

// Engine returns the Gin engine for testing
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Initialize sets up middleware and routes
func (s *Server) Initialize() error {
	if s.dependencies.Catalog == nil {
		return fmt.Errorf("catalog service is not configured")
	}
	if s.dependencies.ResponseCache == nil {
		s.responseCache = cache.NewMemoryCache(256)
		s.dependencies.ResponseCache = s.responseCache
	}

	s.setupMiddleware()
	s.setupRoutes()
	return nil
}

// setupMiddleware configures global middleware
func (s *Server) setupMiddleware() {
	s.engine.Use(RequestLogger(s.dependencies.Log()))
	s.engine.Use(CORS(s.cfg.CORSOrigins...))

	maxBytes := s.cfg.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = 1024 * 1024
	}
	s.engine.Use(RequestSizeLimit(maxBytes))
}

// setupRoutes delegates to the main route registration
func (s *Server) setupRoutes() {
	RegisterRoutes(s.engine, s.dependencies, s.rateLimiters, s.cleanupStop, &s.cleanupInitialized, RouteOptions{
		RateLimit:     s.cfg.RateLimit,
		RateBurst:     s.cfg.RateBurst,
		LabelCacheTTL: s.cfg.LabelCacheTTL,
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() {
		close(s.cleanupStop)
		if s.responseCache != nil {
			s.responseCache.Stop()
		}
	})
	return s.httpServer.Shutdown(ctx)
}
