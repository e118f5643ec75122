// internal/api/server.go
// Package api exposes the intake backend over HTTP. The server wires up
// submissions, coverage catalog lookup, directory resources, and admin
// endpoints under /api/v1, plus health and metrics endpoints at the root.
package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"acord-intake/internal/common/config"
	"acord-intake/internal/common/logger"
	"acord-intake/internal/common/observability"
)

// Handlers groups the route handlers mounted under /api/v1.
type Handlers struct {
	Submissions   *SubmissionHandler
	CoverageTypes *CoverageTypeHandler
	Agencies      *AgencyHandler
	Users         *UserHandler
	Notifications *NotificationHandler
	Admin         *AdminHandler
}

// Server is the HTTP front end of the intake service.
type Server struct {
	router   *gin.Engine
	config   *config.Config
	logger   logger.Logger
	handlers Handlers
	db       *sql.DB
	redis    *redis.Client
	httpSrv  *http.Server
}

// NewServer builds the gin router with the standard middleware chain and
// registers all routes. db and redisClient are only used by the readiness
// probe and may be nil in tests.
func NewServer(cfg *config.Config, log logger.Logger, obs *observability.Observability, handlers Handlers, db *sql.DB, redisClient *redis.Client) *Server {
	if cfg.App.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router:   gin.New(),
		config:   cfg,
		logger:   log.WithFields(map[string]interface{}{"component": "api-server"}),
		handlers: handlers,
		db:       db,
		redis:    redisClient,
	}

	s.router.Use(gin.Recovery())
	s.router.Use(RequestID())
	s.router.Use(RequestLogger(log))
	s.router.Use(RequestMetrics())
	if obs != nil {
		s.router.Use(RequestTracing(obs))
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Operational endpoints
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/ready", s.handleReady)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api/v1")
	{
		if s.handlers.Submissions != nil {
			s.handlers.Submissions.RegisterRoutes(api)
		}
		if s.handlers.CoverageTypes != nil {
			s.handlers.CoverageTypes.RegisterRoutes(api)
		}
		if s.handlers.Agencies != nil {
			s.handlers.Agencies.RegisterRoutes(api)
		}
		if s.handlers.Users != nil {
			s.handlers.Users.RegisterRoutes(api)
		}
		if s.handlers.Notifications != nil {
			s.handlers.Notifications.RegisterRoutes(api)
		}
		if s.handlers.Admin != nil {
			s.handlers.Admin.RegisterRoutes(api)
		}
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"service":     s.config.App.Name,
		"version":     s.config.App.Version,
		"environment": s.config.App.Environment,
	})
}

// handleReady reports whether the backing stores answer. Elasticsearch is
// not checked: intake keeps working when search is down.
func (s *Server) handleReady(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{}
	ready := true

	if s.db != nil {
		if err := s.db.PingContext(ctx); err != nil {
			checks["postgres"] = "unreachable"
			ready = false
		} else {
			checks["postgres"] = "ok"
		}
	}
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "unreachable"
			ready = false
		} else {
			checks["redis"] = "ok"
		}
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"ready": ready, "checks": checks})
}

// Router exposes the underlying gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP listener and blocks until it stops.
func (s *Server) Run() error {
	s.httpSrv = &http.Server{
		Addr:         s.config.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  config.GetDuration(s.config.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(s.config.Server.WriteTimeout),
	}

	s.logger.Info("HTTP server listening", map[string]interface{}{
		"addr": s.config.Server.Addr(),
	})
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}
