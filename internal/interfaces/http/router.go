// Package http wires the gin engine: routes, middleware and server lifecycle.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/minervahq/minerva/internal/config"
	"github.com/minervahq/minerva/internal/interfaces/http/handlers"
	"github.com/minervahq/minerva/pkg/logger"
	"github.com/minervahq/minerva/web"
)

// RouterDependencies bundles everything the router needs.
type RouterDependencies struct {
	Config           *config.Config
	Logger           logger.Logger
	AnalysisHandler  *handlers.AnalysisHandler
	DashboardHandler *handlers.DashboardHandler
	HealthHandler    *handlers.HealthHandler
	Middleware       []gin.HandlerFunc
	RateLimit        gin.HandlerFunc // nil when rate limiting is disabled
}

// Router is the HTTP front of the service.
type Router struct {
	engine *gin.Engine
	deps   RouterDependencies
	server *http.Server
}

// NewRouter creates the router and registers all routes.
func NewRouter(deps RouterDependencies) *Router {
	gin.SetMode(gin.ReleaseMode)
	r := &Router{
		engine: gin.New(),
		deps:   deps,
	}
	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	r.engine.Use(r.deps.Middleware...)

	r.engine.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	// Dashboard page.
	r.engine.GET("/", r.serveIndex)
	r.engine.HEAD("/", r.serveIndex)

	// Health endpoints, no middleware requirements.
	r.engine.GET("/health/live", r.deps.HealthHandler.LivenessCheck)
	r.engine.GET("/health/ready", r.deps.HealthHandler.ReadinessCheck)

	// Prometheus metrics.
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if r.deps.Config.Pprof.Enabled {
		pprof.Register(r.engine)
	}

	v1 := r.engine.Group("/api/v1")
	{
		analyses := v1.Group("/analyses")
		{
			if r.deps.RateLimit != nil {
				analyses.POST("", r.deps.RateLimit, r.deps.AnalysisHandler.Analyze)
			} else {
				analyses.POST("", r.deps.AnalysisHandler.Analyze)
			}
			analyses.GET("/current", r.deps.AnalysisHandler.Current)
			analyses.DELETE("/current", r.deps.AnalysisHandler.Discard)
		}
		v1.GET("/dashboard", r.deps.DashboardHandler.Dashboard)
	}

	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":             "not_found",
			"error_description": "The requested resource was not found",
		})
	})
}

func (r *Router) serveIndex(c *gin.Context) {
	page, err := web.Index()
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// Engine exposes the gin engine for tests.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Start runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func (r *Router) Start(ctx context.Context) error {
	addr := r.deps.Config.Server.Addr()
	r.server = &http.Server{
		Addr:           addr,
		Handler:        r.engine,
		ReadTimeout:    r.deps.Config.Server.ReadTimeout,
		WriteTimeout:   r.deps.Config.Server.WriteTimeout,
		IdleTimeout:    r.deps.Config.Server.IdleTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		r.deps.Logger.Info(ctx, "starting HTTP server", logger.Fields{"address": addr})
		if err := r.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	r.deps.Logger.Info(shutdownCtx, "shutting down HTTP server")
	if err := r.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
