package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	appservice "github.com/minervahq/minerva/internal/application/service"
	"github.com/minervahq/minerva/internal/config"
	domainservice "github.com/minervahq/minerva/internal/domain/service"
	"github.com/minervahq/minerva/internal/infrastructure/monitoring"
	"github.com/minervahq/minerva/internal/infrastructure/persistence/memory"
	"github.com/minervahq/minerva/internal/infrastructure/persistence/redis"
	"github.com/minervahq/minerva/internal/infrastructure/ratelimit"
	httpiface "github.com/minervahq/minerva/internal/interfaces/http"
	"github.com/minervahq/minerva/internal/interfaces/http/handlers"
	"github.com/minervahq/minerva/pkg/logger"
)

func main() {
	startupLogger, _ := monitoring.NewZapLogger(&config.LogConfig{Level: "info"})

	loader := config.NewLoader(startupLogger)
	cfg, err := loader.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger, err := monitoring.NewZapLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	loader.OnReload(func(next *config.Config) {
		if err := appLogger.SetLevel(next.Log.Level); err != nil {
			appLogger.Warn(context.Background(), "ignoring invalid log level", logger.Fields{
				"level": next.Log.Level,
				"error": err.Error(),
			})
			return
		}
		appLogger.Info(context.Background(), "log level updated", logger.Fields{
			"level": next.Log.Level,
		})
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := monitoring.InitTracer(&cfg.Tracing, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "failed to initialize tracer", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			appLogger.Warn(shutdownCtx, "tracer shutdown failed", logger.Fields{"error": err.Error()})
		}
	}()

	metrics := monitoring.NewMetrics()

	// Rate limiting is optional; without it the service has no external
	// dependencies at all.
	var (
		rateLimitMW gin.HandlerFunc
		redisPinger handlers.Pinger
	)
	if cfg.RateLimit.Enabled {
		redisConn, err := redis.NewRedisConnection(&cfg.Redis, appLogger)
		if err != nil {
			appLogger.Fatal(ctx, "failed to connect to redis", err)
		}
		defer redisConn.Close()

		limiter := ratelimit.NewRedisRateLimiter(
			redisConn.Client(), cfg.RateLimit.Limit, cfg.RateLimit.Window, appLogger)
		rateLimitMW = handlers.RateLimitMiddleware(limiter, metrics)
		redisPinger = redisConn
	}

	scorer := domainservice.NewRiskScorer(
		domainservice.NewPCGSourceFactory(), time.Now, appLogger)
	reportStore := memory.NewCacheReportStore(cfg.Scoring.ReportTTL)
	analysisSvc := appservice.NewAnalysisAppService(scorer, reportStore, appLogger)

	router := httpiface.NewRouter(httpiface.RouterDependencies{
		Config:           cfg,
		Logger:           appLogger,
		AnalysisHandler:  handlers.NewAnalysisHandler(analysisSvc, metrics),
		DashboardHandler: handlers.NewDashboardHandler(analysisSvc),
		HealthHandler:    handlers.NewHealthHandler(redisPinger, appLogger),
		Middleware: []gin.HandlerFunc{
			handlers.RecoveryMiddleware(appLogger),
			handlers.RequestIDMiddleware(),
			handlers.TracingMiddleware(),
			handlers.LoggingMiddleware(appLogger),
		},
		RateLimit: rateLimitMW,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return router.Start(ctx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Fatal(context.Background(), "server exited with error", err)
	}
	appLogger.Info(context.Background(), "server stopped")
}
