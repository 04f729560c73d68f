package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	redislib "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/planfolio/planfolio/internal/adapter/engine"
	httpAdapter "github.com/planfolio/planfolio/internal/adapter/http"
	"github.com/planfolio/planfolio/internal/adapter/http/handler"
	redisRepo "github.com/planfolio/planfolio/internal/adapter/repository/redis"
	"github.com/planfolio/planfolio/internal/infrastructure/config"
	"github.com/planfolio/planfolio/internal/infrastructure/id"
	"github.com/planfolio/planfolio/internal/infrastructure/logger"
	"github.com/planfolio/planfolio/internal/infrastructure/metrics"
	"github.com/planfolio/planfolio/internal/infrastructure/redis"
	"github.com/planfolio/planfolio/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	rootLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = rootLogger

	ctx := context.Background()

	// Simulation engine client
	engineClient := engine.NewClient(cfg.EngineURL, cfg.EngineTimeout, logger.ForComponent(rootLogger, "engine"))

	// Probe the engine in the background so startup is not blocked by a slow
	// or late-starting engine.
	go func() {
		if err := engineClient.WaitReady(ctx); err != nil {
			rootLogger.Warn().Err(err).Msg("simulation engine not reachable")
			return
		}
		rootLogger.Info().Str("url", cfg.EngineURL).Msg("simulation engine ready")
	}()

	// Optional Redis-backed result cache
	redisClient := connectRedis(ctx, cfg.RedisURL, rootLogger)
	var cache usecase.ResultCache
	if redisClient != nil {
		cache = redisRepo.NewResultCache(redisClient)
		defer redisClient.Close()
	}

	appMetrics := metrics.New(prometheus.DefaultRegisterer)

	planner := usecase.NewPlannerUseCase(usecase.PlannerConfig{
		IDGen:    id.NewULIDGenerator(),
		Engine:   engineClient,
		Cache:    cache,
		CacheTTL: cfg.ResultCacheTTL,
		Logger:   logger.ForComponent(rootLogger, "planner"),
		Metrics:  appMetrics,
	})

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		PlanHandler:       handler.NewPlanHandler(planner),
		SimulationHandler: handler.NewSimulationHandler(planner),
		HealthHandler:     handler.NewHealthHandler(engineClient, redisClient),
		Logger:            logger.ForComponent(rootLogger, "http"),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		rootLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			rootLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	rootLogger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		rootLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	rootLogger.Info().Msg("server stopped")
}

// connectRedis connects to Redis when a URL is configured. The result cache
// is optional, so a connection failure downgrades to running without it.
func connectRedis(ctx context.Context, redisURL string, logger zerolog.Logger) *redislib.Client {
	if redisURL == "" {
		return nil
	}

	client, err := redis.NewClient(ctx, redisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, result cache disabled")
		return nil
	}

	logger.Info().Msg("connected to redis")
	return client
}
