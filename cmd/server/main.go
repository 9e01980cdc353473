package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"worldcup/internal/api"
	"worldcup/internal/cache"
	"worldcup/internal/config"
	"worldcup/internal/logging"
	"worldcup/internal/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logging.L().Error().Err(err).Msg("config load failed")
		os.Exit(1)
	}
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	// 1. Initialize Echo (Starts Instantly)
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = api.JSONSerializer{}
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(api.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	if cfg.RateLimitRPS > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimitRPS))))
	}

	var projections api.ProjectionCache
	if cfg.RedisURL != "" {
		client, err := cache.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error().Err(err).Msg("redis connection failed")
			os.Exit(1)
		}
		defer client.Close()
		projections = cache.NewRedisCache(client, cfg.CacheTTL)
		logger.Info().Dur("ttl", cfg.CacheTTL).Msg("projection cache enabled")
	}

	// 2. Initialize Handler with NIL data
	// The API is "live" but answers 503 until the results are loaded
	h := api.NewHandler(nil, projections, logger)
	h.RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	g, gctx := errgroup.WithContext(ctx)

	// 3. Load in Background; a failure takes the whole process down
	g.Go(func() error {
		logger.Info().Str("source", cfg.DataSource).Msg("loading results")
		t0 := time.Now()

		ds, err := loadDataset(gctx, cfg)
		if err != nil {
			return err
		}
		h.SetData(ds)

		logger.Info().Dur("elapsed", time.Since(t0)).Msg("results loaded, API is fully ready")
		return nil
	})

	// 4. Start Server
	g.Go(func() error {
		logger.Info().Str("addr", cfg.Addr).Msg("server listening")
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
