package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/portfolio/portfolio-api/internal/config"
	"github.com/portfolio/portfolio-api/internal/pkg/database"
	"github.com/portfolio/portfolio-api/internal/pkg/imaging"
	"github.com/portfolio/portfolio-api/internal/pkg/logger"
	"github.com/portfolio/portfolio-api/internal/pkg/ratelimit"
	"github.com/portfolio/portfolio-api/internal/pkg/upload"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("backend", cfg.StorageBackend).
		Msg("Starting portfolio API")

	ctx := context.Background()

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage backend")
	}
	defer backend.Close()

	processor := imaging.NewProcessor(imaging.Config{
		MaxWidth:  cfg.ImageMaxWidth,
		MaxHeight: cfg.ImageMaxHeight,
		Quality:   cfg.ImageQuality,
	})
	uploads := upload.NewService(backend.blobs, processor, cfg.UploadMaxSize)

	redis, err := database.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	var limiter *ratelimit.Limiter
	if redis != nil {
		limiter = ratelimit.New(ratelimit.NewRedisCounter(redis), "messages", cfg.MessageRateLimit, cfg.MessageRateWindow)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(cfg, backend, uploads, limiter),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	log.Info().Msg("Server exited properly")
}
