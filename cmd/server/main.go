// Command server is the entry point for the forum API.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"forum/internal/cache"
	"forum/internal/config"
	"forum/internal/database"
	"forum/internal/middleware"
	"forum/internal/observability"
	"forum/internal/server"

	"github.com/redis/go-redis/v9"
)

// @title Forum API
// @version 1.0
// @description Community forum API with groups, posts and comments

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	middleware.ConfigureLogger(cfg.Env)

	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName:    "forum-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExport,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSampler,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if status, err := database.SchemaStatus(db); err == nil && database.Pending(status) {
		middleware.Logger.Warn("Database schema incomplete; run cmd/migrate up")
	}

	// Redis backs optional features only; run without it when unreachable.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			middleware.Logger.Warn("Redis unavailable, continuing without cache", slog.String("error", err.Error()))
			redisClient = nil
		}
	}

	srv, err := server.NewServer(cfg, db, redisClient)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutdown := func(ctx context.Context) error {
		middleware.Logger.Info("Shutting down server...")
		if err := srv.Shutdown(ctx); err != nil {
			middleware.Logger.Error("Server shutdown error", slog.String("error", err.Error()))
		}
		return shutdownTracing(ctx)
	}
	if err := serve(srv.Start, shutdown, sigChan, 10*time.Second); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// serve runs start until a signal arrives, then runs shutdown. It returns
// only after shutdown has finished, since start returns as soon as the
// listener closes.
func serve(start func() error, shutdown func(context.Context) error, sigs <-chan os.Signal, timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-sigs

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			middleware.Logger.Error("Shutdown error", slog.String("error", err.Error()))
		}
	}()

	if err := start(); err != nil {
		return err
	}
	<-done
	return nil
}
