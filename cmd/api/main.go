package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stackmart/shophub/internal/cache"
	"github.com/stackmart/shophub/internal/config"
	"github.com/stackmart/shophub/internal/db"
	httpx "github.com/stackmart/shophub/internal/http"
	"github.com/stackmart/shophub/internal/observability"
	"log/slog"
)

func main() {
	// .env is optional; real envs set variables directly
	_ = godotenv.Load()

	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if cfg.JWTAccessSecret == "" || cfg.JWTRefreshSecret == "" {
		log.Error("JWT_KEY and JWT_REFRESH_KEY must be set")
		os.Exit(1)
	}

	// tracing is opt-in via OTEL_EXPORTER_ENDPOINT
	if cfg.OTELEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(context.Background(), "shophub", cfg.OTELEndpoint)

		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}

		defer func() {
			ctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			_ = shutdownTracer(ctx)
		}()
	}

	client, err := db.Connect(cfg.MongoURI)

	if err != nil {
		log.Error("mongo connection failed", "err", err)
		os.Exit(1)
	}

	defer func() {
		ctx, cancel := config.WithTimeout(5 * time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	{
		ctx, cancel := config.WithTimeout(5 * time.Second)
		err = db.EnsureIndexes(ctx, client.Database(cfg.MongoDB))
		cancel()

		if err != nil {
			log.Error("index creation failed", "err", err)
			os.Exit(1)
		}
	}

	// shared cache when Redis is configured, per-process otherwise
	var store cache.Store

	if cfg.RedisAddr != "" {
		rc := cache.NewRedis(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, 30*time.Second)

		ctx, cancel := config.WithTimeout(2 * time.Second)
		err = rc.Ping(ctx)
		cancel()

		if err != nil {
			log.Error("redis connection failed", "err", err)
			os.Exit(1)
		}

		defer rc.Close()
		store = rc
	} else {
		store = cache.NewMemory(30 * time.Second)
	}

	prom := observability.NewProm(prometheus.DefaultRegisterer)

	router := httpx.NewRouter(log, cfg, client, store, prom)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)
			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
