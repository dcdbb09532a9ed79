package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gyaneshwarpardhi/costar/internal/api"
	"github.com/gyaneshwarpardhi/costar/internal/config"
	"github.com/gyaneshwarpardhi/costar/internal/engine"
	"github.com/gyaneshwarpardhi/costar/internal/logging"
	"github.com/gyaneshwarpardhi/costar/internal/query"
)

func main() {
	_ = godotenv.Load()

	addr := flag.String("addr", envOr("COSTAR_ADDR", ":8080"), "HTTP listen address")
	cfgPath := flag.String("config", envOr("COSTAR_CONFIG", "configs/costar.yaml"), "Path to YAML config")
	flag.Parse()

	// ── Load config ──────────────────────────────────────────────────────────
	loader, err := config.NewLoader(*cfgPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	cfg := loader.Config()
	if err := config.Validate(cfg); err != nil {
		slog.Error("config validation failed", "err", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)
	slog.SetDefault(logger)
	slog.Info("config loaded", "path", loader.Path(), "version", cfg.Version)

	// ── Engine ────────────────────────────────────────────────────────────────
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng, err := engine.New(ctx, query.DefaultRegistry(), cfg.Engine, logger)
	if err != nil {
		slog.Error("failed to create engine", "err", err)
		os.Exit(1)
	}

	// ── Build initial snapshot ────────────────────────────────────────────────
	if _, err := eng.LoadDataset(cfg.Dataset); err != nil {
		slog.Error("failed to load dataset", "err", err)
		os.Exit(1)
	}

	// ── Hot-reload watcher ────────────────────────────────────────────────────
	loader.OnChange(func(newCfg *config.AppConfig) {
		if err := config.Validate(newCfg); err != nil {
			slog.Warn("hot-reload skipped: config invalid", "err", err)
			return
		}
		snap, err := eng.LoadDataset(newCfg.Dataset)
		if err != nil {
			slog.Warn("hot-reload skipped: dataset load failed", "err", err)
			return
		}
		slog.Info("dataset hot-reloaded", "generation", snap.Generation, "nodes", snap.Graph.NodeCount())
	})
	stopWatch, err := loader.Watch()
	if err != nil {
		slog.Warn("config watcher unavailable (hot-reload disabled)", "err", err)
	} else {
		defer stopWatch()
	}

	// ── HTTP server ───────────────────────────────────────────────────────────
	handler := api.New(eng, loader)
	timeout := time.Duration(cfg.Engine.QueryTimeoutMs) * time.Millisecond
	srv := &http.Server{
		Addr:         *addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: timeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down…")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutCancel()
	_ = srv.Shutdown(shutCtx)
	cancel() // stop query workers
	eng.Shutdown()
	slog.Info("goodbye")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
