package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/streamside/panel/internal/config"
	"github.com/streamside/panel/internal/core"
	"github.com/streamside/panel/internal/icons"
	"github.com/streamside/panel/internal/logging"
	"github.com/streamside/panel/internal/notify"
	"github.com/streamside/panel/internal/store"
	"github.com/streamside/panel/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"store", cfg.Store.Path,
		"icons_dir", cfg.Store.IconsDir,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	// A missing store is a fatal configuration error: the panel edits an
	// existing document, it never creates one.
	st := store.New(cfg.Store.Path)
	var doc core.ConfigDocument
	if err := st.Load(&doc); err != nil {
		slog.Error("failed to open config store", "path", cfg.Store.Path, "error", err)
		os.Exit(1)
	}
	slog.Info("config store opened",
		"path", cfg.Store.Path,
		"sites", len(doc.Websites),
		"admins", len(doc.Admins),
	)

	if err := os.MkdirAll(cfg.Store.IconsDir, 0o755); err != nil {
		slog.Error("failed to create icons directory", "dir", cfg.Store.IconsDir, "error", err)
		os.Exit(1)
	}

	notifier := notify.NewWebhook(cfg.Store.WebhookConfigPath)
	if notifier.Enabled() {
		slog.Info("category notifications enabled")
	}

	service := core.NewService(st, icons.NewPipeline(), notifier, cfg.Store.IconsDir)
	server := web.NewServer(service, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
