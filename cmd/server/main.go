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

	"github.com/grupolom/cartera/internal/config"
	"github.com/grupolom/cartera/internal/core"
	"github.com/grupolom/cartera/internal/logging"
	"github.com/grupolom/cartera/internal/mail"
	"github.com/grupolom/cartera/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"smtp_host", cfg.SMTP.Host,
		"max_workers", cfg.Dispatch.MaxWorkers,
		"grouping", cfg.Dispatch.Grouping,
		"status_window", cfg.Reconcile.StatusWindow,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)
	if cfg.SMTP.User == "" {
		slog.Warn("no SMTP credentials configured; sends will fail until EMAIL_USER and EMAIL_PASSWORD are set")
	}

	// Wire the SMTP transport and body renderer
	sender := mail.NewSender(mail.Config{
		Host:        cfg.SMTP.Host,
		Port:        cfg.SMTP.Port,
		User:        cfg.SMTP.User,
		Password:    cfg.SMTP.Password,
		FromName:    cfg.SMTP.FromName,
		FromAddress: cfg.SMTP.Sender(),
		Timeout:     cfg.SMTP.Timeout,
	})

	// Create service with config
	service := core.NewService(core.Options{
		StatusWindow: core.StatusWindowPolicy(cfg.Reconcile.StatusWindow),
		Grouping:     core.GroupingPolicy(cfg.Dispatch.Grouping),
		Workers:      cfg.Dispatch.MaxWorkers,
		BatchLimit:   cfg.Dispatch.BatchLimit,
	}, sender, mail.Renderer())

	// Create server with config
	server := web.NewServer(cfg, service, sender, sender.TestMessage)

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

	// Start server
	if err := server.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
