package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"

	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/database"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/logging"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/notify"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/server"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/storage"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// ERROR+ records also go to system_logs
	dbLogHandler := logging.NewDBHandler(db, 5*time.Second)
	logging.WithDatabase(dbLogHandler)

	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cfg.LogRetentionDays, cleanupDone)

	// Registration notifications
	var notifier notify.Notifier = notify.NewLogNotifier()
	var amqpNotifier *notify.AMQPNotifier
	if cfg.AMQPURL != "" {
		amqpNotifier, err = notify.NewAMQPNotifier(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			slog.Error("amqp connection failed, falling back to log notifier", "error", err)
		} else {
			notifier = amqpNotifier
		}
	}
	dispatcher := notify.NewDispatcher(notifier, cfg.NotifyWorkers, cfg.NotifyQueueSize)

	deps := server.Deps{
		DB:       db,
		Notifier: dispatcher,
	}

	// Image storage
	if cfg.S3Enabled() {
		store, err := storage.NewS3ImageStore(context.Background(), cfg)
		if err != nil {
			slog.Error("s3 setup failed", "error", err)
			os.Exit(1)
		}
		deps.Images = store
	} else {
		slog.Warn("S3_BUCKET not set, uploads are validated but not stored")
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			deps.Middleware = append(deps.Middleware, sentryfiber.New(sentryfiber.Options{
				Repanic:         true,
				WaitForDelivery: false,
			}))
		}
	}

	app := server.New(cfg, deps)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	shutdown(app)
	dispatcher.Stop()
	if amqpNotifier != nil {
		if err := amqpNotifier.Close(); err != nil {
			slog.Error("amqp close error", "error", err)
		}
	}

	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

func shutdown(app *fiber.App) {
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
}
