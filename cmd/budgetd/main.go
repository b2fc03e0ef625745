package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"budget/internal/amqp"
	"budget/internal/budget"
	"budget/internal/config"
	apphttp "budget/internal/http"
	applog "budget/internal/log"
	"budget/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	var blobs storage.BlobStore
	switch cfg.DataBackend {
	case "memory":
		blobs = storage.NewMemoryStore()
		logger.Info("Initialized memory backend", "backend", cfg.DataBackend)
	default:
		sqliteStore, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite store", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		blobs = sqliteStore
		logger.Info("Initialized SQLite backend", "backend", cfg.DataBackend, "path", cfg.SQLiteDBPath)
	}
	defer blobs.Close()

	store := budget.New()
	if data, err := blobs.Load(context.Background(), cfg.StateKey); err == nil {
		if err := store.Restore(data); err != nil {
			logger.Warn("Persisted state was unreadable, starting from defaults",
				"error", err, "state_key", cfg.StateKey)
		} else {
			logger.Info("Restored persisted state", "state_key", cfg.StateKey)
		}
	} else if errors.Is(err, storage.ErrNoState) {
		logger.Info("No persisted state, starting from defaults", "state_key", cfg.StateKey)
	} else {
		logger.Error("Failed to load persisted state", "error", err, "state_key", cfg.StateKey)
		os.Exit(1)
	}

	// Plan sync events are optional: without AMQP the API still works,
	// committed plans just aren't mirrored to the sheet.
	var opts []apphttp.ServerOption
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		opts = append(opts, apphttp.WithPlanPublisher(amqpClient))
		logger.Info("AMQP plan sync enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	srv := apphttp.NewServer(":"+cfg.Port, store, blobs, cfg.StateKey, opts...)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting budget server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
