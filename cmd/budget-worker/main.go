package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"budget/internal/amqp"
	"budget/internal/config"
	applog "budget/internal/log"
	"budget/internal/sheets"
	gsheet "budget/internal/sheets/google"
	memsheet "budget/internal/sheets/memory"
	"budget/internal/storage"
	"budget/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentWorker)
	applog.SetDefault(logger)

	logger.Info("Starting budget-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	blobs, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer blobs.Close()

	var planWriter sheets.PlanWriter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		planWriter = client
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		planWriter = memsheet.New()
		logger.Info("Google Sheets disabled - recording plans in memory only")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	syncWorker := worker.NewSyncWorker(blobs, cfg.StateKey, planWriter)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumePlanSync(ctx, func(msg *amqp.PlanSyncMessage) error {
			return syncWorker.HandlePlanSync(ctx, msg)
		})
	})

	// Periodic resync catches plans committed while the worker was down.
	g.Go(func() error {
		ticker := time.NewTicker(cfg.SyncInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				n, err := syncWorker.ResyncAll(ctx)
				if err != nil {
					logger.Error("Periodic resync failed", "error", err)
					continue
				}
				if n > 0 {
					logger.Info("Periodic resync completed", "plans", n)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
