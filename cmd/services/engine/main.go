package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spcflow/spcflow/internal/config"
	"github.com/spcflow/spcflow/internal/logging"
	"github.com/spcflow/spcflow/internal/offload"
	"github.com/spcflow/spcflow/internal/orchestrator"
	"github.com/spcflow/spcflow/internal/queue"
	"github.com/spcflow/spcflow/internal/router"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)
	logger.Info("Engine service starting...",
		"version", Version, "commit", GitCommit, "build time", BuildTime)

	// Connect to Queue (configurable backend) for the calculation offload
	logger.Info("Connecting to Queue", "type", cfg.Queue.Type, "url", cfg.Queue.URL)
	queueClient, err := queue.NewQueue(cfg.Queue)
	if err != nil {
		logger.Fatal("Failed to connect to Queue", "error", err)
	}
	defer func() { _ = queueClient.Close() }()
	logger.Info("Queue connection established")

	// The calculator every orchestrator shares: an offload dispatcher when
	// enabled, the plain synchronous path otherwise.
	var calc offload.Calculator = offload.SyncCalculator{}
	if cfg.Offload.Enabled {
		dispatcher := offload.NewDispatcher(logger, queueClient, cfg.Offload)
		if err := dispatcher.Start(); err != nil {
			logger.Fatal("Failed to start offload dispatcher", "error", err)
		}
		defer func() { _ = dispatcher.Close() }()
		calc = dispatcher
		logger.Info("Calculation offload enabled",
			"subject", cfg.Offload.Subject,
			"threshold", cfg.Offload.SizeThreshold,
			"timeout", cfg.Offload.Timeout)

		// Serve offload requests in this process unless a dedicated worker
		// fleet handles the subject.
		if cfg.Offload.Worker {
			worker := offload.NewWorker(logger, queueClient, cfg.Offload.Subject)
			if err := worker.Start(); err != nil {
				logger.Fatal("Failed to start offload worker", "error", err)
			}
			defer func() { _ = worker.Close() }()
			logger.Info("Offload worker started", "subject", cfg.Offload.Subject)
		}
	}

	registry := orchestrator.NewRegistry(logger, calc, cfg.Engine)

	// Log authentication status
	if cfg.Auth.Enabled {
		logger.Info("API key authentication enabled", "num_keys", len(cfg.Auth.APIKeys))
	} else {
		logger.Warn("API key authentication DISABLED - all requests will be allowed")
	}

	// Initialize router
	app := router.New(logger, registry, *cfg)

	// Start server in goroutine
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort)
		logger.Info("Server listening", "address", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with 10 second timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
