// Package bootstrap handles application initialization and lifecycle
// management for the hirepipe service.
package bootstrap

import (
	"fmt"

	"github.com/hirepipe/hirepipe/internal/logger"
)

const version = "dev"

// Start initializes and runs the hirepipe application.
func Start() error {
	// Phase 1: Load config and create logger
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := CreateLogger(cfg, version)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Phase 2: Open the store
	db, err := SetupDatabase(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("Failed to close store", logger.Error(closeErr))
		}
	}()

	// Phase 3: Top the store up to the seed targets (best-effort)
	orchestrator := SetupSeeding(cfg, db, log)

	topup, err := StartTopupSchedule(cfg, orchestrator, log)
	if err != nil {
		return err
	}
	if topup != nil {
		defer topup.Stop()
	}

	// Phase 4: Setup event publisher (optional)
	publisher := SetupEventPublisher(cfg, log)

	// Phase 5: Setup and run HTTP server
	server := SetupHTTPServer(cfg, db, orchestrator, publisher, log)

	if runErr := server.Run(); runErr != nil {
		log.Error("Server error", logger.Error(runErr))
		return fmt.Errorf("server error: %w", runErr)
	}

	log.Info("Server exited")
	return nil
}
