package bootstrap

import (
	"fmt"

	"github.com/hirepipe/hirepipe/internal/config"
	"github.com/hirepipe/hirepipe/internal/database"
	"github.com/hirepipe/hirepipe/internal/logger"
)

// SetupDatabase opens the embedded store and runs migrations.
func SetupDatabase(cfg *config.Config, log logger.Logger) (*database.DB, error) {
	db, err := database.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return db, nil
}
