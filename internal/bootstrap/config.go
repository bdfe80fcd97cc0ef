package bootstrap

import (
	"flag"
	"fmt"

	"github.com/hirepipe/hirepipe/internal/config"
	"github.com/hirepipe/hirepipe/internal/logger"
)

// LoadConfig loads configuration. Uses the -config flag with the standard
// search path default.
func LoadConfig() (*config.Config, error) {
	configPath := flag.String("config", config.GetConfigPath("config.yml"), "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// CreateLogger creates the service logger from configuration.
func CreateLogger(cfg *config.Config, version string) (logger.Logger, error) {
	log, err := logger.NewLogger(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(
		logger.String("service", "hirepipe"),
		logger.String("version", version),
	), nil
}
