package bootstrap

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/hirepipe/hirepipe/internal/config"
	"github.com/hirepipe/hirepipe/internal/database"
	"github.com/hirepipe/hirepipe/internal/logger"
	"github.com/hirepipe/hirepipe/internal/repository"
	"github.com/hirepipe/hirepipe/internal/seed"
)

// SetupSeeding builds the orchestrator and tops the store up to the
// configured targets. Seeding is best-effort: a partially seeded store
// never blocks startup.
func SetupSeeding(cfg *config.Config, db *database.DB, log logger.Logger) *seed.Orchestrator {
	orchestrator := seed.NewOrchestrator(
		repository.NewJobRepository(db.DB(), log),
		repository.NewCandidateRepository(db.DB(), log),
		repository.NewAssessmentRepository(db.DB(), log),
		repository.NewNoteRepository(db.DB(), log),
		repository.NewTimelineRepository(db.DB(), log),
		repository.NewAdminRepository(db.DB(), log),
		seed.NewGenerator(nil),
		cfg.Seed,
		log,
	)

	orchestrator.EnsureSeed(context.Background())
	return orchestrator
}

// StartTopupSchedule runs EnsureSeed on the configured cron schedule.
// Returns nil when no schedule is set; the caller stops the returned cron
// on shutdown.
func StartTopupSchedule(cfg *config.Config, orchestrator *seed.Orchestrator, log logger.Logger) (*cron.Cron, error) {
	if cfg.Seed.TopupSchedule == "" {
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(cfg.Seed.TopupSchedule, func() {
		log.Info("Scheduled seed top-up")
		orchestrator.EnsureSeed(context.Background())
	})
	if err != nil {
		return nil, fmt.Errorf("invalid seed.topup_schedule: %w", err)
	}

	c.Start()
	log.Info("Seed top-up schedule started", logger.String("schedule", cfg.Seed.TopupSchedule))
	return c, nil
}
