package bootstrap

import (
	"github.com/hirepipe/hirepipe/internal/api"
	"github.com/hirepipe/hirepipe/internal/config"
	"github.com/hirepipe/hirepipe/internal/database"
	"github.com/hirepipe/hirepipe/internal/events"
	"github.com/hirepipe/hirepipe/internal/handlers"
	"github.com/hirepipe/hirepipe/internal/logger"
	"github.com/hirepipe/hirepipe/internal/metrics"
	"github.com/hirepipe/hirepipe/internal/repository"
	"github.com/hirepipe/hirepipe/internal/seed"
	"github.com/hirepipe/hirepipe/internal/simnet"
)

// SetupHTTPServer wires repositories, handlers, and middleware into a
// runnable server.
func SetupHTTPServer(
	cfg *config.Config,
	db *database.DB,
	orchestrator *seed.Orchestrator,
	publisher *events.Publisher,
	log logger.Logger,
) *api.Server {
	injector := simnet.New(cfg.Simnet, nil)
	m := metrics.New()

	jobs := repository.NewJobRepository(db.DB(), log)
	candidates := repository.NewCandidateRepository(db.DB(), log)
	assessments := repository.NewAssessmentRepository(db.DB(), log)
	submissions := repository.NewSubmissionRepository(db.DB(), log)
	notes := repository.NewNoteRepository(db.DB(), log)
	timeline := repository.NewTimelineRepository(db.DB(), log)
	admin := repository.NewAdminRepository(db.DB(), log)

	router := api.NewRouter(api.Handlers{
		Jobs:        handlers.NewJobHandler(jobs, injector, m, publisher, log),
		Candidates:  handlers.NewCandidateHandler(candidates, notes, timeline, injector, m, publisher, log),
		Assessments: handlers.NewAssessmentHandler(assessments, submissions, injector, m, publisher, log),
		Admin:       handlers.NewAdminHandler(admin, orchestrator, m, publisher, log),
	}, injector, m, cfg.Server.CORSOrigins, log)

	return api.NewServer(cfg.Server, router, log)
}
