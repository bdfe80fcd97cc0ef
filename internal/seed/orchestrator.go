package seed

import (
	"context"
	"fmt"

	"github.com/hirepipe/hirepipe/internal/config"
	"github.com/hirepipe/hirepipe/internal/logger"
	"github.com/hirepipe/hirepipe/internal/models"
	"github.com/hirepipe/hirepipe/internal/repository"
)

// Orchestrator tops the store up to the configured record targets. EnsureSeed
// is best-effort and never fails the caller; Reseed wipes and rebuilds and
// does report errors.
type Orchestrator struct {
	jobs        *repository.JobRepository
	candidates  *repository.CandidateRepository
	assessments *repository.AssessmentRepository
	notes       *repository.NoteRepository
	timeline    *repository.TimelineRepository
	admin       *repository.AdminRepository
	gen         *Generator
	cfg         config.SeedConfig
	logger      logger.Logger
}

func NewOrchestrator(
	jobs *repository.JobRepository,
	candidates *repository.CandidateRepository,
	assessments *repository.AssessmentRepository,
	notes *repository.NoteRepository,
	timeline *repository.TimelineRepository,
	admin *repository.AdminRepository,
	gen *Generator,
	cfg config.SeedConfig,
	log logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		jobs:        jobs,
		candidates:  candidates,
		assessments: assessments,
		notes:       notes,
		timeline:    timeline,
		admin:       admin,
		gen:         gen,
		cfg:         cfg,
		logger:      log,
	}
}

// IsEmpty reports whether the store holds no jobs. An unreadable store counts
// as empty so startup still attempts a seed.
func (o *Orchestrator) IsEmpty(ctx context.Context) bool {
	count, err := o.jobs.Count(ctx)
	if err != nil {
		o.logger.Error("failed to check store contents", logger.Error(err))
		return true
	}
	return count == 0
}

// EnsureSeed tops every collection up to its target. Failures are logged and
// skipped; a partially seeded store is preferable to a crashed startup.
func (o *Orchestrator) EnsureSeed(ctx context.Context) {
	o.logger.Info("Ensuring seed data",
		logger.Int("target_jobs", o.cfg.TargetJobs),
		logger.Int("target_candidates", o.cfg.TargetCandidates),
		logger.Int("target_assessments", o.cfg.TargetAssessments),
	)

	o.ensureJobs(ctx)

	jobs, err := o.jobs.ListByOrder(ctx)
	if err != nil {
		o.logger.Error("failed to list jobs for seeding", logger.Error(err))
		jobs = nil
	}

	var added []models.Candidate
	if o.cfg.CandidateSeedingEnabled() {
		added = o.ensureCandidates(ctx, jobs)
	} else {
		o.logger.Info("Candidate seeding disabled, skipping")
	}

	o.ensureAssessments(ctx, jobs)

	if len(added) > 0 {
		notes, events := o.gen.NotesAndTimeline(added)
		o.insertHistory(ctx, notes, events)
	}

	if count, countErr := o.timeline.Count(ctx); countErr == nil && count == 0 {
		if _, _, backfillErr := o.BackfillTimelines(ctx, true); backfillErr != nil {
			o.logger.Error("timeline backfill failed", logger.Error(backfillErr))
		}
	}
}

func (o *Orchestrator) ensureJobs(ctx context.Context) {
	existing, err := o.jobs.Count(ctx)
	if err != nil {
		o.logger.Error("failed to count jobs", logger.Error(err))
		return
	}
	if existing >= o.cfg.TargetJobs {
		return
	}

	batch := o.gen.Jobs(o.cfg.TargetJobs-existing, existing)
	if err := o.jobs.BulkInsert(ctx, batch); err != nil {
		o.logger.Error("failed to seed jobs", logger.Error(err))
		return
	}
	o.logger.Info("Seeded jobs", logger.Int("added", len(batch)))
}

func (o *Orchestrator) ensureCandidates(ctx context.Context, jobs []models.Job) []models.Candidate {
	existing, err := o.candidates.Count(ctx)
	if err != nil {
		o.logger.Error("failed to count candidates", logger.Error(err))
		return nil
	}
	if existing >= o.cfg.TargetCandidates {
		return nil
	}

	toCreate := o.cfg.TargetCandidates - existing
	batch := o.gen.Candidates(jobs, toCreate)

	chunkSize := o.cfg.ChunkSize
	if chunkSize < 1 {
		chunkSize = len(batch)
	}

	added := make([]models.Candidate, 0, len(batch))
	for start := 0; start < len(batch); start += chunkSize {
		end := start + chunkSize
		if end > len(batch) {
			end = len(batch)
		}
		chunk := batch[start:end]

		chunkErr := o.candidates.BulkInsert(ctx, chunk)
		if chunkErr == nil {
			added = append(added, chunk...)
			continue
		}
		o.logger.Warn("candidate chunk insert failed, retrying per record",
			logger.Int("chunk_start", start),
			logger.Error(chunkErr),
		)

		// isolate the failing records so the rest of the chunk still lands
		for i := range chunk {
			if err := o.candidates.Create(ctx, &chunk[i]); err != nil {
				o.logger.Error("failed to insert candidate",
					logger.String("candidate_id", chunk[i].ID),
					logger.Error(err),
				)
				continue
			}
			added = append(added, chunk[i])
		}
	}

	o.logger.Info("Seeded candidates",
		logger.Int("added", len(added)),
		logger.Int("requested", toCreate),
	)
	return added
}

func (o *Orchestrator) ensureAssessments(ctx context.Context, jobs []models.Job) {
	existing, err := o.assessments.Count(ctx)
	if err != nil {
		o.logger.Error("failed to count assessments", logger.Error(err))
		return
	}
	if existing >= o.cfg.TargetAssessments {
		return
	}

	generated := o.gen.Assessments(jobs)
	toCreate := o.cfg.TargetAssessments - existing
	if len(generated) > toCreate {
		generated = generated[:toCreate]
	}
	if len(generated) == 0 {
		return
	}

	if err := o.assessments.BulkInsert(ctx, generated); err != nil {
		o.logger.Error("failed to seed assessments", logger.Error(err))
		return
	}
	o.logger.Info("Seeded assessments", logger.Int("added", len(generated)))
}

func (o *Orchestrator) insertHistory(ctx context.Context, notes []models.Note, events []models.TimelineEvent) (int, int) {
	insertedNotes, insertedEvents := 0, 0
	if err := o.notes.BulkInsert(ctx, notes); err != nil {
		o.logger.Error("failed to insert seeded notes", logger.Error(err))
	} else {
		insertedNotes = len(notes)
	}
	if err := o.timeline.BulkInsert(ctx, events); err != nil {
		o.logger.Error("failed to insert seeded timeline", logger.Error(err))
	} else {
		insertedEvents = len(events)
	}
	return insertedNotes, insertedEvents
}

// BackfillTimelines rebuilds notes and timeline history for every candidate.
// Without force it is a no-op when any timeline events already exist.
func (o *Orchestrator) BackfillTimelines(ctx context.Context, force bool) (addedNotes, addedEvents int, err error) {
	if !force {
		count, countErr := o.timeline.Count(ctx)
		if countErr != nil {
			return 0, 0, countErr
		}
		if count > 0 {
			return 0, 0, nil
		}
	}

	candidates, err := o.candidates.ListAll(ctx)
	if err != nil {
		return 0, 0, err
	}
	if len(candidates) == 0 {
		return 0, 0, nil
	}

	o.logger.Info("Backfilling candidate timelines", logger.Int("candidates", len(candidates)))
	notes, events := o.gen.NotesAndTimeline(candidates)
	addedNotes, addedEvents = o.insertHistory(ctx, notes, events)
	return addedNotes, addedEvents, nil
}

// Reseed wipes every collection and seeds from scratch. Unlike EnsureSeed,
// failures propagate so the admin caller can surface them.
func (o *Orchestrator) Reseed(ctx context.Context) error {
	if err := o.admin.ClearAll(ctx); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}

	jobs := o.gen.Jobs(o.cfg.TargetJobs, 0)
	if err := o.jobs.BulkInsert(ctx, jobs); err != nil {
		return fmt.Errorf("seed jobs: %w", err)
	}

	var candidates []models.Candidate
	if o.cfg.CandidateSeedingEnabled() {
		candidates = o.gen.Candidates(jobs, o.cfg.TargetCandidates)
		if err := o.candidates.BulkInsert(ctx, candidates); err != nil {
			return fmt.Errorf("seed candidates: %w", err)
		}
	}

	assessments := o.gen.Assessments(jobs)
	if len(assessments) > o.cfg.TargetAssessments {
		assessments = assessments[:o.cfg.TargetAssessments]
	}
	if err := o.assessments.BulkInsert(ctx, assessments); err != nil {
		return fmt.Errorf("seed assessments: %w", err)
	}

	if len(candidates) > 0 {
		notes, events := o.gen.NotesAndTimeline(candidates)
		if err := o.notes.BulkInsert(ctx, notes); err != nil {
			return fmt.Errorf("seed notes: %w", err)
		}
		if err := o.timeline.BulkInsert(ctx, events); err != nil {
			return fmt.Errorf("seed timeline: %w", err)
		}
	}

	o.logger.Info("Store reseeded",
		logger.Int("jobs", len(jobs)),
		logger.Int("candidates", len(candidates)),
		logger.Int("assessments", len(assessments)),
	)
	return nil
}
