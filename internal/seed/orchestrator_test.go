package seed

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirepipe/hirepipe/internal/config"
	"github.com/hirepipe/hirepipe/internal/database"
	"github.com/hirepipe/hirepipe/internal/models"
	"github.com/hirepipe/hirepipe/internal/repository"
	"github.com/hirepipe/hirepipe/internal/testhelpers"
)

type fixture struct {
	db           *database.DB
	orchestrator *Orchestrator
	jobs         *repository.JobRepository
	candidates   *repository.CandidateRepository
	assessments  *repository.AssessmentRepository
	notes        *repository.NoteRepository
	timeline     *repository.TimelineRepository
	admin        *repository.AdminRepository
}

func newFixture(t *testing.T, cfg config.SeedConfig) *fixture {
	t.Helper()
	db := testhelpers.NewTestDB(t)
	log := testhelpers.NewTestLogger()

	f := &fixture{
		db:          db,
		jobs:        repository.NewJobRepository(db.DB(), log),
		candidates:  repository.NewCandidateRepository(db.DB(), log),
		assessments: repository.NewAssessmentRepository(db.DB(), log),
		notes:       repository.NewNoteRepository(db.DB(), log),
		timeline:    repository.NewTimelineRepository(db.DB(), log),
		admin:       repository.NewAdminRepository(db.DB(), log),
	}
	f.orchestrator = NewOrchestrator(
		f.jobs, f.candidates, f.assessments, f.notes, f.timeline, f.admin,
		NewGenerator(rand.NewSource(1)), cfg, log,
	)
	return f
}

func smallSeedConfig() config.SeedConfig {
	return config.SeedConfig{
		TargetJobs:        10,
		TargetCandidates:  50,
		TargetAssessments: 3,
		ChunkSize:         20,
	}
}

func TestOrchestrator_EnsureSeed_EmptyStore(t *testing.T) {
	f := newFixture(t, smallSeedConfig())
	ctx := context.Background()

	assert.True(t, f.orchestrator.IsEmpty(ctx))

	f.orchestrator.EnsureSeed(ctx)

	stats, err := f.admin.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Jobs)
	assert.Equal(t, 50, stats.Candidates)
	assert.Equal(t, 3, stats.Assessments)
	assert.Greater(t, stats.Timeline, 0)

	assert.False(t, f.orchestrator.IsEmpty(ctx))
}

func TestOrchestrator_EnsureSeed_TopsUpOnly(t *testing.T) {
	f := newFixture(t, smallSeedConfig())
	ctx := context.Background()

	existing := &models.Job{Title: "Existing", Slug: "existing", Status: models.JobStatusActive, Order: 0}
	require.NoError(t, f.jobs.Create(ctx, existing))

	f.orchestrator.EnsureSeed(ctx)

	count, err := f.jobs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, count)

	kept, err := f.jobs.GetByID(ctx, existing.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Equal(t, "Existing", kept.Title)

	// a second run adds nothing
	f.orchestrator.EnsureSeed(ctx)
	count, err = f.jobs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, count)
}

func TestOrchestrator_EnsureSeed_CandidateSeedingDisabled(t *testing.T) {
	cfg := smallSeedConfig()
	disabled := false
	cfg.AutoSeedCandidates = &disabled
	f := newFixture(t, cfg)
	ctx := context.Background()

	f.orchestrator.EnsureSeed(ctx)

	stats, err := f.admin.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Jobs)
	assert.Equal(t, 0, stats.Candidates)
}

func TestOrchestrator_BackfillTimelines(t *testing.T) {
	f := newFixture(t, smallSeedConfig())
	ctx := context.Background()

	require.NoError(t, f.candidates.Create(ctx, &models.Candidate{Name: "A", Stage: models.StageApplied}))

	notes, events, err := f.orchestrator.BackfillTimelines(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, events)
	assert.Equal(t, 0, notes)

	// without force a populated timeline is left alone
	notes, events, err = f.orchestrator.BackfillTimelines(ctx, false)
	require.NoError(t, err)
	assert.Zero(t, notes)
	assert.Zero(t, events)

	// force rebuilds on top
	_, events, err = f.orchestrator.BackfillTimelines(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, events)

	count, err := f.timeline.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestOrchestrator_Reseed(t *testing.T) {
	f := newFixture(t, smallSeedConfig())
	ctx := context.Background()

	stale := &models.Job{Title: "Stale", Slug: "stale", Status: models.JobStatusActive}
	require.NoError(t, f.jobs.Create(ctx, stale))

	require.NoError(t, f.orchestrator.Reseed(ctx))

	gone, err := f.jobs.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	stats, err := f.admin.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Jobs)
	assert.Equal(t, 50, stats.Candidates)
	assert.Equal(t, 3, stats.Assessments)
	assert.Greater(t, stats.Timeline, 0)
}
