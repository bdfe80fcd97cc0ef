package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirepipe/hirepipe/internal/models"
	"github.com/hirepipe/hirepipe/internal/testhelpers"
)

func TestAssessmentRepository_GetByJob(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	repo := NewAssessmentRepository(db.DB(), testhelpers.NewTestLogger())
	ctx := context.Background()

	missing, err := repo.GetByJob(ctx, "job-1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	a := &models.Assessment{
		JobID: "job-1",
		Title: "Backend Engineer Assessment - Stripe",
		Sections: models.SectionList{
			{
				ID:    "s1",
				Title: "Technical Skills",
				Questions: []models.Question{
					{ID: "q1", Type: models.QuestionShortText, Label: "Years of experience"},
				},
			},
		},
	}
	require.NoError(t, repo.Create(ctx, a))
	assert.NotEmpty(t, a.ID)

	got, err := repo.GetByJob(ctx, "job-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, a.ID, got.ID)
	require.Len(t, got.Sections, 1)
	assert.Equal(t, "Technical Skills", got.Sections[0].Title)
	require.Len(t, got.Sections[0].Questions, 1)
	assert.Equal(t, models.QuestionShortText, got.Sections[0].Questions[0].Type)
}

func TestAssessmentRepository_Update(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	repo := NewAssessmentRepository(db.DB(), testhelpers.NewTestLogger())
	ctx := context.Background()

	a := &models.Assessment{JobID: "job-1", Title: "Original"}
	require.NoError(t, repo.Create(ctx, a))
	created := a.UpdatedAt

	a.Title = "Revised"
	require.NoError(t, repo.Update(ctx, a))
	assert.False(t, a.UpdatedAt.Time().Before(created.Time()))

	got, err := repo.GetByJob(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, "Revised", got.Title)

	missing := &models.Assessment{ID: "no-such-id", JobID: "job-1", Title: "x"}
	assert.ErrorIs(t, repo.Update(ctx, missing), ErrNotFound)
}

func TestSubmissionRepository_CreateAndList(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	repo := NewSubmissionRepository(db.DB(), testhelpers.NewTestLogger())
	ctx := context.Background()

	s := &models.Submission{
		AssessmentID: "job-1",
		Responses:    models.ResponseMap(`[{"questionId":"q1","value":"five"}]`),
	}
	require.NoError(t, repo.Create(ctx, s))
	assert.NotEmpty(t, s.ID)
	assert.False(t, s.CreatedAt.IsZero())

	list, err := repo.ListByAssessment(ctx, "job-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.JSONEq(t, `[{"questionId":"q1","value":"five"}]`, string(list[0].Responses))
	assert.Nil(t, list[0].SubmittedAt)
	assert.Nil(t, list[0].CompletedAt)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAdminRepository_CountsAndClearAll(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	log := testhelpers.NewTestLogger()
	ctx := context.Background()

	jobs := NewJobRepository(db.DB(), log)
	candidates := NewCandidateRepository(db.DB(), log)
	notes := NewNoteRepository(db.DB(), log)
	admin := NewAdminRepository(db.DB(), log)

	require.NoError(t, jobs.Create(ctx, &models.Job{Title: "A", Slug: "a", Status: models.JobStatusActive}))
	require.NoError(t, candidates.Create(ctx, &models.Candidate{Name: "B", Stage: models.StageApplied}))
	require.NoError(t, notes.Create(ctx, &models.Note{CandidateID: "c1", Content: "hello"}))

	stats, err := admin.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Jobs)
	assert.Equal(t, 1, stats.Candidates)
	assert.Equal(t, 1, stats.Notes)
	assert.Equal(t, 0, stats.Assessments)

	require.NoError(t, admin.ClearAll(ctx))

	stats, err = admin.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Stats{}, stats)
}
