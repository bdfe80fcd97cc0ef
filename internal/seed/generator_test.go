package seed

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirepipe/hirepipe/internal/models"
)

func newTestGenerator() *Generator {
	return NewGenerator(rand.NewSource(42))
}

func TestGenerator_Jobs(t *testing.T) {
	gen := newTestGenerator()
	jobs := gen.Jobs(25, 0)
	require.Len(t, jobs, 25)

	for i, job := range jobs {
		assert.NotEmpty(t, job.ID)
		assert.Contains(t, jobTitles, job.Title)
		assert.Contains(t, companies, job.Company)
		assert.Equal(t, i, job.Order)
		assert.True(t, job.Status == models.JobStatusActive || job.Status == models.JobStatusArchived)
		assert.GreaterOrEqual(t, len(job.Tags), 2)
		assert.LessOrEqual(t, len(job.Tags), 5)
		assert.False(t, job.CreatedAt.IsZero())

		assert.Equal(t, models.Slugify(job.Slug), job.Slug, "slug is already normalized")
	}
}

func TestGenerator_Jobs_StartOrder(t *testing.T) {
	gen := newTestGenerator()
	jobs := gen.Jobs(3, 10)
	require.Len(t, jobs, 3)
	assert.Equal(t, 10, jobs[0].Order)
	assert.Equal(t, 12, jobs[2].Order)
}

func TestGenerator_Candidates(t *testing.T) {
	gen := newTestGenerator()
	jobs := gen.Jobs(3, 0)
	candidates := gen.Candidates(jobs, 10)
	require.Len(t, candidates, 10)

	for i, c := range candidates {
		job := jobs[i%len(jobs)]
		assert.Equal(t, job.ID, c.JobID)
		assert.Equal(t, job.Company, c.Company)
		assert.Equal(t, job.Title, c.JobTitle)
		assert.True(t, c.Stage.Valid())
		assert.Contains(t, c.Email, "@")
		assert.True(t, strings.HasPrefix(c.Phone, "+1-"))
	}
}

func TestGenerator_Candidates_NoJobs(t *testing.T) {
	gen := newTestGenerator()
	candidates := gen.Candidates(nil, 5)
	require.Len(t, candidates, 5)
	for _, c := range candidates {
		assert.Empty(t, c.JobID)
		assert.Empty(t, c.Company)
		assert.Empty(t, c.JobTitle)
	}
}

func TestGenerator_Assessments(t *testing.T) {
	gen := newTestGenerator()
	jobs := gen.Jobs(25, 0)
	assessments := gen.Assessments(jobs)

	active := 0
	for _, j := range jobs {
		if j.Status == models.JobStatusActive {
			active++
		}
	}
	wantCount := active
	if wantCount > maxAssessedJobs {
		wantCount = maxAssessedJobs
	}
	require.Len(t, assessments, wantCount)

	for _, a := range assessments {
		assert.NotEmpty(t, a.JobID)
		assert.Contains(t, a.Title, "Assessment - ")
		require.Len(t, a.Sections, 3)
		assert.Equal(t, "Technical Skills", a.Sections[0].Title)
		assert.Equal(t, "Experience & Background", a.Sections[1].Title)
		assert.Equal(t, "Cultural Fit", a.Sections[2].Title)

		for _, section := range a.Sections {
			assert.GreaterOrEqual(t, len(section.Questions), 3)
			assert.LessOrEqual(t, len(section.Questions), 5)
			for _, q := range section.Questions {
				assert.Contains(t, answerableTypes, q.Type)
				require.NotNil(t, q.Validation)
				switch q.Type {
				case models.QuestionNumeric:
					require.NotNil(t, q.Validation.Min)
					require.NotNil(t, q.Validation.Max)
					assert.Equal(t, 0, *q.Validation.Min)
					assert.Equal(t, 10, *q.Validation.Max)
				case models.QuestionShortText:
					assert.Equal(t, 10, q.Validation.MinLength)
					assert.Equal(t, 100, q.Validation.MaxLength)
				case models.QuestionLongText:
					assert.Equal(t, 50, q.Validation.MinLength)
					assert.Equal(t, 1000, q.Validation.MaxLength)
				case models.QuestionSingleChoice, models.QuestionMultiChoice:
					assert.Len(t, q.Options, 4)
				}
				assert.True(t, strings.HasPrefix(q.HelpText, "Please provide detailed information about "))
			}
		}
	}
}

func TestGenerator_NotesAndTimeline(t *testing.T) {
	gen := newTestGenerator()
	jobs := gen.Jobs(5, 0)
	candidates := gen.Candidates(jobs, 100)

	notes, timeline := gen.NotesAndTimeline(candidates)

	// every candidate gets at least an application event
	byCandidate := make(map[string]int)
	for _, e := range timeline {
		byCandidate[e.CandidateID]++
	}
	assert.Len(t, byCandidate, 100)

	// the plain 70% get exactly one event carrying their current stage
	for _, c := range candidates[30:] {
		assert.Equal(t, 1, byCandidate[c.ID])
	}

	// events come back sorted ascending
	for i := 1; i < len(timeline); i++ {
		assert.False(t, timeline[i].Timestamp.Time().Before(timeline[i-1].Timestamp.Time()))
	}

	for _, n := range notes {
		assert.NotEmpty(t, n.CandidateID)
		assert.NotEmpty(t, n.Content)
		assert.NotEmpty(t, n.CreatedBy)
	}

	// stage_change metadata always carries a statusNumber for its stage
	for _, e := range timeline {
		if e.Type != models.EventStageChange {
			continue
		}
		meta, ok := e.Metadata.(models.StageChangeMeta)
		require.True(t, ok)
		assert.Equal(t, models.StatusNumber(meta.ToStage), meta.StatusNumber)
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	a := NewGenerator(rand.NewSource(7))
	b := NewGenerator(rand.NewSource(7))

	jobsA := a.Jobs(10, 0)
	jobsB := b.Jobs(10, 0)
	for i := range jobsA {
		assert.Equal(t, jobsA[i].Title, jobsB[i].Title)
		assert.Equal(t, jobsA[i].Company, jobsB[i].Company)
		assert.Equal(t, jobsA[i].Status, jobsB[i].Status)
		assert.Equal(t, jobsA[i].Tags, jobsB[i].Tags)
	}
}
