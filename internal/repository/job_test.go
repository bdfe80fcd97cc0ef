package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirepipe/hirepipe/internal/models"
	"github.com/hirepipe/hirepipe/internal/testhelpers"
)

func newJobRepo(t *testing.T) *JobRepository {
	t.Helper()
	db := testhelpers.NewTestDB(t)
	return NewJobRepository(db.DB(), testhelpers.NewTestLogger())
}

func seedJobs(t *testing.T, repo *JobRepository, jobs []models.Job) {
	t.Helper()
	ctx := context.Background()
	for i := range jobs {
		require.NoError(t, repo.Create(ctx, &jobs[i]))
	}
}

func TestJobRepository_CreateAndGet(t *testing.T) {
	repo := newJobRepo(t)
	ctx := context.Background()

	job := &models.Job{
		Title:       "Backend Engineer",
		Slug:        "backend-engineer-stripe-1",
		Description: "Build payment infrastructure.",
		Company:     "Stripe",
		Status:      models.JobStatusActive,
		Tags:        models.StringArray{"Go", "PostgreSQL"},
		Order:       0,
	}
	require.NoError(t, repo.Create(ctx, job))
	assert.NotEmpty(t, job.ID)
	assert.False(t, job.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Backend Engineer", got.Title)
	assert.Equal(t, models.StringArray{"Go", "PostgreSQL"}, got.Tags)

	bySlug, err := repo.GetBySlug(ctx, "backend-engineer-stripe-1")
	require.NoError(t, err)
	require.NotNil(t, bySlug)
	assert.Equal(t, job.ID, bySlug.ID)
}

func TestJobRepository_GetByID_Missing(t *testing.T) {
	repo := newJobRepo(t)

	got, err := repo.GetByID(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestJobRepository_List_Filters(t *testing.T) {
	repo := newJobRepo(t)
	seedJobs(t, repo, []models.Job{
		{Title: "Frontend Engineer", Slug: "fe-1", Company: "Google", Status: models.JobStatusActive, Tags: models.StringArray{"React", "Remote"}, Order: 0},
		{Title: "Backend Engineer", Slug: "be-1", Company: "Stripe", Status: models.JobStatusActive, Tags: models.StringArray{"Go"}, Order: 1},
		{Title: "Data Scientist", Slug: "ds-1", Company: "Netflix", Status: models.JobStatusArchived, Tags: models.StringArray{"Python", "Remote"}, Order: 2},
	})
	ctx := context.Background()

	tests := []struct {
		name      string
		filter    JobListFilter
		wantSlugs []string
		wantTotal int
	}{
		{
			name:      "no filter returns all by order",
			filter:    JobListFilter{},
			wantSlugs: []string{"fe-1", "be-1", "ds-1"},
			wantTotal: 3,
		},
		{
			name:      "search matches title case-insensitively",
			filter:    JobListFilter{Search: "backend"},
			wantSlugs: []string{"be-1"},
			wantTotal: 1,
		},
		{
			name:      "search matches company",
			filter:    JobListFilter{Search: "netflix"},
			wantSlugs: []string{"ds-1"},
			wantTotal: 1,
		},
		{
			name:      "search matches tags",
			filter:    JobListFilter{Search: "remote"},
			wantSlugs: []string{"fe-1", "ds-1"},
			wantTotal: 2,
		},
		{
			name:      "status filter",
			filter:    JobListFilter{Status: "archived"},
			wantSlugs: []string{"ds-1"},
			wantTotal: 1,
		},
		{
			name:      "slug filter",
			filter:    JobListFilter{Slug: "be-1"},
			wantSlugs: []string{"be-1"},
			wantTotal: 1,
		},
		{
			name:      "tags must all match",
			filter:    JobListFilter{Tags: []string{"python", "remote"}},
			wantSlugs: []string{"ds-1"},
			wantTotal: 1,
		},
		{
			name:      "title sort",
			filter:    JobListFilter{Sort: "title"},
			wantSlugs: []string{"be-1", "ds-1", "fe-1"},
			wantTotal: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, total, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)

			slugs := make([]string, 0, len(jobs))
			for _, j := range jobs {
				slugs = append(slugs, j.Slug)
			}
			assert.Equal(t, tt.wantSlugs, slugs)
		})
	}
}

func TestJobRepository_List_Pagination(t *testing.T) {
	repo := newJobRepo(t)
	jobs := make([]models.Job, 5)
	for i := range jobs {
		jobs[i] = models.Job{
			Title:  "Engineer",
			Slug:   string(rune('a' + i)),
			Status: models.JobStatusActive,
			Order:  i,
		}
	}
	seedJobs(t, repo, jobs)
	ctx := context.Background()

	page, total, err := repo.List(ctx, JobListFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "c", page[0].Slug)
	assert.Equal(t, "d", page[1].Slug)

	empty, total, err := repo.List(ctx, JobListFilter{Page: 9, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Empty(t, empty)
}

func TestJobRepository_Update(t *testing.T) {
	repo := newJobRepo(t)
	ctx := context.Background()

	job := &models.Job{Title: "QA Engineer", Slug: "qa-1", Status: models.JobStatusActive}
	require.NoError(t, repo.Create(ctx, job))
	created := job.UpdatedAt

	job.Status = models.JobStatusArchived
	require.NoError(t, repo.Update(ctx, job))
	assert.False(t, job.UpdatedAt.Time().Before(created.Time()))

	got, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusArchived, got.Status)

	missing := &models.Job{ID: "no-such-id", Title: "x", Slug: "x", Status: models.JobStatusActive}
	assert.ErrorIs(t, repo.Update(ctx, missing), ErrNotFound)
}

func TestJobRepository_SaveOrders(t *testing.T) {
	repo := newJobRepo(t)
	seedJobs(t, repo, []models.Job{
		{Title: "A", Slug: "a", Status: models.JobStatusActive, Order: 0},
		{Title: "B", Slug: "b", Status: models.JobStatusActive, Order: 1},
		{Title: "C", Slug: "c", Status: models.JobStatusActive, Order: 2},
	})
	ctx := context.Background()

	all, err := repo.ListByOrder(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	// move first job to the end
	all[0].Order = 2
	all[1].Order = 0
	all[2].Order = 1
	require.NoError(t, repo.SaveOrders(ctx, all))

	reordered, err := repo.ListByOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, []string{reordered[0].Slug, reordered[1].Slug, reordered[2].Slug})
}

func TestJobRepository_BulkInsert(t *testing.T) {
	repo := newJobRepo(t)
	ctx := context.Background()

	now := models.NowMillis()
	batch := []models.Job{
		{ID: "j1", Title: "A", Slug: "a", Status: models.JobStatusActive, CreatedAt: now, UpdatedAt: now},
		{ID: "j2", Title: "B", Slug: "b", Status: models.JobStatusArchived, CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, repo.BulkInsert(ctx, batch))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	active, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, active)
}
