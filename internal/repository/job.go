package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/hirepipe/hirepipe/internal/logger"
	"github.com/hirepipe/hirepipe/internal/models"
)

type JobRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewJobRepository(db *sql.DB, log logger.Logger) *JobRepository {
	return &JobRepository{
		db:     db,
		logger: log,
	}
}

const jobColumns = `id, title, slug, description, company, status, tags, sort_order, created_at, updated_at`

// JobListFilter holds search, filter, sort, and pagination params for List.
type JobListFilter struct {
	Search   string   // case-insensitive substring on title, company, or any tag
	Status   string   // exact match, empty = all
	Slug     string   // exact match, empty = all
	Tags     []string // job must carry every listed tag (case-insensitive)
	Sort     string   // order (default), title, createdAt
	Page     int      // 1-based, default 1
	PageSize int      // default 10
}

func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	now := models.NowMillis()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	if job.UpdatedAt.IsZero() {
		job.UpdatedAt = now
	}

	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		job.ID,
		job.Title,
		job.Slug,
		job.Description,
		job.Company,
		job.Status,
		job.Tags,
		job.Order,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		return storageErr("insert job", err)
	}

	return nil
}

// BulkInsert writes a batch of pre-built jobs in a single transaction.
// Records keep the IDs and timestamps they arrive with.
func (r *JobRepository) BulkInsert(ctx context.Context, jobs []models.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin bulk insert jobs", err)
	}
	defer rollbackOnErr(tx, &err, r.logger)

	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for i := range jobs {
		job := &jobs[i]
		if _, execErr := tx.ExecContext(ctx, query,
			job.ID, job.Title, job.Slug, job.Description, job.Company,
			job.Status, job.Tags, job.Order, job.CreatedAt, job.UpdatedAt,
		); execErr != nil {
			err = storageErr(fmt.Sprintf("bulk insert job %q", job.Slug), execErr)
			return err
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		err = storageErr("commit bulk insert jobs", commitErr)
		return err
	}
	return nil
}

// GetByID returns the job, or nil when no job has that id.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetBySlug returns the job, or nil when no job has that slug.
func (r *JobRepository) GetBySlug(ctx context.Context, slug string) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE slug = $1`
	return r.getOne(ctx, query, slug)
}

func (r *JobRepository) getOne(ctx context.Context, query string, arg any) (*models.Job, error) {
	var job models.Job
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&job.ID,
		&job.Title,
		&job.Slug,
		&job.Description,
		&job.Company,
		&job.Status,
		&job.Tags,
		&job.Order,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("query job", err)
	}
	return &job, nil
}

// List applies search, status, slug, and tag filters, sorts, and paginates.
// The returned total counts matches before pagination. The jobs collection is
// small and the tag-aware search does not map onto SQL cleanly, so filtering
// happens in memory over the full set.
func (r *JobRepository) List(ctx context.Context, filter JobListFilter) ([]models.Job, int, error) {
	all, err := r.ListByOrder(ctx)
	if err != nil {
		return nil, 0, err
	}

	matched := make([]models.Job, 0, len(all))
	for _, job := range all {
		if matchesJobFilter(&job, filter) {
			matched = append(matched, job)
		}
	}

	sortJobs(matched, filter.Sort)

	total := len(matched)
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	start := (page - 1) * pageSize
	if start >= total {
		return []models.Job{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func matchesJobFilter(job *models.Job, filter JobListFilter) bool {
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		hit := strings.Contains(strings.ToLower(job.Title), needle) ||
			strings.Contains(strings.ToLower(job.Company), needle)
		if !hit {
			for _, tag := range job.Tags {
				if strings.Contains(strings.ToLower(tag), needle) {
					hit = true
					break
				}
			}
		}
		if !hit {
			return false
		}
	}
	if filter.Status != "" && filter.Status != "all" && string(job.Status) != filter.Status {
		return false
	}
	if filter.Slug != "" && job.Slug != filter.Slug {
		return false
	}
	for _, want := range filter.Tags {
		found := false
		for _, tag := range job.Tags {
			if strings.EqualFold(tag, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func sortJobs(jobs []models.Job, by string) {
	switch by {
	case "title":
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].Title < jobs[j].Title
		})
	case "createdAt":
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].CreatedAt.Time().After(jobs[j].CreatedAt.Time())
		})
	default:
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].Order < jobs[j].Order
		})
	}
}

// ListByOrder returns every job sorted by board position.
func (r *JobRepository) ListByOrder(ctx context.Context) ([]models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY sort_order`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storageErr("query jobs", err)
	}
	defer rows.Close()

	return scanJobRows(rows)
}

func scanJobRows(rows *sql.Rows) ([]models.Job, error) {
	jobs := make([]models.Job, 0)
	for rows.Next() {
		var job models.Job
		if err := rows.Scan(
			&job.ID,
			&job.Title,
			&job.Slug,
			&job.Description,
			&job.Company,
			&job.Status,
			&job.Tags,
			&job.Order,
			&job.CreatedAt,
			&job.UpdatedAt,
		); err != nil {
			return nil, storageErr("scan job", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate jobs", err)
	}
	return jobs, nil
}

func (r *JobRepository) Update(ctx context.Context, job *models.Job) error {
	job.UpdatedAt = models.NowMillis()

	query := `
		UPDATE jobs
		SET title = $2, slug = $3, description = $4, company = $5, status = $6,
		    tags = $7, sort_order = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx,
		query,
		job.ID,
		job.Title,
		job.Slug,
		job.Description,
		job.Company,
		job.Status,
		job.Tags,
		job.Order,
		job.UpdatedAt,
	)
	if err != nil {
		return storageErr("update job", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageErr("update job rows affected", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveOrders rewrites board positions for the given jobs in one transaction
// and bumps updated_at on each. Used after a reorder splice so positions stay
// a contiguous 0..N-1 run.
func (r *JobRepository) SaveOrders(ctx context.Context, jobs []models.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin reorder", err)
	}
	defer rollbackOnErr(tx, &err, r.logger)

	now := models.NowMillis()
	query := `UPDATE jobs SET sort_order = $2, updated_at = $3 WHERE id = $1`
	for i := range jobs {
		if _, execErr := tx.ExecContext(ctx, query, jobs[i].ID, jobs[i].Order, now); execErr != nil {
			err = storageErr("update job order", execErr)
			return err
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		err = storageErr("commit reorder", commitErr)
		return err
	}
	return nil
}

func (r *JobRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count)
	if err != nil {
		return 0, storageErr("count jobs", err)
	}
	return count, nil
}

// CountActive counts jobs that are not archived.
func (r *JobRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM jobs WHERE status = $1`, models.JobStatusActive,
	).Scan(&count)
	if err != nil {
		return 0, storageErr("count active jobs", err)
	}
	return count, nil
}
