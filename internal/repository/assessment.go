package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/hirepipe/hirepipe/internal/logger"
	"github.com/hirepipe/hirepipe/internal/models"
)

type AssessmentRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewAssessmentRepository(db *sql.DB, log logger.Logger) *AssessmentRepository {
	return &AssessmentRepository{
		db:     db,
		logger: log,
	}
}

const assessmentColumns = `id, job_id, title, description, sections, created_at, updated_at`

func (r *AssessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	if assessment.ID == "" {
		assessment.ID = uuid.New().String()
	}
	now := models.NowMillis()
	if assessment.CreatedAt.IsZero() {
		assessment.CreatedAt = now
	}
	if assessment.UpdatedAt.IsZero() {
		assessment.UpdatedAt = now
	}
	if assessment.Sections == nil {
		assessment.Sections = models.SectionList{}
	}

	query := `
		INSERT INTO assessments (` + assessmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		assessment.ID,
		assessment.JobID,
		assessment.Title,
		assessment.Description,
		assessment.Sections,
		assessment.CreatedAt,
		assessment.UpdatedAt,
	)
	if err != nil {
		return storageErr("insert assessment", err)
	}
	return nil
}

// BulkInsert writes a batch of pre-built assessments in a single transaction.
func (r *AssessmentRepository) BulkInsert(ctx context.Context, assessments []models.Assessment) error {
	if len(assessments) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin bulk insert assessments", err)
	}
	defer rollbackOnErr(tx, &err, r.logger)

	query := `
		INSERT INTO assessments (` + assessmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for i := range assessments {
		a := &assessments[i]
		if _, execErr := tx.ExecContext(ctx, query,
			a.ID, a.JobID, a.Title, a.Description, a.Sections, a.CreatedAt, a.UpdatedAt,
		); execErr != nil {
			err = storageErr(fmt.Sprintf("bulk insert assessment %s", a.ID), execErr)
			return err
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		err = storageErr("commit bulk insert assessments", commitErr)
		return err
	}
	return nil
}

// GetByJob returns the first assessment attached to the job, or nil when the
// job has none. One assessment per job is the working assumption; ties break
// on creation time.
func (r *AssessmentRepository) GetByJob(ctx context.Context, jobID string) (*models.Assessment, error) {
	query := `
		SELECT ` + assessmentColumns + `
		FROM assessments
		WHERE job_id = $1
		ORDER BY created_at, id
		LIMIT 1
	`

	var a models.Assessment
	err := r.db.QueryRowContext(ctx, query, jobID).Scan(
		&a.ID,
		&a.JobID,
		&a.Title,
		&a.Description,
		&a.Sections,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("query assessment", err)
	}
	return &a, nil
}

// Update rewrites the full assessment row and bumps updated_at.
func (r *AssessmentRepository) Update(ctx context.Context, assessment *models.Assessment) error {
	assessment.UpdatedAt = models.NowMillis()

	query := `
		UPDATE assessments
		SET job_id = $2, title = $3, description = $4, sections = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx,
		query,
		assessment.ID,
		assessment.JobID,
		assessment.Title,
		assessment.Description,
		assessment.Sections,
		assessment.UpdatedAt,
	)
	if err != nil {
		return storageErr("update assessment", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageErr("update assessment rows affected", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AssessmentRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM assessments`).Scan(&count)
	if err != nil {
		return 0, storageErr("count assessments", err)
	}
	return count, nil
}
