package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/hirepipe/hirepipe/internal/logger"
	"github.com/hirepipe/hirepipe/internal/models"
)

type SubmissionRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewSubmissionRepository(db *sql.DB, log logger.Logger) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: log,
	}
}

const submissionColumns = `id, assessment_id, candidate_id, responses, submitted_at, completed_at, created_at`

func (r *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	if submission.ID == "" {
		submission.ID = uuid.New().String()
	}
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = models.NowMillis()
	}
	if submission.Responses == nil {
		submission.Responses = models.ResponseMap("[]")
	}

	query := `
		INSERT INTO submissions (` + submissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		submission.ID,
		submission.AssessmentID,
		submission.CandidateID,
		string(submission.Responses),
		submission.SubmittedAt,
		submission.CompletedAt,
		submission.CreatedAt,
	)
	if err != nil {
		return storageErr("insert submission", err)
	}
	return nil
}

// ListByAssessment returns submissions for the assessment key, newest first.
func (r *SubmissionRepository) ListByAssessment(ctx context.Context, assessmentID string) ([]models.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE assessment_id = $1
		ORDER BY created_at DESC, id
	`

	rows, err := r.db.QueryContext(ctx, query, assessmentID)
	if err != nil {
		return nil, storageErr("query submissions", err)
	}
	defer rows.Close()

	submissions := make([]models.Submission, 0)
	for rows.Next() {
		var s models.Submission
		var responses string
		var submittedAt, completedAt sql.NullTime
		if scanErr := rows.Scan(
			&s.ID,
			&s.AssessmentID,
			&s.CandidateID,
			&responses,
			&submittedAt,
			&completedAt,
			&s.CreatedAt,
		); scanErr != nil {
			return nil, storageErr("scan submission", scanErr)
		}
		s.Responses = models.ResponseMap(responses)
		if submittedAt.Valid {
			m := models.Millis(submittedAt.Time)
			s.SubmittedAt = &m
		}
		if completedAt.Valid {
			m := models.Millis(completedAt.Time)
			s.CompletedAt = &m
		}
		submissions = append(submissions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate submissions", err)
	}
	return submissions, nil
}

func (r *SubmissionRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM submissions`).Scan(&count)
	if err != nil {
		return 0, storageErr("count submissions", err)
	}
	return count, nil
}
