package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/hirepipe/hirepipe/internal/logger"
	"github.com/hirepipe/hirepipe/internal/models"
)

type CandidateRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewCandidateRepository(db *sql.DB, log logger.Logger) *CandidateRepository {
	return &CandidateRepository{
		db:     db,
		logger: log,
	}
}

const candidateColumns = `id, name, email, phone, company, job_title, stage, job_id, applied_at`

// CandidateListFilter holds search, filter, and pagination params for List.
type CandidateListFilter struct {
	Search   string // case-insensitive substring on name or email
	Stage    string // exact match; empty or "all" = every stage
	JobID    string // exact match, empty = all
	Company  string // exact match, empty = all
	Page     int    // 1-based, default 1
	PageSize int    // default 20
}

func (r *CandidateRepository) Create(ctx context.Context, candidate *models.Candidate) error {
	if candidate.ID == "" {
		candidate.ID = uuid.New().String()
	}
	if candidate.AppliedAt.IsZero() {
		candidate.AppliedAt = models.NowMillis()
	}

	query := `
		INSERT INTO candidates (` + candidateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		candidate.ID,
		candidate.Name,
		candidate.Email,
		candidate.Phone,
		candidate.Company,
		candidate.JobTitle,
		candidate.Stage,
		candidate.JobID,
		candidate.AppliedAt,
	)
	if err != nil {
		return storageErr("insert candidate", err)
	}

	return nil
}

// BulkInsert writes a batch of pre-built candidates in a single transaction.
func (r *CandidateRepository) BulkInsert(ctx context.Context, candidates []models.Candidate) error {
	if len(candidates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin bulk insert candidates", err)
	}
	defer rollbackOnErr(tx, &err, r.logger)

	query := `
		INSERT INTO candidates (` + candidateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for i := range candidates {
		c := &candidates[i]
		if _, execErr := tx.ExecContext(ctx, query,
			c.ID, c.Name, c.Email, c.Phone, c.Company,
			c.JobTitle, c.Stage, c.JobID, c.AppliedAt,
		); execErr != nil {
			err = storageErr(fmt.Sprintf("bulk insert candidate %q", c.Email), execErr)
			return err
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		err = storageErr("commit bulk insert candidates", commitErr)
		return err
	}
	return nil
}

// GetByID returns the candidate, or nil when no candidate has that id.
func (r *CandidateRepository) GetByID(ctx context.Context, id string) (*models.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`

	var c models.Candidate
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Company,
		&c.JobTitle,
		&c.Stage,
		&c.JobID,
		&c.AppliedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("query candidate", err)
	}
	return &c, nil
}

// List applies the filter, sorts by applied_at descending, and paginates.
// The returned total counts matches before pagination.
func (r *CandidateRepository) List(ctx context.Context, filter CandidateListFilter) ([]models.Candidate, int, error) {
	whereClause, whereArgs := buildCandidateWhere(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM candidates WHERE 1=1` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, whereArgs...).Scan(&total); err != nil {
		return nil, 0, storageErr("count candidates", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	argCount := len(whereArgs)
	limitPlaceholder := strconv.Itoa(argCount + 1)
	offsetPlaceholder := strconv.Itoa(argCount + 2)
	query := `
		SELECT ` + candidateColumns + `
		FROM candidates
		WHERE 1=1` + whereClause + `
		ORDER BY applied_at DESC, id
		LIMIT $` + limitPlaceholder + ` OFFSET $` + offsetPlaceholder

	args := append(append([]any{}, whereArgs...), pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, storageErr("query candidates", err)
	}
	defer rows.Close()

	candidates, scanErr := scanCandidateRows(rows)
	if scanErr != nil {
		return nil, 0, scanErr
	}
	return candidates, total, nil
}

// ListAll returns every candidate, oldest application first. Used by the
// timeline backfill, which rebuilds history for the full roster.
func (r *CandidateRepository) ListAll(ctx context.Context) ([]models.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates ORDER BY applied_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storageErr("query all candidates", err)
	}
	defer rows.Close()

	return scanCandidateRows(rows)
}

func scanCandidateRows(rows *sql.Rows) ([]models.Candidate, error) {
	candidates := make([]models.Candidate, 0)
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Email,
			&c.Phone,
			&c.Company,
			&c.JobTitle,
			&c.Stage,
			&c.JobID,
			&c.AppliedAt,
		); err != nil {
			return nil, storageErr("scan candidate", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate candidates", err)
	}
	return candidates, nil
}

func buildCandidateWhere(filter CandidateListFilter) (whereClause string, args []any) {
	var clauses []string
	args = make([]any, 0)
	pos := 1

	if filter.Search != "" {
		clauses = append(clauses,
			fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(email) LIKE $%d)", pos, pos))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		pos++
	}
	if filter.Stage != "" && filter.Stage != "all" {
		clauses = append(clauses, fmt.Sprintf("stage = $%d", pos))
		args = append(args, filter.Stage)
		pos++
	}
	if filter.JobID != "" {
		clauses = append(clauses, fmt.Sprintf("job_id = $%d", pos))
		args = append(args, filter.JobID)
		pos++
	}
	if filter.Company != "" {
		clauses = append(clauses, fmt.Sprintf("company = $%d", pos))
		args = append(args, filter.Company)
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " AND " + strings.Join(clauses, " AND "), args
}

// Update rewrites the full candidate row. The handler merges incoming fields
// into the stored record first.
func (r *CandidateRepository) Update(ctx context.Context, candidate *models.Candidate) error {
	query := `
		UPDATE candidates
		SET name = $2, email = $3, phone = $4, company = $5, job_title = $6,
		    stage = $7, job_id = $8, applied_at = $9
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx,
		query,
		candidate.ID,
		candidate.Name,
		candidate.Email,
		candidate.Phone,
		candidate.Company,
		candidate.JobTitle,
		candidate.Stage,
		candidate.JobID,
		candidate.AppliedAt,
	)
	if err != nil {
		return storageErr("update candidate", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageErr("update candidate rows affected", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CandidateRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&count)
	if err != nil {
		return 0, storageErr("count candidates", err)
	}
	return count, nil
}

// CountByStage returns candidate counts grouped by pipeline stage.
func (r *CandidateRepository) CountByStage(ctx context.Context) (map[models.Stage]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT stage, COUNT(*) FROM candidates GROUP BY stage`)
	if err != nil {
		return nil, storageErr("count candidates by stage", err)
	}
	defer rows.Close()

	counts := make(map[models.Stage]int)
	for rows.Next() {
		var stage models.Stage
		var n int
		if scanErr := rows.Scan(&stage, &n); scanErr != nil {
			return nil, storageErr("scan stage count", scanErr)
		}
		counts[stage] = n
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate stage counts", err)
	}
	return counts, nil
}
