package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/hirepipe/hirepipe/internal/logger"
	"github.com/hirepipe/hirepipe/internal/models"
)

type NoteRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewNoteRepository(db *sql.DB, log logger.Logger) *NoteRepository {
	return &NoteRepository{
		db:     db,
		logger: log,
	}
}

const noteColumns = `id, candidate_id, content, mentions, created_at, created_by`

func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = models.NowMillis()
	}
	if note.Mentions == nil {
		note.Mentions = models.ExtractMentions(note.Content)
	}

	query := `
		INSERT INTO notes (` + noteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		note.ID,
		note.CandidateID,
		note.Content,
		note.Mentions,
		note.CreatedAt,
		note.CreatedBy,
	)
	if err != nil {
		return storageErr("insert note", err)
	}
	return nil
}

// BulkInsert writes a batch of pre-built notes in a single transaction.
func (r *NoteRepository) BulkInsert(ctx context.Context, notes []models.Note) error {
	if len(notes) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin bulk insert notes", err)
	}
	defer rollbackOnErr(tx, &err, r.logger)

	query := `
		INSERT INTO notes (` + noteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i := range notes {
		n := &notes[i]
		if _, execErr := tx.ExecContext(ctx, query,
			n.ID, n.CandidateID, n.Content, n.Mentions, n.CreatedAt, n.CreatedBy,
		); execErr != nil {
			err = storageErr(fmt.Sprintf("bulk insert note %s", n.ID), execErr)
			return err
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		err = storageErr("commit bulk insert notes", commitErr)
		return err
	}
	return nil
}

// ListByCandidate returns the candidate's notes oldest first.
func (r *NoteRepository) ListByCandidate(ctx context.Context, candidateID string) ([]models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE candidate_id = $1 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, storageErr("query notes", err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		var n models.Note
		if scanErr := rows.Scan(
			&n.ID,
			&n.CandidateID,
			&n.Content,
			&n.Mentions,
			&n.CreatedAt,
			&n.CreatedBy,
		); scanErr != nil {
			return nil, storageErr("scan note", scanErr)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate notes", err)
	}
	return notes, nil
}

func (r *NoteRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&count)
	if err != nil {
		return 0, storageErr("count notes", err)
	}
	return count, nil
}
