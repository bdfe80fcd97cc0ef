package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/hirepipe/hirepipe/internal/logger"
	"github.com/hirepipe/hirepipe/internal/models"
)

type TimelineRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewTimelineRepository(db *sql.DB, log logger.Logger) *TimelineRepository {
	return &TimelineRepository{
		db:     db,
		logger: log,
	}
}

const timelineColumns = `id, candidate_id, type, description, timestamp, metadata`

func (r *TimelineRepository) Create(ctx context.Context, event *models.TimelineEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = models.NowMillis()
	}

	metadataJSON, err := marshalEventMetadata(event.Metadata)
	if err != nil {
		return storageErr("marshal event metadata", err)
	}

	query := `
		INSERT INTO timeline (` + timelineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.db.ExecContext(ctx,
		query,
		event.ID,
		event.CandidateID,
		event.Type,
		event.Description,
		event.Timestamp,
		metadataJSON,
	)
	if err != nil {
		return storageErr("insert timeline event", err)
	}
	return nil
}

// BulkInsert writes a batch of pre-built events in a single transaction.
func (r *TimelineRepository) BulkInsert(ctx context.Context, events []models.TimelineEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin bulk insert timeline", err)
	}
	defer rollbackOnErr(tx, &err, r.logger)

	query := `
		INSERT INTO timeline (` + timelineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i := range events {
		e := &events[i]
		metadataJSON, marshalErr := marshalEventMetadata(e.Metadata)
		if marshalErr != nil {
			err = storageErr("marshal event metadata", marshalErr)
			return err
		}
		if _, execErr := tx.ExecContext(ctx, query,
			e.ID, e.CandidateID, e.Type, e.Description, e.Timestamp, metadataJSON,
		); execErr != nil {
			err = storageErr(fmt.Sprintf("bulk insert timeline event %s", e.ID), execErr)
			return err
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		err = storageErr("commit bulk insert timeline", commitErr)
		return err
	}
	return nil
}

// ListByCandidate returns the candidate's events oldest first.
func (r *TimelineRepository) ListByCandidate(ctx context.Context, candidateID string) ([]models.TimelineEvent, error) {
	query := `SELECT ` + timelineColumns + ` FROM timeline WHERE candidate_id = $1 ORDER BY timestamp, id`

	rows, err := r.db.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, storageErr("query timeline", err)
	}
	defer rows.Close()

	events := make([]models.TimelineEvent, 0)
	for rows.Next() {
		var e models.TimelineEvent
		var metadataJSON sql.NullString
		if scanErr := rows.Scan(
			&e.ID,
			&e.CandidateID,
			&e.Type,
			&e.Description,
			&e.Timestamp,
			&metadataJSON,
		); scanErr != nil {
			return nil, storageErr("scan timeline event", scanErr)
		}
		if metadataJSON.Valid {
			meta, decodeErr := models.DecodeEventMetadata(e.Type, []byte(metadataJSON.String))
			if decodeErr != nil {
				return nil, storageErr("decode event metadata", decodeErr)
			}
			e.Metadata = meta
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate timeline", err)
	}
	return events, nil
}

// CountByCandidate returns the number of events recorded for the candidate.
func (r *TimelineRepository) CountByCandidate(ctx context.Context, candidateID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM timeline WHERE candidate_id = $1`, candidateID,
	).Scan(&count)
	if err != nil {
		return 0, storageErr("count candidate timeline", err)
	}
	return count, nil
}

func (r *TimelineRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM timeline`).Scan(&count)
	if err != nil {
		return 0, storageErr("count timeline", err)
	}
	return count, nil
}

func marshalEventMetadata(meta models.EventMetadata) (any, error) {
	if meta == nil {
		return nil, nil
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
