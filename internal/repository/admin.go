package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hirepipe/hirepipe/internal/logger"
)

// AdminRepository covers cross-collection operations: counts for the stats
// endpoint and the full wipe that precedes a reseed.
type AdminRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewAdminRepository(db *sql.DB, log logger.Logger) *AdminRepository {
	return &AdminRepository{
		db:     db,
		logger: log,
	}
}

// Stats holds record counts per collection.
type Stats struct {
	Jobs        int `json:"jobs"`
	Candidates  int `json:"candidates"`
	Assessments int `json:"assessments"`
	Submissions int `json:"submissions"`
	Notes       int `json:"notes"`
	Timeline    int `json:"timeline"`
}

var statTables = []struct {
	name string
	set  func(*Stats, int)
}{
	{"jobs", func(s *Stats, n int) { s.Jobs = n }},
	{"candidates", func(s *Stats, n int) { s.Candidates = n }},
	{"assessments", func(s *Stats, n int) { s.Assessments = n }},
	{"submissions", func(s *Stats, n int) { s.Submissions = n }},
	{"notes", func(s *Stats, n int) { s.Notes = n }},
	{"timeline", func(s *Stats, n int) { s.Timeline = n }},
}

func (r *AdminRepository) Counts(ctx context.Context) (*Stats, error) {
	var stats Stats
	for _, t := range statTables {
		var count int
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", t.name)
		if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return nil, storageErr(fmt.Sprintf("count %s", t.name), err)
		}
		t.set(&stats, count)
	}
	return &stats, nil
}

// ClearAll empties every collection in a single transaction, so a reseed
// either wipes everything or nothing.
func (r *AdminRepository) ClearAll(ctx context.Context) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin clear", err)
	}
	defer rollbackOnErr(tx, &err, r.logger)

	for _, t := range statTables {
		query := fmt.Sprintf("DELETE FROM %s", t.name)
		if _, execErr := tx.ExecContext(ctx, query); execErr != nil {
			err = storageErr(fmt.Sprintf("clear %s", t.name), execErr)
			return err
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		err = storageErr("commit clear", commitErr)
		return err
	}
	return nil
}
