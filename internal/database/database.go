// Package database opens and migrates the embedded SQLite record store.
package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" //nolint:blankimports // SQLite driver

	"github.com/hirepipe/hirepipe/internal/config"
	"github.com/hirepipe/hirepipe/internal/logger"
)

// schemaVersion gates in-place upgrades via PRAGMA user_version. The store
// currently has a single fixed schema.
const schemaVersion = 1

type DB struct {
	db     *sql.DB
	logger logger.Logger
}

// New opens the store file, applies pragmas, and migrates the schema.
func New(cfg *config.Config, log logger.Logger) (*DB, error) {
	return Open(cfg.Database.Path, log)
}

// Open opens a store at the given path (":memory:" for an in-memory store)
// and ensures the schema exists.
func Open(path string, log logger.Logger) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_loc=UTC", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// The store has a single writer; more connections only invite
	// SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if pingErr := db.PingContext(ctx); pingErr != nil {
		return nil, fmt.Errorf("ping database: %w", pingErr)
	}

	if migrateErr := migrate(ctx, db); migrateErr != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", migrateErr)
	}

	log.Info("Record store opened",
		logger.String("path", path),
		logger.Int("schema_version", schemaVersion),
	)

	return &DB{
		db:     db,
		logger: log,
	}, nil
}

func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

func (d *DB) DB() *sql.DB {
	return d.db
}

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	slug        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	company     TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL,
	tags        TEXT NOT NULL DEFAULT '[]',
	sort_order  INTEGER NOT NULL DEFAULT 0,
	created_at  TIMESTAMP NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_slug ON jobs (slug);
CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs (status);
CREATE INDEX IF NOT EXISTS idx_jobs_sort_order ON jobs (sort_order);
CREATE INDEX IF NOT EXISTS idx_jobs_company ON jobs (company);

CREATE TABLE IF NOT EXISTS candidates (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL DEFAULT '',
	phone      TEXT NOT NULL DEFAULT '',
	company    TEXT NOT NULL DEFAULT '',
	job_title  TEXT NOT NULL DEFAULT '',
	stage      TEXT NOT NULL,
	job_id     TEXT NOT NULL DEFAULT '',
	applied_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_candidates_job_id ON candidates (job_id);
CREATE INDEX IF NOT EXISTS idx_candidates_stage ON candidates (stage);
CREATE INDEX IF NOT EXISTS idx_candidates_company ON candidates (company);
CREATE INDEX IF NOT EXISTS idx_candidates_applied_at ON candidates (applied_at);

CREATE TABLE IF NOT EXISTS assessments (
	id          TEXT PRIMARY KEY,
	job_id      TEXT NOT NULL,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	sections    TEXT NOT NULL DEFAULT '[]',
	created_at  TIMESTAMP NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_assessments_job_id ON assessments (job_id);
CREATE INDEX IF NOT EXISTS idx_assessments_updated_at ON assessments (updated_at);

CREATE TABLE IF NOT EXISTS submissions (
	id            TEXT PRIMARY KEY,
	assessment_id TEXT NOT NULL,
	candidate_id  TEXT NOT NULL DEFAULT '',
	responses     TEXT NOT NULL DEFAULT '[]',
	submitted_at  TIMESTAMP,
	completed_at  TIMESTAMP,
	created_at    TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_submissions_assessment_id ON submissions (assessment_id);
CREATE INDEX IF NOT EXISTS idx_submissions_candidate_id ON submissions (candidate_id);
CREATE INDEX IF NOT EXISTS idx_submissions_created_at ON submissions (created_at);

CREATE TABLE IF NOT EXISTS notes (
	id           TEXT PRIMARY KEY,
	candidate_id TEXT NOT NULL,
	content      TEXT NOT NULL,
	mentions     TEXT NOT NULL DEFAULT '[]',
	created_at   TIMESTAMP NOT NULL,
	created_by   TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_notes_candidate_id ON notes (candidate_id);
CREATE INDEX IF NOT EXISTS idx_notes_created_at ON notes (created_at);

CREATE TABLE IF NOT EXISTS timeline (
	id           TEXT PRIMARY KEY,
	candidate_id TEXT NOT NULL,
	type         TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	timestamp    TIMESTAMP NOT NULL,
	metadata     TEXT
);
CREATE INDEX IF NOT EXISTS idx_timeline_candidate_id ON timeline (candidate_id);
CREATE INDEX IF NOT EXISTS idx_timeline_timestamp ON timeline (timestamp);
`

func migrate(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	switch version {
	case 0:
		if _, err := db.ExecContext(ctx, schema); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
		return nil
	case schemaVersion:
		return nil
	default:
		return fmt.Errorf("unsupported schema version %d (want %d)", version, schemaVersion)
	}
}
