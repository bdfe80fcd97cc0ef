package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirepipe/hirepipe/internal/models"
	"github.com/hirepipe/hirepipe/internal/testhelpers"
)

func TestStorageError_Unwrap(t *testing.T) {
	underlying := errors.New("disk full")
	err := storageErr("insert job", underlying)

	assert.True(t, IsStorageError(err))
	assert.ErrorIs(t, err, underlying)
	assert.Contains(t, err.Error(), "insert job")

	assert.False(t, IsStorageError(errors.New("plain")))
	assert.False(t, IsStorageError(ErrNotFound))
}

func TestJobRepository_StorageFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewJobRepository(db, testhelpers.NewTestLogger())
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO jobs").WillReturnError(errors.New("database is locked"))

	insertErr := repo.Create(ctx, &models.Job{Title: "A", Slug: "a", Status: models.JobStatusActive})
	assert.True(t, IsStorageError(insertErr))

	mock.ExpectQuery("SELECT (.+) FROM jobs WHERE id").WillReturnError(errors.New("malformed database"))

	_, getErr := repo.GetByID(ctx, "j1")
	assert.True(t, IsStorageError(getErr))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCandidateRepository_StorageFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCandidateRepository(db, testhelpers.NewTestLogger())
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("malformed database"))

	_, _, listErr := repo.List(ctx, CandidateListFilter{})
	assert.True(t, IsStorageError(listErr))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO candidates").WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	bulkErr := repo.BulkInsert(ctx, []models.Candidate{{ID: "c1", Name: "A", Stage: models.StageApplied, AppliedAt: models.NowMillis()}})
	assert.True(t, IsStorageError(bulkErr))

	assert.NoError(t, mock.ExpectationsWereMet())
}
