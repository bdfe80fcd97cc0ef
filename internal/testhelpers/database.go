// Package testhelpers provides shared test fixtures: an in-memory record
// store and a silent logger.
package testhelpers

import (
	"testing"

	"github.com/hirepipe/hirepipe/internal/database"
)

// NewTestDB opens an in-memory store with the full schema applied. The store
// is closed automatically when the test finishes.
func NewTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Open(":memory:", NewTestLogger())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}
