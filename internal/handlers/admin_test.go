package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirepipe/hirepipe/internal/models"
	"github.com/hirepipe/hirepipe/internal/repository"
)

func TestAdminStats(t *testing.T) {
	s := newTestServer(t)
	seedBoardJobs(t, s)
	seedCandidates(t, s)

	w := s.do(t, http.MethodGet, "/api/admin/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats repository.Stats
	decodeBody(t, w, &stats)
	assert.Equal(t, 3, stats.Jobs)
	assert.Equal(t, 3, stats.Candidates)
	assert.Equal(t, 0, stats.Assessments)
}

func TestAdminReseed(t *testing.T) {
	s := newTestServer(t)
	stale := createJob(t, s, models.Job{
		Title:       "Stale Role",
		Slug:        "stale-role",
		Description: "Should not survive a reseed.",
		Status:      models.JobStatusActive,
	})

	w := s.do(t, http.MethodPost, "/api/admin/reseed", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool             `json:"success"`
		Stats   repository.Stats `json:"stats"`
	}
	decodeBody(t, w, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, 5, resp.Stats.Jobs)
	assert.Equal(t, 10, resp.Stats.Candidates)
	assert.LessOrEqual(t, resp.Stats.Assessments, 2)
	assert.Greater(t, resp.Stats.Timeline, 0)

	gone, err := s.jobs.GetByID(context.Background(), stale.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestAdminBackfill(t *testing.T) {
	s := newTestServer(t)
	seedCandidates(t, s)

	w := s.do(t, http.MethodPost, "/api/admin/backfill", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Notes    int `json:"notes"`
		Timeline int `json:"timeline"`
	}
	decodeBody(t, w, &resp)
	assert.Greater(t, resp.Timeline, 0)

	// A second non-forced run is a no-op once every timeline has events.
	w = s.do(t, http.MethodPost, "/api/admin/backfill", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	assert.Zero(t, resp.Timeline)
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var health map[string]string
	decodeBody(t, w, &health)
	assert.Equal(t, "ok", health["status"])

	w = s.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
