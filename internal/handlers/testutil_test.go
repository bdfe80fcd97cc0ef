package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/hirepipe/hirepipe/internal/api"
	"github.com/hirepipe/hirepipe/internal/config"
	"github.com/hirepipe/hirepipe/internal/handlers"
	"github.com/hirepipe/hirepipe/internal/metrics"
	"github.com/hirepipe/hirepipe/internal/models"
	"github.com/hirepipe/hirepipe/internal/repository"
	"github.com/hirepipe/hirepipe/internal/seed"
	"github.com/hirepipe/hirepipe/internal/simnet"
	"github.com/hirepipe/hirepipe/internal/testhelpers"
)

type testServer struct {
	router      *gin.Engine
	jobs        *repository.JobRepository
	candidates  *repository.CandidateRepository
	assessments *repository.AssessmentRepository
	submissions *repository.SubmissionRepository
	notes       *repository.NoteRepository
	timeline    *repository.TimelineRepository
	admin       *repository.AdminRepository
}

// newTestServer wires the full router over an in-memory store with fault
// injection off.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.NewTestDB(t)
	log := testhelpers.NewTestLogger()
	injector := simnet.Disabled()
	m := metrics.New()

	s := &testServer{
		jobs:        repository.NewJobRepository(db.DB(), log),
		candidates:  repository.NewCandidateRepository(db.DB(), log),
		assessments: repository.NewAssessmentRepository(db.DB(), log),
		submissions: repository.NewSubmissionRepository(db.DB(), log),
		notes:       repository.NewNoteRepository(db.DB(), log),
		timeline:    repository.NewTimelineRepository(db.DB(), log),
		admin:       repository.NewAdminRepository(db.DB(), log),
	}

	orchestrator := seed.NewOrchestrator(
		s.jobs, s.candidates, s.assessments, s.notes, s.timeline, s.admin,
		seed.NewGenerator(rand.NewSource(1)),
		config.SeedConfig{TargetJobs: 5, TargetCandidates: 10, TargetAssessments: 2, ChunkSize: 5},
		log,
	)

	s.router = api.NewRouter(api.Handlers{
		Jobs:        handlers.NewJobHandler(s.jobs, injector, m, nil, log),
		Candidates:  handlers.NewCandidateHandler(s.candidates, s.notes, s.timeline, injector, m, nil, log),
		Assessments: handlers.NewAssessmentHandler(s.assessments, s.submissions, injector, m, nil, log),
		Admin:       handlers.NewAdminHandler(s.admin, orchestrator, m, nil, log),
	}, injector, m, []string{"http://localhost:3000"}, log)

	return s
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func createJob(t *testing.T, s *testServer, job models.Job) models.Job {
	t.Helper()
	require.NoError(t, s.jobs.Create(context.Background(), &job))
	return job
}

func createCandidate(t *testing.T, s *testServer, c models.Candidate) models.Candidate {
	t.Helper()
	require.NoError(t, s.candidates.Create(context.Background(), &c))
	return c
}
