package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hirepipe/hirepipe/internal/events"
	"github.com/hirepipe/hirepipe/internal/logger"
	"github.com/hirepipe/hirepipe/internal/metrics"
	"github.com/hirepipe/hirepipe/internal/models"
	"github.com/hirepipe/hirepipe/internal/repository"
	"github.com/hirepipe/hirepipe/internal/simnet"
)

type AssessmentHandler struct {
	repo        *repository.AssessmentRepository
	submissions *repository.SubmissionRepository
	injector    *simnet.Injector
	metrics     *metrics.Metrics
	publisher   *events.Publisher
	logger      logger.Logger
}

func NewAssessmentHandler(
	repo *repository.AssessmentRepository,
	submissions *repository.SubmissionRepository,
	injector *simnet.Injector,
	m *metrics.Metrics,
	publisher *events.Publisher,
	log logger.Logger,
) *AssessmentHandler {
	return &AssessmentHandler{
		repo:        repo,
		submissions: submissions,
		injector:    injector,
		metrics:     m,
		publisher:   publisher,
		logger:      log,
	}
}

// GetByJob serves GET /api/assessments/:jobId. A job without an assessment
// gets a 200 with a null body, which the builder treats as a blank slate.
func (h *AssessmentHandler) GetByJob(c *gin.Context) {
	jobID := c.Param("jobId")

	assessment, err := h.repo.GetByJob(c.Request.Context(), jobID)
	if err != nil {
		h.logger.Error("Failed to read assessment", logger.String("job_id", jobID), logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to read assessment")
		return
	}
	if assessment == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, assessment)
}

type saveAssessmentRequest struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Sections    *models.SectionList `json:"sections"`
}

// Save serves PUT /api/assessments/:jobId: an upsert keyed by job. An
// existing assessment merges and returns 200; a new one is created with
// server-side id and timestamps and returns 201.
func (h *AssessmentHandler) Save(c *gin.Context) {
	if h.injector.FailWrite() {
		h.metrics.InjectedFailures.WithLabelValues("save_assessment").Inc()
		failInjected(c, "Failed to update assessment")
		return
	}

	jobID := c.Param("jobId")
	ctx := c.Request.Context()

	var req saveAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == nil {
		errorResponse(c, http.StatusBadRequest, "Invalid assessment data")
		return
	}

	existing, err := h.repo.GetByJob(ctx, jobID)
	if err != nil {
		h.logger.Error("Failed to read assessment", logger.String("job_id", jobID), logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to update assessment")
		return
	}

	if existing != nil {
		existing.Title = *req.Title
		if req.Description != nil {
			existing.Description = *req.Description
		}
		if req.Sections != nil {
			existing.Sections = *req.Sections
		}

		if err := h.repo.Update(ctx, existing); err != nil {
			h.logger.Error("Failed to update assessment", logger.String("job_id", jobID), logger.Error(err))
			errorResponse(c, http.StatusInternalServerError, "Failed to update assessment")
			return
		}

		h.publisher.PublishAsync(events.Event{
			EventType: events.AssessmentSave,
			RecordID:  existing.ID,
		})
		c.JSON(http.StatusOK, existing)
		return
	}

	assessment := models.Assessment{
		JobID: jobID,
		Title: *req.Title,
	}
	if req.Description != nil {
		assessment.Description = *req.Description
	}
	if req.Sections != nil {
		assessment.Sections = *req.Sections
	}

	if err := h.repo.Create(ctx, &assessment); err != nil {
		h.logger.Error("Failed to create assessment", logger.String("job_id", jobID), logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to update assessment")
		return
	}

	h.logger.Info("Assessment created",
		logger.String("assessment_id", assessment.ID),
		logger.String("job_id", jobID),
	)
	h.publisher.PublishAsync(events.Event{
		EventType: events.AssessmentSave,
		RecordID:  assessment.ID,
	})

	c.JSON(http.StatusCreated, assessment)
}

type submitRequest struct {
	CandidateID string          `json:"candidateId"`
	Responses   json.RawMessage `json:"responses"`
}

// Submit serves POST /api/assessments/:jobId/submit. The submission keys on
// the job id, matching how the runtime form has always addressed
// assessments. Responses must be a JSON array.
func (h *AssessmentHandler) Submit(c *gin.Context) {
	if h.injector.FailWrite() {
		h.metrics.InjectedFailures.WithLabelValues("submit_assessment").Inc()
		failInjected(c, "Failed to submit assessment")
		return
	}

	jobID := c.Param("jobId")

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid submission data")
		return
	}

	// A missing or explicit-null responses field unmarshals into a nil
	// slice without error; only a real JSON array is acceptable.
	if len(req.Responses) == 0 || string(req.Responses) == "null" {
		errorResponse(c, http.StatusBadRequest, "Invalid submission data")
		return
	}
	var responseList []json.RawMessage
	if err := json.Unmarshal(req.Responses, &responseList); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid submission data")
		return
	}

	submission := models.Submission{
		AssessmentID: jobID,
		CandidateID:  req.CandidateID,
		Responses:    models.ResponseMap(req.Responses),
	}

	if err := h.submissions.Create(c.Request.Context(), &submission); err != nil {
		h.logger.Error("Failed to store submission", logger.String("job_id", jobID), logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to submit assessment")
		return
	}

	h.publisher.PublishAsync(events.Event{
		EventType: events.Submission,
		RecordID:  submission.ID,
	})

	c.JSON(http.StatusCreated, submission)
}
