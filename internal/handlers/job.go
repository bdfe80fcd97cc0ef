package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hirepipe/hirepipe/internal/events"
	"github.com/hirepipe/hirepipe/internal/logger"
	"github.com/hirepipe/hirepipe/internal/metrics"
	"github.com/hirepipe/hirepipe/internal/models"
	"github.com/hirepipe/hirepipe/internal/repository"
	"github.com/hirepipe/hirepipe/internal/simnet"
)

type JobHandler struct {
	repo      *repository.JobRepository
	injector  *simnet.Injector
	metrics   *metrics.Metrics
	publisher *events.Publisher
	logger    logger.Logger
}

func NewJobHandler(
	repo *repository.JobRepository,
	injector *simnet.Injector,
	m *metrics.Metrics,
	publisher *events.Publisher,
	log logger.Logger,
) *JobHandler {
	return &JobHandler{
		repo:      repo,
		injector:  injector,
		metrics:   m,
		publisher: publisher,
		logger:    log,
	}
}

// List serves GET /api/jobs with search, status, slug, and tag filters.
// The total in the response counts matches before pagination.
func (h *JobHandler) List(c *gin.Context) {
	filter := repository.JobListFilter{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Slug:     c.Query("slug"),
		Sort:     c.DefaultQuery("sort", "order"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "pageSize", 10),
	}
	if tagsParam := c.Query("tags"); tagsParam != "" {
		for _, tag := range strings.Split(tagsParam, ",") {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				filter.Tags = append(filter.Tags, trimmed)
			}
		}
	}

	jobs, total, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list jobs", logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":     jobs,
		"total":    total,
		"page":     filter.Page,
		"pageSize": filter.PageSize,
	})
}

// GetByID serves GET /api/jobs/:id.
func (h *JobHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	job, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to read job", logger.String("job_id", id), logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to read job")
		return
	}
	if job == nil {
		errorResponse(c, http.StatusNotFound, "Job not found")
		return
	}

	c.JSON(http.StatusOK, job)
}

type createJobRequest struct {
	Title       *string            `json:"title"`
	Slug        *string            `json:"slug"`
	Description *string            `json:"description"`
	Company     *string            `json:"company"`
	Status      *models.JobStatus  `json:"status"`
	Tags        models.StringArray `json:"tags"`
	Order       *int               `json:"order"`
}

// Create serves POST /api/jobs. Title, slug, description, status, and
// company are required; the id and timestamps are always server-assigned.
func (h *JobHandler) Create(c *gin.Context) {
	if h.injector.FailWrite() {
		h.metrics.InjectedFailures.WithLabelValues("create_job").Inc()
		failInjected(c, "Failed to create job")
		return
	}

	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid job data")
		return
	}
	if req.Title == nil || req.Slug == nil || req.Description == nil || req.Status == nil || req.Company == nil {
		errorResponse(c, http.StatusBadRequest, "Invalid job data")
		return
	}

	job := models.Job{
		Title:       *req.Title,
		Slug:        *req.Slug,
		Description: *req.Description,
		Company:     *req.Company,
		Status:      *req.Status,
		Tags:        req.Tags,
	}
	if job.Tags == nil {
		job.Tags = models.StringArray{}
	}
	if req.Order != nil {
		job.Order = *req.Order
	}

	if err := h.repo.Create(c.Request.Context(), &job); err != nil {
		h.logger.Error("Failed to create job", logger.String("slug", job.Slug), logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to create job")
		return
	}

	h.logger.Info("Job created",
		logger.String("job_id", job.ID),
		logger.String("slug", job.Slug),
	)
	h.publisher.PublishAsync(events.Event{
		EventType: events.JobCreated,
		RecordID:  job.ID,
	})

	c.JSON(http.StatusCreated, job)
}

type updateJobRequest struct {
	Title       *string             `json:"title"`
	Slug        *string             `json:"slug"`
	Description *string             `json:"description"`
	Company     *string             `json:"company"`
	Status      *models.JobStatus   `json:"status"`
	Tags        *models.StringArray `json:"tags"`
	Order       *int                `json:"order"`
}

// Update serves PATCH /api/jobs/:id. Provided fields merge into the stored
// record; updatedAt refreshes on every successful patch.
func (h *JobHandler) Update(c *gin.Context) {
	if h.injector.FailWrite() {
		h.metrics.InjectedFailures.WithLabelValues("update_job").Inc()
		failInjected(c, "Failed to update job")
		return
	}

	id := c.Param("id")

	var req updateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid update data")
		return
	}

	job, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to read job", logger.String("job_id", id), logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to update job")
		return
	}
	if job == nil {
		errorResponse(c, http.StatusNotFound, "Job not found")
		return
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Slug != nil {
		job.Slug = *req.Slug
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Company != nil {
		job.Company = *req.Company
	}
	if req.Status != nil {
		job.Status = *req.Status
	}
	if req.Tags != nil {
		job.Tags = *req.Tags
	}
	if req.Order != nil {
		job.Order = *req.Order
	}

	if err := h.repo.Update(c.Request.Context(), job); err != nil {
		h.logger.Error("Failed to update job", logger.String("job_id", id), logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to update job")
		return
	}

	h.publisher.PublishAsync(events.Event{
		EventType: events.JobUpdated,
		RecordID:  job.ID,
	})

	c.JSON(http.StatusOK, job)
}

type reorderRequest struct {
	FromOrder *int `json:"fromOrder"`
	ToOrder   *int `json:"toOrder"`
}

// Reorder serves PATCH /api/jobs/:id/reorder. The moving job is addressed by
// the path id when it resolves, falling back to the fromOrder lookup for
// older callers. Board positions are renumbered to a contiguous 0..N-1 run.
func (h *JobHandler) Reorder(c *gin.Context) {
	if h.injector.FailReorder() {
		h.metrics.InjectedFailures.WithLabelValues("reorder_jobs").Inc()
		failInjected(c, "Failed to reorder jobs")
		return
	}

	id := c.Param("id")

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FromOrder == nil || req.ToOrder == nil {
		errorResponse(c, http.StatusBadRequest, "Invalid reorder body")
		return
	}

	jobs, err := h.repo.ListByOrder(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list jobs for reorder", logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to reorder jobs")
		return
	}

	fromIdx := -1
	for i := range jobs {
		if jobs[i].ID == id {
			fromIdx = i
			break
		}
	}
	if fromIdx == -1 {
		for i := range jobs {
			if jobs[i].Order == *req.FromOrder {
				fromIdx = i
				break
			}
		}
	}
	if fromIdx == -1 {
		errorResponse(c, http.StatusNotFound, "Job not found")
		return
	}

	moved := jobs[fromIdx]
	jobs = append(jobs[:fromIdx], jobs[fromIdx+1:]...)

	toIdx := *req.ToOrder
	if toIdx < 0 {
		toIdx = 0
	}
	if toIdx > len(jobs) {
		toIdx = len(jobs)
	}
	jobs = append(jobs[:toIdx], append([]models.Job{moved}, jobs[toIdx:]...)...)

	for i := range jobs {
		jobs[i].Order = i
	}

	if err := h.repo.SaveOrders(c.Request.Context(), jobs); err != nil {
		h.logger.Error("Failed to save reorder", logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to reorder jobs")
		return
	}

	h.logger.Info("Jobs reordered",
		logger.String("job_id", moved.ID),
		logger.Int("from", *req.FromOrder),
		logger.Int("to", *req.ToOrder),
	)
	h.publisher.PublishAsync(events.Event{
		EventType: events.JobsReordered,
		RecordID:  moved.ID,
		Payload: events.ReorderPayload{
			JobID:     moved.ID,
			FromOrder: *req.FromOrder,
			ToOrder:   *req.ToOrder,
		},
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}
