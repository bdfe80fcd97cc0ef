package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hirepipe/hirepipe/internal/events"
	"github.com/hirepipe/hirepipe/internal/logger"
	"github.com/hirepipe/hirepipe/internal/metrics"
	"github.com/hirepipe/hirepipe/internal/models"
	"github.com/hirepipe/hirepipe/internal/repository"
	"github.com/hirepipe/hirepipe/internal/simnet"
)

type CandidateHandler struct {
	repo      *repository.CandidateRepository
	notes     *repository.NoteRepository
	timeline  *repository.TimelineRepository
	injector  *simnet.Injector
	metrics   *metrics.Metrics
	publisher *events.Publisher
	logger    logger.Logger
}

func NewCandidateHandler(
	repo *repository.CandidateRepository,
	notes *repository.NoteRepository,
	timeline *repository.TimelineRepository,
	injector *simnet.Injector,
	m *metrics.Metrics,
	publisher *events.Publisher,
	log logger.Logger,
) *CandidateHandler {
	return &CandidateHandler{
		repo:      repo,
		notes:     notes,
		timeline:  timeline,
		injector:  injector,
		metrics:   m,
		publisher: publisher,
		logger:    log,
	}
}

// candidateView adds the currentStage alias the board UI reads. The alias is
// computed here; the stored record only ever carries stage.
type candidateView struct {
	models.Candidate
	CurrentStage models.Stage `json:"currentStage"`
}

func viewOf(c models.Candidate) candidateView {
	return candidateView{Candidate: c, CurrentStage: c.Stage}
}

// List serves GET /api/candidates with search, stage, job, and company
// filters.
func (h *CandidateHandler) List(c *gin.Context) {
	filter := repository.CandidateListFilter{
		Search:   c.Query("search"),
		Stage:    c.Query("stage"),
		JobID:    c.Query("jobId"),
		Company:  c.Query("company"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "pageSize", 20),
	}

	candidates, total, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list candidates", logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to list candidates")
		return
	}

	views := make([]candidateView, 0, len(candidates))
	for _, candidate := range candidates {
		views = append(views, viewOf(candidate))
	}

	c.JSON(http.StatusOK, gin.H{
		"candidates": views,
		"total":      total,
		"page":       filter.Page,
		"pageSize":   filter.PageSize,
	})
}

type createCandidateRequest struct {
	Name     *string       `json:"name"`
	Stage    *models.Stage `json:"stage"`
	Email    string        `json:"email"`
	Phone    string        `json:"phone"`
	Company  string        `json:"company"`
	JobTitle string        `json:"jobTitle"`
	JobID    string        `json:"jobId"`
}

// Create serves POST /api/candidates. Name and stage are required; the
// application timestamp is always server-assigned.
func (h *CandidateHandler) Create(c *gin.Context) {
	if h.injector.FailWrite() {
		h.metrics.InjectedFailures.WithLabelValues("create_candidate").Inc()
		failInjected(c, "Failed to create candidate")
		return
	}

	var req createCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == nil || req.Stage == nil {
		errorResponse(c, http.StatusBadRequest, "Invalid candidate data")
		return
	}

	candidate := models.Candidate{
		Name:      *req.Name,
		Stage:     *req.Stage,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		JobTitle:  req.JobTitle,
		JobID:     req.JobID,
		AppliedAt: models.NowMillis(),
	}

	if err := h.repo.Create(c.Request.Context(), &candidate); err != nil {
		h.logger.Error("Failed to create candidate", logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to create candidate")
		return
	}

	h.logger.Info("Candidate created",
		logger.String("candidate_id", candidate.ID),
		logger.String("stage", string(candidate.Stage)),
	)
	h.publisher.PublishAsync(events.Event{
		EventType: events.CandidateNew,
		RecordID:  candidate.ID,
	})

	c.JSON(http.StatusCreated, viewOf(candidate))
}

// statusHistoryEntry is one step of the candidate detail's pipeline history,
// projected from the timeline at read time.
type statusHistoryEntry struct {
	ID           string        `json:"id"`
	Stage        models.Stage  `json:"stage"`
	Timestamp    models.Millis `json:"timestamp"`
	Note         string        `json:"note,omitempty"`
	StatusNumber *int          `json:"statusNumber,omitempty"`
}

// GetByID serves GET /api/candidates/:id: the record plus its notes and a
// status history projected from timeline events.
func (h *CandidateHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	candidate, err := h.repo.GetByID(ctx, id)
	if err != nil {
		h.logger.Error("Failed to read candidate", logger.String("candidate_id", id), logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to read candidate")
		return
	}
	if candidate == nil {
		errorResponse(c, http.StatusNotFound, "Candidate not found")
		return
	}

	notes, err := h.notes.ListByCandidate(ctx, id)
	if err != nil {
		h.logger.Error("Failed to read candidate notes", logger.String("candidate_id", id), logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to read candidate")
		return
	}

	timeline, err := h.timeline.ListByCandidate(ctx, id)
	if err != nil {
		h.logger.Error("Failed to read candidate timeline", logger.String("candidate_id", id), logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to read candidate")
		return
	}

	history := make([]statusHistoryEntry, 0, len(timeline))
	for _, event := range timeline {
		entry := statusHistoryEntry{
			ID:        event.ID,
			Stage:     candidate.Stage,
			Timestamp: event.Timestamp,
			Note:      event.Description,
		}
		if event.Metadata != nil {
			if stage := event.Metadata.ResultingStage(); stage != "" {
				entry.Stage = stage
			}
			n := statusNumberOf(event.Metadata)
			entry.StatusNumber = &n
		}
		history = append(history, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            candidate.ID,
		"name":          candidate.Name,
		"email":         candidate.Email,
		"phone":         candidate.Phone,
		"company":       candidate.Company,
		"jobTitle":      candidate.JobTitle,
		"jobId":         candidate.JobID,
		"stage":         candidate.Stage,
		"currentStage":  candidate.Stage,
		"appliedAt":     candidate.AppliedAt,
		"notes":         notes,
		"statusHistory": history,
	})
}

func statusNumberOf(meta models.EventMetadata) int {
	switch m := meta.(type) {
	case models.StageChangeMeta:
		return m.StatusNumber
	case models.InterviewScheduledMeta:
		return m.StatusNumber
	case models.AssessmentCompletedMeta:
		return m.StatusNumber
	case models.NoteAddedMeta:
		return m.StatusNumber
	default:
		return models.StatusNumber("")
	}
}

type noteInput struct {
	ID        string             `json:"id"`
	Content   string             `json:"content"`
	Mentions  models.StringArray `json:"mentions"`
	CreatedAt *models.Millis     `json:"createdAt"`
	CreatedBy string             `json:"createdBy"`
}

type updateCandidateRequest struct {
	Name     *string       `json:"name"`
	Email    *string       `json:"email"`
	Phone    *string       `json:"phone"`
	Company  *string       `json:"company"`
	JobTitle *string       `json:"jobTitle"`
	Stage    *models.Stage `json:"stage"`
	JobID    *string       `json:"jobId"`
	Notes    []noteInput   `json:"notes"`
}

// Update serves PATCH /api/candidates/:id. Provided fields merge into the
// stored record. A notes array rides along from older clients that stored
// notes on the candidate; unseen entries are persisted into the notes
// collection.
func (h *CandidateHandler) Update(c *gin.Context) {
	if h.injector.FailWrite() {
		h.metrics.InjectedFailures.WithLabelValues("update_candidate").Inc()
		failInjected(c, "Failed to update candidate")
		return
	}

	id := c.Param("id")
	ctx := c.Request.Context()

	var req updateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid update data")
		return
	}

	candidate, err := h.repo.GetByID(ctx, id)
	if err != nil {
		h.logger.Error("Failed to read candidate", logger.String("candidate_id", id), logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to update candidate")
		return
	}
	if candidate == nil {
		errorResponse(c, http.StatusNotFound, "Candidate not found")
		return
	}

	previousStage := candidate.Stage

	if req.Name != nil {
		candidate.Name = *req.Name
	}
	if req.Email != nil {
		candidate.Email = *req.Email
	}
	if req.Phone != nil {
		candidate.Phone = *req.Phone
	}
	if req.Company != nil {
		candidate.Company = *req.Company
	}
	if req.JobTitle != nil {
		candidate.JobTitle = *req.JobTitle
	}
	if req.Stage != nil {
		candidate.Stage = *req.Stage
	}
	if req.JobID != nil {
		candidate.JobID = *req.JobID
	}

	if err := h.repo.Update(ctx, candidate); err != nil {
		h.logger.Error("Failed to update candidate", logger.String("candidate_id", id), logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to update candidate")
		return
	}

	if len(req.Notes) > 0 {
		h.persistNewNotes(c, candidate.ID, req.Notes)
	}

	event := events.Event{
		EventType: events.CandidateMoved,
		RecordID:  candidate.ID,
	}
	if candidate.Stage != previousStage {
		event.Payload = events.StageChangePayload{
			FromStage: previousStage,
			ToStage:   candidate.Stage,
		}
	}
	h.publisher.PublishAsync(event)

	c.JSON(http.StatusOK, viewOf(*candidate))
}

func (h *CandidateHandler) persistNewNotes(c *gin.Context, candidateID string, inputs []noteInput) {
	ctx := c.Request.Context()

	existing, err := h.notes.ListByCandidate(ctx, candidateID)
	if err != nil {
		h.logger.Error("Failed to read notes for merge", logger.String("candidate_id", candidateID), logger.Error(err))
		return
	}
	seen := make(map[string]struct{}, len(existing))
	for _, n := range existing {
		seen[n.ID] = struct{}{}
	}

	for _, input := range inputs {
		if input.Content == "" {
			continue
		}
		if _, ok := seen[input.ID]; ok {
			continue
		}
		note := models.Note{
			ID:          input.ID,
			CandidateID: candidateID,
			Content:     input.Content,
			Mentions:    input.Mentions,
			CreatedBy:   input.CreatedBy,
		}
		if input.CreatedAt != nil {
			note.CreatedAt = *input.CreatedAt
		}
		if err := h.notes.Create(ctx, &note); err != nil {
			h.logger.Error("Failed to persist note",
				logger.String("candidate_id", candidateID),
				logger.Error(err),
			)
		}
	}
}

// timelineEntry is the wire shape of GET /api/candidates/:id/timeline. Stage
// falls back to the event description when the event has no stage of its
// own, matching what the activity feed has always rendered.
type timelineEntry struct {
	ID        string        `json:"id"`
	Stage     *string       `json:"stage"`
	Timestamp models.Millis `json:"timestamp"`
	Note      string        `json:"note,omitempty"`
	Metadata  any           `json:"metadata"`
}

// Timeline serves GET /api/candidates/:id/timeline. A candidate with no
// recorded events gets a single synthetic application entry.
func (h *CandidateHandler) Timeline(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	candidate, err := h.repo.GetByID(ctx, id)
	if err != nil {
		h.logger.Error("Failed to read candidate", logger.String("candidate_id", id), logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to read timeline")
		return
	}
	if candidate == nil {
		errorResponse(c, http.StatusNotFound, "Candidate not found")
		return
	}

	eventList, err := h.timeline.ListByCandidate(ctx, id)
	if err != nil {
		h.logger.Error("Failed to read timeline", logger.String("candidate_id", id), logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to read timeline")
		return
	}

	if len(eventList) == 0 {
		stage := string(candidate.Stage)
		c.JSON(http.StatusOK, gin.H{
			"candidateId": id,
			"timeline": []timelineEntry{{
				ID:        "applied",
				Stage:     &stage,
				Timestamp: candidate.AppliedAt,
				Metadata:  gin.H{},
			}},
		})
		return
	}

	entries := make([]timelineEntry, 0, len(eventList))
	for _, event := range eventList {
		entry := timelineEntry{
			ID:        event.ID,
			Timestamp: event.Timestamp,
			Note:      event.Description,
			Metadata:  gin.H{},
		}
		stage := ""
		if event.Metadata != nil {
			entry.Metadata = event.Metadata
			stage = string(event.Metadata.ResultingStage())
		}
		if stage == "" {
			stage = event.Description
		}
		if stage != "" {
			entry.Stage = &stage
		}
		entries = append(entries, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"candidateId": id,
		"timeline":    entries,
	})
}
