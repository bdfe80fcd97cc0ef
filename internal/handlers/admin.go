package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hirepipe/hirepipe/internal/events"
	"github.com/hirepipe/hirepipe/internal/logger"
	"github.com/hirepipe/hirepipe/internal/metrics"
	"github.com/hirepipe/hirepipe/internal/repository"
	"github.com/hirepipe/hirepipe/internal/seed"
)

// AdminHandler serves the data-debug endpoints: collection stats, the
// destructive reseed, and the timeline backfill. These skip fault injection;
// an operator poking the store wants real answers.
type AdminHandler struct {
	admin        *repository.AdminRepository
	orchestrator *seed.Orchestrator
	metrics      *metrics.Metrics
	publisher    *events.Publisher
	logger       logger.Logger
}

func NewAdminHandler(
	admin *repository.AdminRepository,
	orchestrator *seed.Orchestrator,
	m *metrics.Metrics,
	publisher *events.Publisher,
	log logger.Logger,
) *AdminHandler {
	return &AdminHandler{
		admin:        admin,
		orchestrator: orchestrator,
		metrics:      m,
		publisher:    publisher,
		logger:       log,
	}
}

// Stats serves GET /api/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.admin.Counts(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to count records", logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to read stats")
		return
	}

	h.metrics.RecordCount.WithLabelValues("jobs").Set(float64(stats.Jobs))
	h.metrics.RecordCount.WithLabelValues("candidates").Set(float64(stats.Candidates))
	h.metrics.RecordCount.WithLabelValues("assessments").Set(float64(stats.Assessments))
	h.metrics.RecordCount.WithLabelValues("submissions").Set(float64(stats.Submissions))
	h.metrics.RecordCount.WithLabelValues("notes").Set(float64(stats.Notes))
	h.metrics.RecordCount.WithLabelValues("timeline").Set(float64(stats.Timeline))

	c.JSON(http.StatusOK, stats)
}

// Reseed serves POST /api/admin/reseed: wipe everything and seed from
// scratch. Unlike startup seeding, failures surface to the caller.
func (h *AdminHandler) Reseed(c *gin.Context) {
	if err := h.orchestrator.Reseed(c.Request.Context()); err != nil {
		h.logger.Error("Reseed failed", logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to reseed store")
		return
	}

	stats, err := h.admin.Counts(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to count records after reseed", logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to read stats")
		return
	}

	h.metrics.SeededRecords.WithLabelValues("jobs").Add(float64(stats.Jobs))
	h.metrics.SeededRecords.WithLabelValues("candidates").Add(float64(stats.Candidates))
	h.metrics.SeededRecords.WithLabelValues("assessments").Add(float64(stats.Assessments))

	h.publisher.PublishAsync(events.Event{EventType: events.StoreReseeded})

	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

// Backfill serves POST /api/admin/backfill. Without force=true it only runs
// against an empty timeline.
func (h *AdminHandler) Backfill(c *gin.Context) {
	force, _ := strconv.ParseBool(c.Query("force"))

	notes, timeline, err := h.orchestrator.BackfillTimelines(c.Request.Context(), force)
	if err != nil {
		h.logger.Error("Backfill failed", logger.Error(err))
		errorResponse(c, http.StatusInternalServerError, "Failed to backfill timelines")
		return
	}

	c.JSON(http.StatusOK, gin.H{"notes": notes, "timeline": timeline})
}
