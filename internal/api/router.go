// Package api wires the gin router: middleware, health and metrics
// endpoints, and the /api route groups.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hirepipe/hirepipe/internal/handlers"
	"github.com/hirepipe/hirepipe/internal/logger"
	"github.com/hirepipe/hirepipe/internal/metrics"
	"github.com/hirepipe/hirepipe/internal/simnet"
)

const corsMaxAgeHours = 12

// Handlers carries the per-entity handlers the router mounts.
type Handlers struct {
	Jobs        *handlers.JobHandler
	Candidates  *handlers.CandidateHandler
	Assessments *handlers.AssessmentHandler
	Admin       *handlers.AdminHandler
}

func NewRouter(h Handlers, injector *simnet.Injector, m *metrics.Metrics, corsOrigins []string, log logger.Logger) *gin.Engine {
	router := gin.New()

	// CORS middleware - must be first
	router.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"X-CSRF-Token", "Authorization", "accept", "origin",
			"Cache-Control", "X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           corsMaxAgeHours * time.Hour,
	}))

	router.Use(ginLogger(log))
	router.Use(gin.Recovery())
	router.Use(m.Middleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	api := router.Group("/api")
	api.Use(simnetDelay(injector))

	jobs := api.Group("/jobs")
	jobs.GET("", h.Jobs.List)
	jobs.POST("", h.Jobs.Create)
	jobs.GET("/:id", h.Jobs.GetByID)
	jobs.PATCH("/:id", h.Jobs.Update)
	jobs.PATCH("/:id/reorder", h.Jobs.Reorder)

	candidates := api.Group("/candidates")
	candidates.GET("", h.Candidates.List)
	candidates.POST("", h.Candidates.Create)
	candidates.GET("/:id", h.Candidates.GetByID)
	candidates.PATCH("/:id", h.Candidates.Update)
	candidates.GET("/:id/timeline", h.Candidates.Timeline)

	assessments := api.Group("/assessments")
	assessments.GET("/:jobId", h.Assessments.GetByJob)
	assessments.PUT("/:jobId", h.Assessments.Save)
	assessments.POST("/:jobId/submit", h.Assessments.Submit)

	admin := api.Group("/admin")
	admin.GET("/stats", h.Admin.Stats)
	admin.POST("/reseed", h.Admin.Reseed)
	admin.POST("/backfill", h.Admin.Backfill)

	return router
}

// simnetDelay stalls every API request by the injector's random latency.
func simnetDelay(injector *simnet.Injector) gin.HandlerFunc {
	return func(c *gin.Context) {
		injector.Delay(c.Request.Context())
		c.Next()
	}
}

func ginLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		log.Info("HTTP request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status_code", statusCode),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("duration", duration),
		)
	}
}
