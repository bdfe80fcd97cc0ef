// Package metrics exports Prometheus metrics for the API: request counts and
// latencies, injected fault counts, and seeded record totals.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the tracker's Prometheus collectors. Each instance carries
// its own registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	InjectedFailures *prometheus.CounterVec
	SeededRecords    *prometheus.CounterVec
	RecordCount      *prometheus.GaugeVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hirepipe_http_requests_total",
			Help: "Total HTTP requests by method, route, and status",
		}, []string{"method", "route", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hirepipe_http_request_duration_seconds",
			Help:    "HTTP request latency, injected delay included",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 1.5, 2.5, 5.0},
		}, []string{"method", "route"}),

		InjectedFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hirepipe_injected_failures_total",
			Help: "Write failures injected by the fault layer",
		}, []string{"operation"}),

		SeededRecords: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hirepipe_seeded_records_total",
			Help: "Records created by the seed orchestrator",
		}, []string{"collection"}),

		RecordCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hirepipe_records",
			Help: "Current record count per collection",
		}, []string{"collection"}),
	}
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records count and latency for every routed request.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(
			c.Request.Method, route, strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, route).
			Observe(time.Since(start).Seconds())
	}
}
