package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	segmentPreviews = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "segment_previews_total",
			Help: "Total number of segment preview evaluations",
		},
	)

	automationTriggers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "automation_triggers_total",
			Help: "Total number of automation trigger events published",
		},
		[]string{"trigger_type"},
	)

	automationSteps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "automation_steps_executed_total",
			Help: "Total number of automation steps executed",
		},
		[]string{"step_type", "status"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordSegmentPreview() {
	segmentPreviews.Inc()
}

func RecordAutomationTrigger(triggerType string) {
	automationTriggers.WithLabelValues(triggerType).Inc()
}

func RecordStepExecuted(stepType, status string) {
	automationSteps.WithLabelValues(stepType, status).Inc()
}
