package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes Prometheus instruments for the dashboard service.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	httpErrors       *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
	optionsCache     *prometheus.CounterVec
	deadlines        *prometheus.CounterVec
}

// NewMetrics builds and registers all instruments on a private registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stacktrack_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stacktrack_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		httpErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stacktrack_http_errors_total",
			Help: "Request errors by route, method and error code.",
		}, []string{"route", "method", "code"}),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stacktrack_upstream_requests_total",
			Help: "Upstream API calls by operation and status.",
		}, []string{"operation", "status"}),
		optionsCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stacktrack_options_cache_total",
			Help: "Option catalog cache lookups by result.",
		}, []string{"result"}),
		deadlines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stacktrack_deadlines_computed_total",
			Help: "Deadline engine invocations by outcome.",
		}, []string{"outcome"}),
	}
	registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.httpErrors,
		m.upstreamRequests,
		m.optionsCache,
		m.deadlines,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler returns the scrape endpoint handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordRequest observes a completed HTTP request.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError counts a request that ended in a domain error.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.httpErrors.WithLabelValues(route, method, code).Inc()
}

// RecordUpstream counts an upstream API call.
func (m *Metrics) RecordUpstream(operation string, status int) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(operation, strconv.Itoa(status)).Inc()
}

// RecordOptionsCache counts an option catalog cache lookup outcome
// (hit, miss or error).
func (m *Metrics) RecordOptionsCache(result string) {
	if m == nil {
		return
	}
	m.optionsCache.WithLabelValues(result).Inc()
}

// RecordDeadline counts a deadline computation outcome (computed or none).
func (m *Metrics) RecordDeadline(outcome string) {
	if m == nil {
		return
	}
	m.deadlines.WithLabelValues(outcome).Inc()
}
