package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errors          *prometheus.CounterVec
	messages        *prometheus.CounterVec
	matches         *prometheus.CounterVec
	cache           *prometheus.CounterVec
	rateLimitHits   *prometheus.CounterVec
}

// NewMetrics registers all collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchstack_http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "matchstack_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"method", "path"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchstack_http_errors_total",
			Help: "Total error responses by domain code",
		}, []string{"method", "path", "code"}),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchstack_messages_total",
			Help: "Conversation messages by sender role and outcome",
		}, []string{"role", "outcome"}),
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchstack_matches_total",
			Help: "Match upserts by resulting status and whether a row was created",
		}, []string{"status", "created"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchstack_cache_lookups_total",
			Help: "Cache lookups by cache name and result",
		}, []string{"cache", "result"}),
		rateLimitHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchstack_rate_limit_hits_total",
			Help: "Requests rejected by the rate limiter",
		}, []string{"bucket"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.requestDuration, m.errors, m.messages, m.matches, m.cache, m.rateLimitHits,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordRequest counts one served request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordError counts an error response by its domain code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(method, path, code).Inc()
}

// RecordMessage counts a message write attempt.
func (m *Metrics) RecordMessage(role string, ok bool) {
	if m == nil {
		return
	}
	outcome := "sent"
	if !ok {
		outcome = "failed"
	}
	m.messages.WithLabelValues(role, outcome).Inc()
}

// RecordMatch counts a match upsert.
func (m *Metrics) RecordMatch(status string, created bool) {
	if m == nil {
		return
	}
	m.matches.WithLabelValues(status, strconv.FormatBool(created)).Inc()
}

// RecordCache counts a cache lookup.
func (m *Metrics) RecordCache(cache string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cache.WithLabelValues(cache, result).Inc()
}

// RecordRateLimitHit counts a rejected request.
func (m *Metrics) RecordRateLimitHit(bucket string) {
	if m == nil {
		return
	}
	m.rateLimitHits.WithLabelValues(bucket).Inc()
}
