package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "team_management"

// Metrics owns a private registry and the service collectors.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	operations         *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	membersByRole      *prometheus.GaugeVec
}

// New creates the collectors and registers them with the Go and process collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "team_member_operations_total",
			Help:      "Team member operations by kind and outcome.",
		}, []string{"operation", "outcome"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Rejected writes by offending field.",
		}, []string{"field"}),
		membersByRole: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "team_members",
			Help:      "Stored team members by role.",
		}, []string{"role"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.operations,
		m.validationFailures,
		m.membersByRole,
	)
	return m
}

// Registry returns the prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// ObserveRequest records one served HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, latency time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(latency.Seconds())
}

// RecordOperation counts a usecase call and its outcome
func (m *Metrics) RecordOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
}

// RecordValidationFailure counts a write rejected by the validator
func (m *Metrics) RecordValidationFailure(field string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(field).Inc()
}

// SetRoleCounts replaces the per-role gauge values
func (m *Metrics) SetRoleCounts(counts map[string]int64) {
	if m == nil {
		return
	}
	m.membersByRole.Reset()
	for role, count := range counts {
		m.membersByRole.WithLabelValues(role).Set(float64(count))
	}
}
