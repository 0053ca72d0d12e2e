package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the gateway.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	agentDuration   *prometheus.HistogramVec
	agentFailures   *prometheus.CounterVec
	approvalsByTerm *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	agentDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agent_call_duration_seconds",
		Help:    "Duration of model calls per decision type",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"decision_type"})

	agentFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agent_failures_total",
		Help: "Total failed model calls per decision type",
	}, []string{"decision_type", "reason"})

	approvalsByTerm := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "approval_reviews_total",
		Help: "Review decisions grouped by terminal status",
	}, []string{"status"})

	dbQueryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, agentDuration, agentFailures, approvalsByTerm, dbQueryDuration, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		agentDuration:   agentDuration,
		agentFailures:   agentFailures,
		approvalsByTerm: approvalsByTerm,
		dbQueryDuration: dbQueryDuration,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveAgentCall records model call timing per decision type.
func (m *MetricsService) ObserveAgentCall(decisionType string, duration time.Duration) {
	if m == nil {
		return
	}
	m.agentDuration.WithLabelValues(decisionType).Observe(duration.Seconds())
}

// RecordAgentFailure counts failed model calls.
func (m *MetricsService) RecordAgentFailure(decisionType, reason string) {
	if m == nil {
		return
	}
	m.agentFailures.WithLabelValues(decisionType, reason).Inc()
}

// RecordReview counts a terminal review decision.
func (m *MetricsService) RecordReview(status string) {
	if m == nil {
		return
	}
	m.approvalsByTerm.WithLabelValues(status).Inc()
}

// ObserveDBQuery records database query timing.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(label).Observe(duration.Seconds())
}
