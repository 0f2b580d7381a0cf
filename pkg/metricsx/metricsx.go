// Package metricsx exposes the service's Prometheus metrics.
//
// A nil *Metrics is valid and records nothing, so callers never need to
// guard metric calls.
package metricsx

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "entrabackup"

// Metrics holds every collector and the registry they are registered on.
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight        prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	backupsTotal        *prometheus.CounterVec
	lastBackupUsers     prometheus.Gauge
	restoredUsersTotal  prometheus.Counter
	webhookEventsTotal  *prometheus.CounterVec
	webhookRejectsTotal *prometheus.CounterVec
	tokenRefreshesTotal *prometheus.CounterVec
}

// New creates the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),

		backupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backups_total",
			Help:      "Directory backups attempted, by result.",
		}, []string{"result"}),
		lastBackupUsers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_backup_users",
			Help:      "Number of users in the most recent successful backup.",
		}),
		restoredUsersTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "restored_users_total",
			Help:      "Users successfully recreated by restores.",
		}),
		webhookEventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_events_total",
			Help:      "Change notification events recorded, by event type.",
		}, []string{"event_type"}),
		webhookRejectsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_rejections_total",
			Help:      "Change notification requests rejected, by reason.",
		}, []string{"reason"}),
		tokenRefreshesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_refreshes_total",
			Help:      "Client-credentials token exchanges, by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpInFlight,
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.backupsTotal,
		m.lastBackupUsers,
		m.restoredUsersTotal,
		m.webhookEventsTotal,
		m.webhookRejectsTotal,
		m.tokenRefreshesTotal,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Instrument records request count, latency and in-flight requests. It labels
// by the matched ServeMux pattern, so it must wrap the mux directly.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(sw.code)

		m.httpRequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
		m.httpRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
	})
}

// BackupCompleted records a backup attempt. users is ignored on failure.
func (m *Metrics) BackupCompleted(users int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.backupsTotal.WithLabelValues("error").Inc()
		return
	}
	m.backupsTotal.WithLabelValues("success").Inc()
	m.lastBackupUsers.Set(float64(users))
}

// UsersRestored adds to the count of recreated users.
func (m *Metrics) UsersRestored(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.restoredUsersTotal.Add(float64(n))
}

// WebhookEvent records one persisted notification event.
func (m *Metrics) WebhookEvent(eventType string) {
	if m == nil {
		return
	}
	m.webhookEventsTotal.WithLabelValues(eventType).Inc()
}

// WebhookRejected records a notification request turned away.
func (m *Metrics) WebhookRejected(reason string) {
	if m == nil {
		return
	}
	m.webhookRejectsTotal.WithLabelValues(reason).Inc()
}

// TokenRefreshed records a token exchange outcome.
func (m *Metrics) TokenRefreshed(err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.tokenRefreshesTotal.WithLabelValues(result).Inc()
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
