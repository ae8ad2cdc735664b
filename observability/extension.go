// Package observability provides a metrics extension for Momentum that
// records lifecycle event counts via Prometheus, plus HTTP middleware for
// request metrics.
package observability

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/momentumhq/momentum/id"
	"github.com/momentumhq/momentum/mood"
	"github.com/momentumhq/momentum/plugin"
	"github.com/momentumhq/momentum/pomodoro"
	"github.com/momentumhq/momentum/reward"
	"github.com/momentumhq/momentum/task"
	"github.com/momentumhq/momentum/user"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin             = (*MetricsExtension)(nil)
	_ plugin.OnInit             = (*MetricsExtension)(nil)
	_ plugin.OnUserRegistered   = (*MetricsExtension)(nil)
	_ plugin.OnTaskCompleted    = (*MetricsExtension)(nil)
	_ plugin.OnSessionCompleted = (*MetricsExtension)(nil)
	_ plugin.OnMoodLogged       = (*MetricsExtension)(nil)
	_ plugin.OnPointsCredited   = (*MetricsExtension)(nil)
	_ plugin.OnPurchaseMade     = (*MetricsExtension)(nil)
	_ plugin.OnPurchaseDeclined = (*MetricsExtension)(nil)
)

// MetricsExtension records system-wide lifecycle metrics.
// Register it as an Engine plugin to track productivity and ledger metrics.
type MetricsExtension struct {
	registry *prometheus.Registry

	// Account metrics
	UsersRegistered prometheus.Counter

	// Productivity metrics
	TasksCompleted    prometheus.Counter
	SessionsCompleted prometheus.Counter
	FocusMinutes      prometheus.Counter
	MoodsLogged       *prometheus.CounterVec

	// Ledger metrics
	PointsCredited    *prometheus.CounterVec
	PurchasesMade     *prometheus.CounterVec
	PurchasesDeclined prometheus.Counter
	PurchaseCost      prometheus.Histogram

	// HTTP metrics
	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewMetricsExtension creates a MetricsExtension with its own registry,
// including process and Go runtime collectors.
func NewMetricsExtension() *MetricsExtension {
	m := &MetricsExtension{
		registry: prometheus.NewRegistry(),

		UsersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "momentum",
			Subsystem: "accounts",
			Name:      "registered_total",
			Help:      "Total number of accounts registered.",
		}),

		TasksCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "momentum",
			Subsystem: "tasks",
			Name:      "completed_total",
			Help:      "Total number of tasks completed.",
		}),
		SessionsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "momentum",
			Subsystem: "sessions",
			Name:      "completed_total",
			Help:      "Total number of focus sessions that ended.",
		}),
		FocusMinutes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "momentum",
			Subsystem: "sessions",
			Name:      "focus_minutes_total",
			Help:      "Total focused minutes across completed sessions.",
		}),
		MoodsLogged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "momentum",
			Subsystem: "moods",
			Name:      "logged_total",
			Help:      "Total number of mood log entries.",
		}, []string{"mood"}),

		PointsCredited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "momentum",
			Subsystem: "ledger",
			Name:      "points_credited_total",
			Help:      "Total reward points credited.",
		}, []string{"reason"}),
		PurchasesMade: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "momentum",
			Subsystem: "ledger",
			Name:      "purchases_total",
			Help:      "Total purchases committed.",
		}, []string{"category"}),
		PurchasesDeclined: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "momentum",
			Subsystem: "ledger",
			Name:      "purchases_declined_total",
			Help:      "Total purchases declined for insufficient balance.",
		}),
		PurchaseCost: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "momentum",
			Subsystem: "ledger",
			Name:      "purchase_cost",
			Help:      "Point cost of committed purchases.",
			Buckets:   prometheus.ExponentialBuckets(5, 2, 8), // 5 to ~640 points
		}),

		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "momentum",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "momentum",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "momentum",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		}, []string{"method", "path"}),
	}

	m.registry.MustRegister(
		m.UsersRegistered,
		m.TasksCompleted,
		m.SessionsCompleted,
		m.FocusMinutes,
		m.MoodsLogged,
		m.PointsCredited,
		m.PurchasesMade,
		m.PurchasesDeclined,
		m.PurchaseCost,
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)

	return m
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ any) error {
	return nil
}

// Handler returns an HTTP handler exposing the registered metrics.
func (m *MetricsExtension) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnUserRegistered implements plugin.OnUserRegistered.
func (m *MetricsExtension) OnUserRegistered(_ context.Context, _ *user.User) error {
	m.UsersRegistered.Inc()
	return nil
}

// OnTaskCompleted implements plugin.OnTaskCompleted.
func (m *MetricsExtension) OnTaskCompleted(_ context.Context, _ *task.Task) error {
	m.TasksCompleted.Inc()
	return nil
}

// OnSessionCompleted implements plugin.OnSessionCompleted.
func (m *MetricsExtension) OnSessionCompleted(_ context.Context, s *pomodoro.Session) error {
	m.SessionsCompleted.Inc()
	if s.Status == pomodoro.StatusCompleted {
		m.FocusMinutes.Add(float64(s.FocusMinutes))
	}
	return nil
}

// OnMoodLogged implements plugin.OnMoodLogged.
func (m *MetricsExtension) OnMoodLogged(_ context.Context, e *mood.Entry) error {
	m.MoodsLogged.WithLabelValues(string(e.Mood)).Inc()
	return nil
}

// OnPointsCredited implements plugin.OnPointsCredited.
func (m *MetricsExtension) OnPointsCredited(_ context.Context, _ id.UserID, amount, _ int64, reason string) error {
	m.PointsCredited.WithLabelValues(reason).Add(float64(amount))
	return nil
}

// OnPurchaseMade implements plugin.OnPurchaseMade.
func (m *MetricsExtension) OnPurchaseMade(_ context.Context, r *reward.Receipt) error {
	m.PurchasesMade.WithLabelValues(string(r.Purchase.Category)).Inc()
	m.PurchaseCost.Observe(float64(r.Purchase.Cost))
	return nil
}

// OnPurchaseDeclined implements plugin.OnPurchaseDeclined.
func (m *MetricsExtension) OnPurchaseDeclined(_ context.Context, _ id.UserID, _ string, _, _ int64) error {
	m.PurchasesDeclined.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// HTTP middleware
// ──────────────────────────────────────────────────

// InstrumentHandler wraps the provided handler with HTTP metrics collection.
func (m *MetricsExtension) InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		path := canonicalPath(r.URL.Path)
		method := strings.ToUpper(r.Method)

		m.httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		m.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// canonicalPath collapses resource IDs so the path label stays low
// cardinality.
func canonicalPath(raw string) string {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	parts := strings.Split(trimmed, "/")
	// /v1/tasks/task_xxx -> /v1/tasks/:id
	if len(parts) >= 3 && parts[0] == "v1" {
		return "/" + parts[0] + "/" + parts[1] + "/:id"
	}
	if len(parts) >= 2 && parts[0] == "v1" {
		return "/" + parts[0] + "/" + parts[1]
	}
	return "/" + parts[0]
}
