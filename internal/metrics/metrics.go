// Package metrics exposes portal counters to prometheus. A nil *Metrics is
// valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "internhub"

type Metrics struct {
	registry *prometheus.Registry

	guardDecisions  *prometheus.CounterVec
	authOperations  *prometheus.CounterVec
	backendRequests *prometheus.HistogramVec
	httpRequests    *prometheus.HistogramVec
}

func New() (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		guardDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guard_decisions_total",
			Help:      "Route guard outcomes by route pattern and decision.",
		}, []string{"route", "decision"}),
		authOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_operations_total",
			Help:      "Session lifecycle operations by outcome.",
		}, []string{"operation", "outcome"}),
		backendRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Backend API call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "status"}),
		httpRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Portal request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}

	for _, c := range []prometheus.Collector{
		m.guardDecisions,
		m.authOperations,
		m.backendRequests,
		m.httpRequests,
		collectors.NewGoCollector(),
	} {
		if err := m.registry.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

func (m *Metrics) ObserveGuard(route, decision string) {
	if m == nil {
		return
	}
	m.guardDecisions.WithLabelValues(route, decision).Inc()
}

func (m *Metrics) ObserveAuth(operation, outcome string) {
	if m == nil {
		return
	}
	m.authOperations.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) ObserveRequest(method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.backendRequests.WithLabelValues(method, strconv.Itoa(status)).Observe(d.Seconds())
}

func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpRequests.WithLabelValues(r.Method, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}
