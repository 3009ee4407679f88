// Package metrics exposes prometheus instrumentation for the gateway. A
// private registry keeps the scrape surface limited to what this process
// registers.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type GatewayMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	providerCallsTotal   *prometheus.CounterVec
	providerCallDuration *prometheus.HistogramVec

	uploadsTotal          *prometheus.CounterVec
	classifyFallbackTotal *prometheus.CounterVec
	enrichmentsTotal      *prometheus.CounterVec
}

func NewGatewayMetrics(service string) *GatewayMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cvg",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cvg",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "cvg",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	providerCallsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cvg",
			Subsystem: "provider",
			Name:      "calls_total",
			Help:      "Total upstream analysis calls by operation and outcome.",
		},
		[]string{"service", "operation", "outcome"},
	)
	providerCallDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cvg",
			Subsystem: "provider",
			Name:      "call_duration_seconds",
			Help:      "Upstream analysis call duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"service", "operation"},
	)
	uploadsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cvg",
			Subsystem: "vault",
			Name:      "uploads_total",
			Help:      "Total file uploads by outcome.",
		},
		[]string{"service", "outcome"},
	)
	classifyFallbackTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cvg",
			Subsystem: "classify",
			Name:      "fallback_total",
			Help:      "Total classifications resolved by the filename heuristic instead of the provider.",
		},
		[]string{"service"},
	)
	enrichmentsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cvg",
			Subsystem: "classify",
			Name:      "enrichments_total",
			Help:      "Total worker enrichment runs by outcome.",
		},
		[]string{"service", "outcome"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		providerCallsTotal,
		providerCallDuration,
		uploadsTotal,
		classifyFallbackTotal,
		enrichmentsTotal,
	)

	return &GatewayMetrics{
		registry:              registry,
		requestTotal:          requestTotal,
		requestDuration:       requestDuration,
		requestInFlight:       requestInFlight,
		providerCallsTotal:    providerCallsTotal,
		providerCallDuration:  providerCallDuration,
		uploadsTotal:          uploadsTotal,
		classifyFallbackTotal: classifyFallbackTotal,
		enrichmentsTotal:      enrichmentsTotal,
	}
}

func (m *GatewayMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *GatewayMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath collapses per-resource ids so the path label stays bounded.
func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/files/delete/"):
		return "/api/files/delete/{id}"
	case strings.HasPrefix(path, "/api/files/find/"):
		return "/api/files/find/{id}"
	case strings.HasPrefix(path, "/api/files/preview/"):
		return "/api/files/preview/{id}"
	case strings.HasPrefix(path, "/api/files/download/"):
		return "/api/files/download/{id}"
	case strings.HasPrefix(path, "/api/files/findByUsername/"):
		return "/api/files/findByUsername/{username}"
	case strings.HasPrefix(path, "/data/"):
		return "/data/{username}"
	default:
		return path
	}
}

func (m *GatewayMetrics) RecordProviderCall(service, operation, outcome string, duration time.Duration) {
	m.providerCallsTotal.WithLabelValues(service, operation, outcome).Inc()
	m.providerCallDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

func (m *GatewayMetrics) RecordUpload(service, outcome string) {
	m.uploadsTotal.WithLabelValues(service, outcome).Inc()
}

func (m *GatewayMetrics) RecordClassifyFallback(service string) {
	m.classifyFallbackTotal.WithLabelValues(service).Inc()
}

func (m *GatewayMetrics) RecordEnrichment(service, outcome string) {
	m.enrichmentsTotal.WithLabelValues(service, outcome).Inc()
}

type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
