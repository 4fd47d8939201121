// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the relay.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LLMBuckets spans typical chat completion latencies, from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

var (
	// RequestsTotal counts inbound HTTP requests by route and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_relay_requests_total",
			Help: "Inbound requests",
		},
		[]string{"route", "status"},
	)

	// ProviderRequestsTotal counts upstream calls by provider, outcome and
	// upstream HTTP status ("0" when no response arrived).
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_relay_provider_requests_total",
			Help: "Provider requests",
		},
		[]string{"provider", "outcome", "status"},
	)

	// ProviderLatency records upstream round-trip time in seconds.
	ProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_relay_provider_latency_seconds",
			Help:    "Provider latency",
			Buckets: LLMBuckets,
		},
		[]string{"provider"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		ProviderRequestsTotal,
		ProviderLatency,
	)
}

// ObserveProviderCall records one upstream call.
func ObserveProviderCall(provider, outcome string, status int, d time.Duration) {
	ProviderRequestsTotal.WithLabelValues(provider, outcome, strconv.Itoa(status)).Inc()
	ProviderLatency.WithLabelValues(provider).Observe(d.Seconds())
}

// MetricsMiddleware counts requests served by next under the given route label.
func MetricsMiddleware(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		RequestsTotal.WithLabelValues(route, strconv.Itoa(sw.status/100)+"xx").Inc()
	})
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.written {
		w.status = status
		w.written = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.written = true
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
