// Package metrics provides Prometheus metrics for the scribe server.
package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scribe_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scribe_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// File operation metrics
	fileOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scribe_file_operations_total",
			Help: "Total file operations by outcome",
		},
		[]string{"operation", "result"},
	)

	bytesWrittenTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scribe_bytes_written_total",
			Help: "Total bytes of content written",
		},
	)

	tamperedReadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scribe_tampered_reads_total",
			Help: "Reads rejected because the signature did not match",
		},
	)

	prunedSignaturesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scribe_pruned_signatures_total",
			Help: "Orphaned signature files removed",
		},
	)

	// Auth metrics
	authAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scribe_auth_attempts_total",
			Help: "Total authentication attempts",
		},
		[]string{"result"},
	)

	// Event stream metrics
	eventStreamsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scribe_event_streams_active",
			Help: "Number of connected event stream clients",
		},
	)

	eventsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scribe_events_sent_total",
			Help: "Total change events sent to stream clients",
		},
		[]string{"type"},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records an HTTP request metric.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordOperation records a store operation ("list", "read", "write", "delete").
func RecordOperation(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	fileOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordBytesWritten records the size of newly written content.
func RecordBytesWritten(n int64) {
	bytesWrittenTotal.Add(float64(n))
}

// RecordTamperedRead records a read rejected by signature verification.
func RecordTamperedRead() {
	tamperedReadsTotal.Inc()
}

// RecordPruned records removed orphan signatures.
func RecordPruned(n int) {
	prunedSignaturesTotal.Add(float64(n))
}

// RecordAuthAttempt records an authentication attempt.
func RecordAuthAttempt(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	authAttemptsTotal.WithLabelValues(result).Inc()
}

// StreamOpened and StreamClosed track connected event stream clients.
func StreamOpened() { eventStreamsActive.Inc() }

func StreamClosed() { eventStreamsActive.Dec() }

// RecordEventSent records a change event delivered to a stream client.
func RecordEventSent(eventType string) {
	eventsSentTotal.WithLabelValues(eventType).Inc()
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack lets websocket upgrades pass through the middleware.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	rw.statusCode = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Middleware returns HTTP middleware that records request metrics.
// The route pattern is used as the path label to keep cardinality bounded.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		RecordHTTPRequest(r.Method, path, rw.statusCode, time.Since(start))
	})
}
