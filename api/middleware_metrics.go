package api

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// slowRequestThreshold is how long a request may take before it gets logged
const slowRequestThreshold = 500 * time.Millisecond

// MetricsMiddleware tracks request timing and metrics
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip tracking the metrics endpoints themselves to avoid polluting metrics
		path := r.URL.Path
		if path == "/health" ||
			path == "/api/v1/admin/metrics" ||
			path == "/api/v1/admin/metrics/summary" ||
			path == "/api/v1/admin/metrics/routes" {
			next.ServeHTTP(w, r)
			return
		}

		startTime := time.Now()
		requestID := uuid.New().String()

		wrappedWriter := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrappedWriter, r)

		endTime := time.Now()
		trace := RequestTrace{
			RequestID: requestID,
			Method:    r.Method,
			Path:      path,
			Status:    wrappedWriter.statusCode,
			StartTime: startTime,
			EndTime:   endTime,
			Duration:  endTime.Sub(startTime),
		}
		if wrappedWriter.statusCode >= 400 {
			trace.Error = http.StatusText(wrappedWriter.statusCode)
		}

		GetMetrics().RecordTrace(trace)

		if trace.Duration > slowRequestThreshold {
			zap.S().Warnw("slow request",
				"requestId", requestID,
				"method", r.Method,
				"path", path,
				"duration", trace.Duration,
			)
		}
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack keeps websocket upgrades working through the middleware chain
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hj.Hijack()
}
