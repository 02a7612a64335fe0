package api

import (
	"regexp"
	"sort"
	"sync"
	"time"
)

// RequestTrace tracks timing for a single request
type RequestTrace struct {
	RequestID string        `json:"requestId"`
	Method    string        `json:"method"`
	Path      string        `json:"path"`
	Status    int           `json:"status"`
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	Duration  time.Duration `json:"duration"`
	Error     string        `json:"error,omitempty"`
}

// RouteMetrics aggregates metrics for a specific route
type RouteMetrics struct {
	Method      string        `json:"method"`
	Path        string        `json:"path"`
	Count       int64         `json:"count"`
	ErrorCount  int64         `json:"errorCount"`
	TotalTime   time.Duration `json:"totalTime"`
	AvgTime     time.Duration `json:"avgTime"`
	MinTime     time.Duration `json:"minTime"`
	MaxTime     time.Duration `json:"maxTime"`
	LastRequest time.Time     `json:"lastRequest"`
}

// MetricsSummary is the top-level view served by the admin metrics endpoint
type MetricsSummary struct {
	TotalRequests int64     `json:"totalRequests"`
	TotalErrors   int64     `json:"totalErrors"`
	RouteCount    int       `json:"routeCount"`
	Since         time.Time `json:"since"`
}

// MetricsCollector collects and aggregates request metrics
type MetricsCollector struct {
	mu            sync.RWMutex
	traces        []RequestTrace
	maxTraces     int
	routeMetrics  map[string]*RouteMetrics
	totalRequests int64
	totalErrors   int64
	since         time.Time
}

var (
	metricsOnce sync.Once
	metrics     *MetricsCollector
)

// GetMetrics returns the process-wide metrics collector
func GetMetrics() *MetricsCollector {
	metricsOnce.Do(func() {
		metrics = &MetricsCollector{
			maxTraces:    1000,
			routeMetrics: make(map[string]*RouteMetrics),
			since:        time.Now(),
		}
	})
	return metrics
}

// chassis numbers in paths collapse to one route key so per-route metrics
// don't explode per vehicle
var chassisSegment = regexp.MustCompile(`^/api/v1/vehicle/[^/]+`)

func normalizeRoutePath(path string) string {
	return chassisSegment.ReplaceAllString(path, "/api/v1/vehicle/{chassis_number}")
}

// RecordTrace folds one finished request into the per-route aggregates
func (mc *MetricsCollector) RecordTrace(trace RequestTrace) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.totalRequests++
	if trace.Status >= 400 {
		mc.totalErrors++
	}

	mc.traces = append(mc.traces, trace)
	if len(mc.traces) > mc.maxTraces {
		mc.traces = mc.traces[len(mc.traces)-mc.maxTraces:]
	}

	key := trace.Method + " " + normalizeRoutePath(trace.Path)
	rm, ok := mc.routeMetrics[key]
	if !ok {
		rm = &RouteMetrics{
			Method:  trace.Method,
			Path:    normalizeRoutePath(trace.Path),
			MinTime: trace.Duration,
		}
		mc.routeMetrics[key] = rm
	}

	rm.Count++
	if trace.Status >= 400 {
		rm.ErrorCount++
	}
	rm.TotalTime += trace.Duration
	rm.AvgTime = time.Duration(int64(rm.TotalTime) / rm.Count)
	if trace.Duration < rm.MinTime {
		rm.MinTime = trace.Duration
	}
	if trace.Duration > rm.MaxTime {
		rm.MaxTime = trace.Duration
	}
	rm.LastRequest = trace.EndTime
}

// Summary returns the top-level counters
func (mc *MetricsCollector) Summary() MetricsSummary {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	return MetricsSummary{
		TotalRequests: mc.totalRequests,
		TotalErrors:   mc.totalErrors,
		RouteCount:    len(mc.routeMetrics),
		Since:         mc.since,
	}
}

// Routes returns the per-route aggregates sorted by request count, busiest first
func (mc *MetricsCollector) Routes() []RouteMetrics {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	routes := make([]RouteMetrics, 0, len(mc.routeMetrics))
	for _, rm := range mc.routeMetrics {
		routes = append(routes, *rm)
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].Count > routes[j].Count })
	return routes
}

// RecentTraces returns up to n of the most recent request traces
func (mc *MetricsCollector) RecentTraces(n int) []RequestTrace {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	if n <= 0 || n > len(mc.traces) {
		n = len(mc.traces)
	}
	out := make([]RequestTrace, n)
	copy(out, mc.traces[len(mc.traces)-n:])
	return out
}
