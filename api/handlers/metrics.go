package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/autogallery/dealership-api/api"
	"github.com/autogallery/dealership-api/config"
)

// MetricsTracesHandler returns the most recent request traces
func MetricsTracesHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		limit = 100
	}

	b, err := json.Marshal(api.GetMetrics().RecentTraces(limit))
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MetricsSummaryHandler returns the top-level request counters
func MetricsSummaryHandler(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(api.GetMetrics().Summary())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MetricsRoutesHandler returns the per-route aggregates
func MetricsRoutesHandler(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(api.GetMetrics().Routes())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
