package config

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SubmissionCounter counts event submissions by kind ("record",
	// "request") and outcome ("ok", "conflict", "error").
	SubmissionCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_submissions_total",
		Help: "Attendance event submissions by kind and outcome.",
	}, []string{"kind", "outcome"})

	// AdjudicationCounter counts approve/reject decisions by outcome.
	AdjudicationCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_adjudications_total",
		Help: "Attendance request adjudications by action and outcome.",
	}, []string{"action", "outcome"})
)

// MetricsHandler serves the default prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
