package logic

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics
var (
	questionsAnswered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analyst_questions_answered_total",
		Help: "Total number of fan questions answered",
	})

	fallbackAnswers = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analyst_fallback_answers_total",
		Help: "Total number of answers produced by the deterministic fallback",
	})

	categoryFetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analyst_category_fetch_failures_total",
		Help: "Data category fetches that failed or timed out, by category",
	}, []string{"category"})

	resolutionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analyst_team_resolution_failures_total",
		Help: "Questions where a team identifier could not be resolved",
	})

	gatewayLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "analyst_gateway_latency_seconds",
		Help:    "Latency of model gateway completions",
		Buckets: prometheus.DefBuckets,
	})
)
