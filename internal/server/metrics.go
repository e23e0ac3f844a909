package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal counts API requests by endpoint and response status.
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credit_forecast_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"endpoint", "status"},
	)

	// requestDuration tracks how long each schedule computation takes.
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "credit_forecast_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// calculationErrors counts failed schedule computations by cause.
	calculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credit_forecast_calculation_errors_total",
			Help: "Total number of failed schedule computations",
		},
		[]string{"endpoint", "error_type"},
	)
)
