// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"method", "path"},
	)

	SubmissionValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submission_validations_total",
			Help: "Total number of submission validations by result",
		},
		[]string{"result"},
	)

	FormsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forms_generated_total",
			Help: "Total number of ACORD forms generated by form number",
		},
		[]string{"form_number"},
	)

	FormGenerationSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_generation_skipped_total",
			Help: "Total number of form generations skipped by reason",
		},
		[]string{"reason"},
	)

	FormGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "form_generation_duration_seconds",
			Help: "Duration of full form generation per submission in seconds",
		},
		[]string{"client_type"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Total number of notifications sent by channel and status",
		},
		[]string{"channel", "status"},
	)

	FormCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_cache_operations_total",
			Help: "Form cache lookups by outcome",
		},
		[]string{"outcome"},
	)

	SearchQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_queries_total",
			Help: "Total number of submission search queries by status",
		},
		[]string{"status"},
	)

	DocumentRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "document_renders_total",
			Help: "Total number of form render requests by status",
		},
		[]string{"status"},
	)
)
