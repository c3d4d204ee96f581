package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by route template and status
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// RequestDuration observes HTTP request latency
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// RequestsInFlight is the number of requests being served
	RequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// DocumentsUploaded counts stored documents by normalized media type
	DocumentsUploaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rider_documents_uploaded_total",
			Help: "Documents stored, by media type",
		},
		[]string{"type"},
	)

	// UploadFailures counts rejected or failed files by reason
	UploadFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rider_document_upload_failures_total",
			Help: "Files that were not stored, by reason",
		},
		[]string{"reason"},
	)

	// Verifications counts credential scans by verifier role and risk level
	Verifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rider_verifications_total",
			Help: "Credential verifications, by verifier role and risk level",
		},
		[]string{"role", "risk"},
	)

	// PendingDocuments is refreshed by the digest job
	PendingDocuments = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rider_documents_pending",
			Help: "Documents still awaiting review at the last digest run",
		},
	)
)
