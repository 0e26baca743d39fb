package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce        sync.Once
	httpRequestsTotal   *prometheus.CounterVec
	httpLatencySeconds  *prometheus.HistogramVec
	httpErrorsTotal     *prometheus.CounterVec
	evaluationsTotal    *prometheus.CounterVec
	skippedAssignments  *prometheus.CounterVec
	lateSubmissionTotal prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used by the grading service.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "grading_http_requests_total",
			Help: "Total number of grading API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "grading_http_latency_seconds",
			Help:    "Latency distribution for grading API requests.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "grading_http_errors_total",
			Help: "Total number of error responses returned by grading endpoints.",
		}, []string{"method", "route", "status"})

		evaluationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "grading_evaluations_total",
			Help: "Grade evaluations by outcome.",
		}, []string{"outcome"})

		skippedAssignments = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "grading_skipped_assignments_total",
			Help: "Assignments excluded from evaluation results, by reason.",
		}, []string{"reason"})

		lateSubmissionTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "grading_late_submissions_total",
			Help: "Submissions that received the late penalty.",
		})

		prometheus.MustRegister(httpRequestsTotal, httpLatencySeconds, httpErrorsTotal, evaluationsTotal, skippedAssignments, lateSubmissionTotal)
	})
}

// HTTPRequests exposes the counter for grading API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for grading API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for grading API error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// Evaluations exposes the evaluation outcome counter.
func Evaluations() *prometheus.CounterVec {
	RegisterMetrics()
	return evaluationsTotal
}

// SkippedAssignments exposes the skipped-assignment counter.
func SkippedAssignments() *prometheus.CounterVec {
	RegisterMetrics()
	return skippedAssignments
}

// LateSubmissions exposes the late-submission counter.
func LateSubmissions() prometheus.Counter {
	RegisterMetrics()
	return lateSubmissionTotal
}
