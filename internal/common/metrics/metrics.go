// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	CompatibilityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "compatibility_score",
			Help:    "Distribution of normalized compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	IneligibleApplicants = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ineligible_applicants_total",
			Help: "Applicants rejected by a hard eligibility gate",
		},
		[]string{"reason"},
	)

	CorpusInstitutions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "corpus_institutions_loaded",
			Help: "Institutions loaded in the current scoring corpus",
		},
	)
)
