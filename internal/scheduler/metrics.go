package scheduler

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks job runs for every task of a registry.
type Metrics struct {
	runs     *prometheus.CounterVec
	skips    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kitchen_job_runs_total",
				Help: "Completed job runs by job and result",
			},
			[]string{"job", "result"},
		),
		skips: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kitchen_job_skips_total",
				Help: "Ticks skipped because the job was already running",
			},
			[]string{"job", "reason"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kitchen_job_duration_seconds",
				Help:    "Job run duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"job"},
		),
	}
	reg.MustRegister(m.runs, m.skips, m.duration)
	return m
}

func (m *Metrics) finished(job, result string, d time.Duration) {
	m.runs.WithLabelValues(job, result).Inc()
	if d > 0 {
		m.duration.WithLabelValues(job).Observe(d.Seconds())
	}
}

func (m *Metrics) skipped(job, reason string) {
	m.skips.WithLabelValues(job, reason).Inc()
}
