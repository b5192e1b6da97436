package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/xingyaoww/langfuse/pkg/config"
	"github.com/xingyaoww/langfuse/pkg/sessionquery"
)

// QueryMetrics tracks the outcomes of session trace queries and the advisory
// engine's verdicts about them.
//
// Metrics:
//   - langfuse_sessionquery_queries_total: queries served, by status
//   - langfuse_sessionquery_query_duration_seconds: store query duration
//   - langfuse_sessionquery_optimizations_total: applied corrections, by tag
//   - langfuse_sessionquery_estimate_score: distribution of estimate scores
//   - langfuse_sessionquery_estimated_duration_total: predicted duration classes
type QueryMetrics struct {
	enabled bool

	queriesTotal       *prometheus.CounterVec
	queryDuration      *prometheus.HistogramVec
	optimizationsTotal *prometheus.CounterVec
	estimateScore      prometheus.Histogram
	durationClassTotal *prometheus.CounterVec
}

// NewQueryMetrics creates and registers query metrics with the provided
// registry. If registry is nil a new one is created; retrieve it with
// Registry for serving.
func NewQueryMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *QueryMetrics {
	scoreBuckets := cfg.ScoreBuckets
	if len(scoreBuckets) == 0 {
		// Aligned with the duration-class thresholds plus the score floor.
		scoreBuckets = []float64{15, 40, 60, 80, 90, 100}
	}

	qm := &QueryMetrics{
		enabled: cfg.Enabled,

		queriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "queries_total",
				Help:      "Total number of session trace queries served",
			},
			[]string{"status"},
		),

		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "query_duration_seconds",
				Help:      "Duration of session trace queries in seconds",
				Buckets:   []float64{0.005, 0.025, 0.1, 0.25, 1.0, 5.0, 30.0},
			},
			[]string{"status"},
		),

		optimizationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "optimizations_total",
				Help:      "Total number of query corrections applied, by tag",
			},
			[]string{"tag"},
		),

		estimateScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "estimate_score",
				Help:      "Distribution of query performance estimate scores",
				Buckets:   scoreBuckets,
			},
		),

		durationClassTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "estimated_duration_total",
				Help:      "Total number of estimates, by predicted duration class",
			},
			[]string{"class"},
		),
	}

	// Disabled metrics stay unregistered so the registry exports nothing.
	if registry != nil && cfg.Enabled {
		registry.MustRegister(
			qm.queriesTotal,
			qm.queryDuration,
			qm.optimizationsTotal,
			qm.estimateScore,
			qm.durationClassTotal,
		)
	}

	return qm
}

// RecordQuery records one served session trace query.
// Status is "success", "timeout", or "error".
func (m *QueryMetrics) RecordQuery(status string, duration time.Duration) {
	if !m.enabled {
		return
	}
	m.queriesTotal.WithLabelValues(status).Inc()
	m.queryDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordOptimizations records the corrections applied to one query.
func (m *QueryMetrics) RecordOptimizations(tags []string) {
	if !m.enabled {
		return
	}
	for _, tag := range tags {
		m.optimizationsTotal.WithLabelValues(tag).Inc()
	}
}

// RecordEstimate records one performance estimate.
func (m *QueryMetrics) RecordEstimate(estimate sessionquery.PerformanceEstimate) {
	if !m.enabled {
		return
	}
	m.estimateScore.Observe(float64(estimate.Score))
	m.durationClassTotal.WithLabelValues(string(estimate.EstimatedDuration)).Inc()
}
