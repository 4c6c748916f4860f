package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics manages the Prometheus metrics of the analysis API.
type Metrics struct {
	AnalysisRequests *prometheus.CounterVec
	AnalysisLatency  *prometheus.HistogramVec
	AnalysisTiers    *prometheus.CounterVec
	RateLimitHits    prometheus.Counter
}

// NewMetrics creates and registers the Prometheus metrics on the default
// registry. Call once per process.
func NewMetrics() *Metrics {
	return &Metrics{
		AnalysisRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minerva_analysis_requests_total",
				Help: "Total number of analysis requests.",
			},
			[]string{"mode", "result"},
		),
		AnalysisLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "minerva_analysis_latency_seconds",
				Help:    "Latency of analysis requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"mode"},
		),
		AnalysisTiers: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minerva_analysis_tiers_total",
				Help: "Analyses bucketed by resulting risk tier.",
			},
			[]string{"risk_level"},
		),
		RateLimitHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "minerva_rate_limit_hits_total",
				Help: "Total number of rate limited requests.",
			},
		),
	}
}

// RecordAnalysis records metrics for one analysis request.
func (m *Metrics) RecordAnalysis(mode, result, riskLevel string, duration time.Duration) {
	m.AnalysisRequests.WithLabelValues(mode, result).Inc()
	m.AnalysisLatency.WithLabelValues(mode).Observe(duration.Seconds())
	if riskLevel != "" {
		m.AnalysisTiers.WithLabelValues(riskLevel).Inc()
	}
}

// RecordRateLimitHit records a rate limited request.
func (m *Metrics) RecordRateLimitHit() {
	m.RateLimitHits.Inc()
}
