package handlers

import (
	"time"

	"github.com/minervahq/minerva/internal/infrastructure/monitoring"
)

// MetricsRecorder is the handler-facing slice of the metrics surface. Tests
// substitute a mock; production wiring passes *monitoring.Metrics.
type MetricsRecorder interface {
	RecordAnalysis(mode, result, riskLevel string, duration time.Duration)
	RecordRateLimitHit()
}

var _ MetricsRecorder = (*monitoring.Metrics)(nil)
