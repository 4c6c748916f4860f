// Package repository defines the storage interfaces of the Minerva domain.
package repository

import (
	"context"

	"github.com/minervahq/minerva/internal/domain/models"
)

// ReportStore holds the single transient "current report" shown on the
// dashboard. It replaces ambient last-shown-report state with explicit
// storage passed into the application layer. Implementations are expected to
// expire the report after a TTL; reports are never persisted.
type ReportStore interface {
	// SetCurrent replaces the current report.
	SetCurrent(ctx context.Context, report *models.RiskReport) error

	// Current returns the current report, or (nil, nil) when none is held.
	Current(ctx context.Context) (*models.RiskReport, error)

	// Clear discards the current report.
	Clear(ctx context.Context) error
}
