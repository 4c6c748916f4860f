// Package service contains the application services that sit between the
// HTTP layer and the domain.
package service

import (
	"context"

	"github.com/minervahq/minerva/internal/application/dto"
	"github.com/minervahq/minerva/internal/domain/models"
	"github.com/minervahq/minerva/internal/domain/repository"
	domainservice "github.com/minervahq/minerva/internal/domain/service"
	"github.com/minervahq/minerva/pkg/constants"
	"github.com/minervahq/minerva/pkg/errors"
	"github.com/minervahq/minerva/pkg/logger"
)

// AnalysisAppService orchestrates scoring and the transient current-report
// state behind the analysis API.
type AnalysisAppService interface {
	// Analyze runs the scorer on the given inputs and makes the result the
	// current report.
	Analyze(ctx context.Context, req *dto.AnalyzeRequest) (*dto.AnalysisResponse, error)

	// CurrentReport returns the report currently held for display.
	CurrentReport(ctx context.Context) (*dto.AnalysisResponse, error)

	// DiscardReport drops the current report.
	DiscardReport(ctx context.Context) error

	// Dashboard returns the dashboard reference data plus the current
	// assessment, when one is held.
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type analysisAppService struct {
	scorer domainservice.RiskScorer
	store  repository.ReportStore
	log    logger.Logger
}

// NewAnalysisAppService creates an AnalysisAppService.
func NewAnalysisAppService(
	scorer domainservice.RiskScorer,
	store repository.ReportStore,
	log logger.Logger,
) AnalysisAppService {
	return &analysisAppService{
		scorer: scorer,
		store:  store,
		log:    log,
	}
}

func (s *analysisAppService) Analyze(ctx context.Context, req *dto.AnalyzeRequest) (*dto.AnalysisResponse, error) {
	if len(req.Text) > constants.MaxTranscriptBytes {
		return nil, errors.ErrInvalidRequest.
			WithDescription("transcript exceeds the maximum accepted size").
			WithDetail("max_bytes", "65536")
	}

	report, err := s.scorer.Score(ctx, req.ToScoreInput())
	if err != nil {
		return nil, err
	}

	if err := s.store.SetCurrent(ctx, report); err != nil {
		// The report is still valid for this response; losing the display
		// state only affects subsequent dashboard reads.
		s.log.Warn(ctx, "failed to hold current report", logger.Fields{
			"analysis_id": report.AnalysisID,
			"error":       err.Error(),
		})
	}

	s.log.Info(ctx, "analysis completed", logger.Fields{
		"analysis_id": report.AnalysisID,
		"risk_level":  string(report.RiskLevel),
		"demo_mode":   report.DemoMode,
	})

	return dto.NewAnalysisResponse(report), nil
}

func (s *analysisAppService) CurrentReport(ctx context.Context) (*dto.AnalysisResponse, error) {
	report, err := s.currentReport(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewAnalysisResponse(report), nil
}

func (s *analysisAppService) DiscardReport(ctx context.Context) error {
	return s.store.Clear(ctx)
}

func (s *analysisAppService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	distribution := models.RiskDistribution()
	buckets := make([]dto.DistributionBucketDTO, 0, len(distribution))
	for _, b := range distribution {
		buckets = append(buckets, dto.DistributionBucketDTO{
			RiskLevel: string(b.Level),
			Patients:  b.Patients,
			Color:     b.Color,
		})
	}

	stats := models.CohortStats()
	resp := &dto.DashboardResponse{
		Distribution: buckets,
		QuickStats: dto.QuickStatsDTO{
			DatasetSize: stats.DatasetSize,
			ADPatients:  stats.ADPatients,
			Controls:    stats.Controls,
			Accuracy:    stats.Accuracy,
		},
		ModelVersion: constants.ModelVersion,
		Disclaimer:   constants.Disclaimer,
	}

	report, err := s.currentReport(ctx)
	switch {
	case err == nil:
		resp.CurrentAssessment = &dto.CurrentAssessmentDTO{
			AnalysisID: report.AnalysisID,
			RiskLevel:  string(report.RiskLevel),
			Color:      report.Color,
		}
	case !errors.IsNotFound(err):
		return nil, err
	}

	return resp, nil
}

func (s *analysisAppService) currentReport(ctx context.Context) (*models.RiskReport, error) {
	report, err := s.store.Current(ctx)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, errors.ErrNotFound.WithDescription("no analysis is currently held")
	}
	return report, nil
}
