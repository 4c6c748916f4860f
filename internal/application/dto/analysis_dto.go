// Package dto defines the request/response shapes of the Minerva HTTP API.
package dto

import (
	"time"

	"github.com/minervahq/minerva/internal/domain/models"
	domainservice "github.com/minervahq/minerva/internal/domain/service"
	"github.com/minervahq/minerva/pkg/constants"
)

// AnalyzeRequest is the body of POST /api/v1/analyses.
type AnalyzeRequest struct {
	// AudioRef is a reference to an uploaded voice sample (e.g. a filename).
	AudioRef string `json:"audio_ref"`
	// Text is a speech transcript.
	Text string `json:"text"`
	// DemoMode forces the canned demo distribution regardless of inputs.
	DemoMode bool `json:"demo_mode"`
}

// ToScoreInput maps the request to the domain scoring input. Which path the
// scorer takes is decided by ScoreInput.IsDemo, never re-derived elsewhere.
func (r *AnalyzeRequest) ToScoreInput() domainservice.ScoreInput {
	return domainservice.ScoreInput{
		AudioRef: r.AudioRef,
		Text:     r.Text,
		DemoMode: r.DemoMode,
	}
}

// BiomarkerDTO is one entry of the biomarker panel.
type BiomarkerDTO struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Percent int     `json:"percent"`
}

// AnalysisResponse is the API shape of a risk report.
type AnalysisResponse struct {
	AnalysisID     string         `json:"analysis_id"`
	Probability    float64        `json:"probability"`
	RiskLevel      string         `json:"risk_level"`
	Recommendation string         `json:"recommendation"`
	Color          string         `json:"color"`
	Icon           string         `json:"icon"`
	Biomarkers     []BiomarkerDTO `json:"biomarkers"`
	DemoMode       bool           `json:"demo_mode"`
	FeaturesCount  int            `json:"features_analyzed"`
	DataSource     string         `json:"data_source"`
	ModelVersion   string         `json:"model_version"`
	CreatedAt      time.Time      `json:"created_at"`
}

// NewAnalysisResponse maps a domain report to its API shape.
func NewAnalysisResponse(report *models.RiskReport) *AnalysisResponse {
	biomarkers := make([]BiomarkerDTO, 0, len(report.Biomarkers))
	for _, b := range report.Biomarkers {
		biomarkers = append(biomarkers, BiomarkerDTO{
			Name:    b.Name,
			Value:   b.Value,
			Percent: b.Percent(),
		})
	}
	return &AnalysisResponse{
		AnalysisID:     report.AnalysisID,
		Probability:    report.Probability,
		RiskLevel:      string(report.RiskLevel),
		Recommendation: report.Recommendation,
		Color:          report.Color,
		Icon:           report.Icon,
		Biomarkers:     biomarkers,
		DemoMode:       report.DemoMode,
		FeaturesCount:  constants.FeatureCount,
		DataSource:     constants.DataSource,
		ModelVersion:   constants.ModelVersion,
		CreatedAt:      report.CreatedAt,
	}
}

// DistributionBucketDTO is one bar of the risk distribution chart.
type DistributionBucketDTO struct {
	RiskLevel string `json:"risk_level"`
	Patients  int    `json:"patients"`
	Color     string `json:"color"`
}

// QuickStatsDTO is the dashboard cohort summary.
type QuickStatsDTO struct {
	DatasetSize int     `json:"dataset_size"`
	ADPatients  int     `json:"ad_patients"`
	Controls    int     `json:"controls"`
	Accuracy    float64 `json:"accuracy"`
}

// CurrentAssessmentDTO summarizes the report currently held for display.
type CurrentAssessmentDTO struct {
	AnalysisID string `json:"analysis_id"`
	RiskLevel  string `json:"risk_level"`
	Color      string `json:"color"`
}

// DashboardResponse is the body of GET /api/v1/dashboard.
type DashboardResponse struct {
	Distribution      []DistributionBucketDTO `json:"distribution"`
	QuickStats        QuickStatsDTO           `json:"quick_stats"`
	CurrentAssessment *CurrentAssessmentDTO   `json:"current_assessment,omitempty"`
	ModelVersion      string                  `json:"model_version"`
	Disclaimer        string                  `json:"disclaimer"`
}
