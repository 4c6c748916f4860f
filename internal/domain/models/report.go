// Package models contains the domain entities of the Minerva screening
// service. The central entity is the RiskReport: a single screening result
// with a clamped probability, a risk tier and fixed per-tier display metadata.
package models

import "time"

// RiskLevel is one of the five fixed risk tiers.
type RiskLevel string

const (
	RiskVeryLow  RiskLevel = "Very Low Risk"
	RiskLow      RiskLevel = "Low Risk"
	RiskModerate RiskLevel = "Moderate Risk"
	RiskHigh     RiskLevel = "High Risk"
	RiskVeryHigh RiskLevel = "Very High Risk"
)

// Probability bounds. Every reported probability is clamped into this range.
const (
	MinProbability = 5.0
	MaxProbability = 95.0
)

// tierMeta is the fixed display metadata attached to a tier.
type tierMeta struct {
	recommendation string
	color          string
	icon           string
}

// tierBand maps a lower-inclusive probability band to a tier. Bands are
// contiguous and exhaustive over [MinProbability, MaxProbability].
type tierBand struct {
	upper float64 // exclusive
	level RiskLevel
}

var tierBands = []tierBand{
	{upper: 20, level: RiskVeryLow},
	{upper: 40, level: RiskLow},
	{upper: 60, level: RiskModerate},
	{upper: 80, level: RiskHigh},
	{upper: MaxProbability + 1, level: RiskVeryHigh},
}

var tierMetas = map[RiskLevel]tierMeta{
	RiskVeryLow: {
		recommendation: "Continue routine cognitive screening",
		color:          "#36B37E",
		icon:           "✅",
	},
	RiskLow: {
		recommendation: "Annual cognitive screening recommended",
		color:          "#4C9AFF",
		icon:           "✅",
	},
	RiskModerate: {
		recommendation: "Comprehensive neuropsychological evaluation within 6 months",
		color:          "#FFAB00",
		icon:           "⚠️",
	},
	RiskHigh: {
		recommendation: "Urgent referral to neurologist or memory clinic",
		color:          "#FF5630",
		icon:           "🚨",
	},
	RiskVeryHigh: {
		recommendation: "Immediate clinical evaluation required",
		color:          "#BF2600",
		icon:           "🔴",
	},
}

// AllRiskLevels returns the tiers ordered from lowest to highest risk.
func AllRiskLevels() []RiskLevel {
	return []RiskLevel{RiskVeryLow, RiskLow, RiskModerate, RiskHigh, RiskVeryHigh}
}

// LevelForProbability maps a probability to its tier. Bands are
// lower-inclusive: 20.0 is Low, 19.9 is Very Low.
func LevelForProbability(probability float64) RiskLevel {
	for _, band := range tierBands {
		if probability < band.upper {
			return band.level
		}
	}
	return RiskVeryHigh
}

// Recommendation returns the fixed clinical recommendation for the tier.
func (l RiskLevel) Recommendation() string {
	return tierMetas[l].recommendation
}

// Color returns the fixed display color for the tier.
func (l RiskLevel) Color() string {
	return tierMetas[l].color
}

// Icon returns the fixed display icon for the tier.
func (l RiskLevel) Icon() string {
	return tierMetas[l].icon
}

// BiomarkerReading is one entry of the biomarker panel shown with a report.
// Value is normalized to [0.10, 0.99].
type BiomarkerReading struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Percent returns the reading as a whole percentage for display.
func (b BiomarkerReading) Percent() int {
	return int(b.Value * 100)
}

// BiomarkerNames are the panel entries, in display order.
var BiomarkerNames = []string{
	"Voice Stability",
	"Speech Tempo",
	"Articulation",
	"Pitch Consistency",
	"Fluency",
	"Rhythm",
}

// RiskReport is a single screening result. It is immutable once created and
// held only for the current display; reports are never persisted.
type RiskReport struct {
	AnalysisID     string             `json:"analysis_id"`
	Probability    float64            `json:"probability"`
	RiskLevel      RiskLevel          `json:"risk_level"`
	Recommendation string             `json:"recommendation"`
	Color          string             `json:"color"`
	Icon           string             `json:"icon"`
	Biomarkers     []BiomarkerReading `json:"biomarkers"`
	DemoMode       bool               `json:"demo_mode"`
	CreatedAt      time.Time          `json:"created_at"`
}
