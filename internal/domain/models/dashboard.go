package models

// DistributionBucket is one bar of the dashboard's risk distribution chart.
// The series is fixed reference data from the screening cohort, not derived
// from live analyses.
type DistributionBucket struct {
	Level    RiskLevel `json:"risk_level"`
	Patients int       `json:"patients"`
	Color    string    `json:"color"`
}

// QuickStats is the dashboard's cohort summary block.
type QuickStats struct {
	DatasetSize int     `json:"dataset_size"`
	ADPatients  int     `json:"ad_patients"`
	Controls    int     `json:"controls"`
	Accuracy    float64 `json:"accuracy"`
}

var distributionPatients = map[RiskLevel]int{
	RiskVeryLow:  120,
	RiskLow:      95,
	RiskModerate: 65,
	RiskHigh:     42,
	RiskVeryHigh: 28,
}

// RiskDistribution returns the fixed distribution series ordered from the
// lowest to the highest tier.
func RiskDistribution() []DistributionBucket {
	levels := AllRiskLevels()
	buckets := make([]DistributionBucket, 0, len(levels))
	for _, level := range levels {
		buckets = append(buckets, DistributionBucket{
			Level:    level,
			Patients: distributionPatients[level],
			Color:    level.Color(),
		})
	}
	return buckets
}

// CohortStats returns the fixed quick stats of the screening cohort.
func CohortStats() QuickStats {
	return QuickStats{
		DatasetSize: 482,
		ADPatients:  241,
		Controls:    241,
		Accuracy:    94.2,
	}
}
