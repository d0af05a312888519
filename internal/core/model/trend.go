package model

// Trends holds the three parallel time series reduced from a report
// collection. No ordering or deduplication is imposed here; consumers sort
// and group as needed.
type Trends struct {
	DepthProgress   []DepthPoint   `json:"depth_progress"`
	GasTrends       []GasPoint     `json:"gas_trends"`
	AnomalyTimeline []AnomalyPoint `json:"anomaly_timeline"`
}

type DepthPoint struct {
	Date     string  `json:"date"`
	DepthMD  float64 `json:"depth_md"`
	Wellbore string  `json:"wellbore"`
}

type GasPoint struct {
	Date       string   `json:"date"`
	Depth      *float64 `json:"depth"`
	Percentage *float64 `json:"percentage"`
	Wellbore   string   `json:"wellbore"`
}

type AnomalyPoint struct {
	Date     string `json:"date"`
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Wellbore string `json:"wellbore"`
}
