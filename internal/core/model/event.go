package model

// Event is an operation with its classified activity category and duration.
type Event struct {
	StartTime    string   `json:"start_time"`
	EndTime      string   `json:"end_time"`
	Depth        *float64 `json:"depth"`
	ActivityType string   `json:"activity_type"`
	State        string   `json:"state"`
	Description  string   `json:"description"`
	Duration     float64  `json:"duration"`
}

// Parameters is the flattened per-report view of key drilling parameters,
// kept shape-stable for downstream consumers.
type Parameters struct {
	Wellbore        string              `json:"wellbore"`
	Period          string              `json:"period"`
	DepthMD         *float64            `json:"depth_md"`
	DepthTVD        *float64            `json:"depth_tvd"`
	HoleSize        *float64            `json:"hole_size"`
	Operator        string              `json:"operator"`
	RigName         string              `json:"rig_name"`
	Activities      []ParameterActivity `json:"activities"`
	FluidProperties []FluidSample       `json:"fluid_properties"`
	SurveyPoints    []SurveyStation     `json:"survey_points"`
	GasReadings     []GasReading        `json:"gas_readings"`
	Lithology       []LithologyInterval `json:"lithology"`
	Anomalies       []Anomaly           `json:"anomalies"`
}

type ParameterActivity struct {
	Time  string   `json:"time"`
	Type  string   `json:"type"`
	Depth *float64 `json:"depth"`
	State string   `json:"state"`
}
