package model

// Anomaly types.
const (
	AnomalyStuckPipe        = "stuck_pipe"
	AnomalyLostCirculation  = "lost_circulation"
	AnomalyHighGas          = "high_gas"
	AnomalyOperationFailure = "operation_failure"
)

// Anomaly severities.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Anomaly is derived from a report by the detector, never parsed from text.
// It lives only inside its parent report.
type Anomaly struct {
	Type        string   `json:"type"`
	Severity    string   `json:"severity"`
	Time        string   `json:"time,omitempty"`
	Activity    string   `json:"activity,omitempty"`
	Depth       *float64 `json:"depth,omitempty"`
	Value       *float64 `json:"value,omitempty"`
	Description string   `json:"description"`
}
