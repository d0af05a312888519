// Package anomaly scans structured reports for known drilling problem
// patterns and emits typed anomaly events.
package anomaly

import (
	"fmt"
	"strings"

	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/model"
)

// DefaultGasThreshold is the gas percentage above which a reading is an
// anomaly. Operational convention, not domain law; override per deployment.
const DefaultGasThreshold = 1.2

// Detector applies the detection rules to one report at a time. Detection
// never mutates the report, so repeated passes over the same record yield
// identical results.
type Detector struct {
	GasThreshold float64
}

func NewDetector(gasThreshold float64) *Detector {
	if gasThreshold <= 0 {
		gasThreshold = DefaultGasThreshold
	}
	return &Detector{GasThreshold: gasThreshold}
}

// Detect runs every rule independently; one record can trigger multiple
// anomaly types and one operation can trigger more than one rule.
func (d *Detector) Detect(r *model.Report) []model.Anomaly {
	var anomalies []model.Anomaly

	for _, op := range r.Operations {
		if strings.Contains(strings.ToLower(op.Remark), "stuck") {
			anomalies = append(anomalies, model.Anomaly{
				Type:        model.AnomalyStuckPipe,
				Severity:    model.SeverityHigh,
				Time:        op.StartTime,
				Description: op.Remark,
			})
		}
	}

	summary := strings.ToLower(r.Summary.Text())
	if strings.Contains(summary, "lost") && strings.Contains(summary, "circulation") {
		anomalies = append(anomalies, model.Anomaly{
			Type:        model.AnomalyLostCirculation,
			Severity:    model.SeverityHigh,
			Description: r.Summary.Activities24h,
		})
	}

	for _, reading := range r.GasReadings {
		if reading.GasPercentage == nil || *reading.GasPercentage <= d.GasThreshold {
			continue
		}
		a := model.Anomaly{
			Type:     model.AnomalyHighGas,
			Severity: model.SeverityMedium,
			Depth:    reading.Depth,
			Value:    reading.GasPercentage,
		}
		if reading.Depth != nil {
			a.Description = fmt.Sprintf("Gas peak of %g%% at %gm", *reading.GasPercentage, *reading.Depth)
		} else {
			a.Description = fmt.Sprintf("Gas peak of %g%%", *reading.GasPercentage)
		}
		anomalies = append(anomalies, a)
	}

	for _, op := range r.Operations {
		if op.State == model.StateFail {
			anomalies = append(anomalies, model.Anomaly{
				Type:        model.AnomalyOperationFailure,
				Severity:    model.SeverityHigh,
				Time:        op.StartTime,
				Activity:    op.Activity,
				Description: op.Remark,
			})
		}
	}

	return anomalies
}
