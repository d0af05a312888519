// Package trends reduces a report collection into time-series views keyed by
// the report date.
package trends

import (
	"regexp"

	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/anomaly"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/model"
)

var dateRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// Aggregator builds depth-progress, gas and anomaly series. The anomaly
// timeline re-runs the detector per record, so the aggregator works on plain
// extracted records as well as enriched ones.
type Aggregator struct {
	detector *anomaly.Detector
}

func NewAggregator(detector *anomaly.Detector) *Aggregator {
	return &Aggregator{detector: detector}
}

// Analyze walks the collection once and emits the three parallel series.
// Failed records are skipped; no sorting or deduplication is applied.
func (a *Aggregator) Analyze(reports []model.Report) model.Trends {
	t := model.Trends{
		DepthProgress:   []model.DepthPoint{},
		GasTrends:       []model.GasPoint{},
		AnomalyTimeline: []model.AnomalyPoint{},
	}

	for i := range reports {
		r := &reports[i]
		if r.Failed() {
			continue
		}
		date := ExtractDate(r.Period)

		if r.DepthMD != nil {
			t.DepthProgress = append(t.DepthProgress, model.DepthPoint{
				Date:     date,
				DepthMD:  *r.DepthMD,
				Wellbore: r.Wellbore,
			})
		}

		for _, gas := range r.GasReadings {
			t.GasTrends = append(t.GasTrends, model.GasPoint{
				Date:       date,
				Depth:      gas.Depth,
				Percentage: gas.GasPercentage,
				Wellbore:   r.Wellbore,
			})
		}

		for _, an := range a.detector.Detect(r) {
			t.AnomalyTimeline = append(t.AnomalyTimeline, model.AnomalyPoint{
				Date:     date,
				Type:     an.Type,
				Severity: an.Severity,
				Wellbore: r.Wellbore,
			})
		}
	}

	return t
}

// ExtractDate returns the first ISO date substring of a period string, or ""
// when none is present.
func ExtractDate(period string) string {
	return dateRe.FindString(period)
}
