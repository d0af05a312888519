package graph

import (
	"fmt"

	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/anomaly"
	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/model"
)

// Builder populates a Graph from report records.
type Builder struct {
	GasThreshold float64
}

func NewBuilder(gasThreshold float64) *Builder {
	if gasThreshold <= 0 {
		gasThreshold = anomaly.DefaultGasThreshold
	}
	return &Builder{GasThreshold: gasThreshold}
}

// Build assembles a fresh graph from the given records. Failed records are
// skipped entirely.
func (b *Builder) Build(reports []model.Report) *Graph {
	g := New()
	for i := range reports {
		if reports[i].Failed() {
			continue
		}
		b.AddReport(g, &reports[i])
	}
	return g
}

// AddReport merges one record into the graph: the wellbore node, the activity
// chain with temporal and spatial links, lithology intervals, high-gas
// anomalies and fluid samples.
func (b *Builder) AddReport(g *Graph, r *model.Report) {
	wellbore := r.Wellbore
	if wellbore == "" {
		wellbore = "unknown"
	}

	g.AddNode(wellbore, NodeWellbore, map[string]any{
		"operator":  r.Operator,
		"rig":       r.RigName,
		"depth_md":  floatProp(r.DepthMD),
		"depth_tvd": floatProp(r.DepthTVD),
	})

	// Activities chain temporally within this record only; the chain does
	// not join across records.
	prevActivity := ""
	for i, op := range r.Operations {
		activityID := fmt.Sprintf("%s_activity_%d_%s", wellbore, i, op.StartTime)
		g.AddNode(activityID, NodeActivity, map[string]any{
			"activity_type": op.Activity,
			"start_time":    op.StartTime,
			"end_time":      op.EndTime,
			"depth":         floatProp(op.Depth),
			"state":         op.State,
			"remark":        op.Remark,
		})
		g.AddEdge(wellbore, activityID, RelHasActivity, "")

		if prevActivity != "" {
			g.AddEdge(prevActivity, activityID, RelNext, EdgeTemporal)
		}
		if op.Depth != nil {
			depthID := b.addDepthNode(g, wellbore, *op.Depth)
			g.AddEdge(activityID, depthID, RelAtDepth, EdgeSpatial)
		}
		prevActivity = activityID
	}

	for i, lith := range r.Lithology {
		lithID := fmt.Sprintf("%s_lith_%d", wellbore, i)
		g.AddNode(lithID, NodeLithology, map[string]any{
			"description": lith.Description,
			"start_depth": lith.StartDepth,
			"end_depth":   lith.EndDepth,
		})
		g.AddEdge(wellbore, lithID, RelHasLithology, "")

		depthID := b.addDepthNode(g, wellbore, lith.StartDepth)
		g.AddEdge(lithID, depthID, RelFromDepth, "")
	}

	for i, gas := range r.GasReadings {
		if gas.GasPercentage == nil || *gas.GasPercentage <= b.GasThreshold {
			continue
		}
		anomalyID := fmt.Sprintf("%s_gas_anomaly_%d", wellbore, i)
		g.AddNode(anomalyID, NodeAnomaly, map[string]any{
			"anomaly_type":   "high_gas",
			"gas_percentage": *gas.GasPercentage,
			"depth":          floatProp(gas.Depth),
			"c1_ppm":         floatProp(gas.C1PPM),
		})
		g.AddEdge(wellbore, anomalyID, RelHasAnomaly, "")

		if gas.Depth != nil {
			depthID := b.addDepthNode(g, wellbore, *gas.Depth)
			g.AddEdge(anomalyID, depthID, RelAtDepth, EdgeSpatial)
		}
	}

	for i, fluid := range r.DrillingFluid {
		if fluid.Density == nil {
			continue
		}
		fluidID := fmt.Sprintf("%s_fluid_%d", wellbore, i)
		g.AddNode(fluidID, NodeFluid, map[string]any{
			"density":   *fluid.Density,
			"viscosity": floatProp(fluid.Viscosity),
			"type":      fluid.Type,
		})
		g.AddEdge(wellbore, fluidID, RelUsesFluid, "")
	}
}

func (b *Builder) addDepthNode(g *Graph, wellbore string, depth float64) string {
	id := DepthNodeID(wellbore, depth)
	if _, ok := g.Node(id); !ok {
		g.AddNode(id, NodeDepth, map[string]any{
			"depth":    depth,
			"wellbore": wellbore,
		})
	}
	return id
}

func floatProp(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
