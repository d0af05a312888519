// Package graph assembles the knowledge model: a directed graph of wellbores,
// activities, depth markers, lithology intervals, fluid samples and anomalies
// with temporal and spatial relationships. The graph owns its nodes and edges
// exclusively and is rebuilt from scratch on every batch.
package graph

import (
	"sort"
	"strconv"
	"strings"
)

// Node types.
const (
	NodeWellbore  = "wellbore"
	NodeActivity  = "activity"
	NodeDepth     = "depth"
	NodeLithology = "lithology"
	NodeFluid     = "fluid"
	NodeAnomaly   = "anomaly"
)

// Edge types. Structural relationships (HAS_ACTIVITY and friends) carry no
// edge type. Causal is reserved; no current rule populates it.
const (
	EdgeTemporal = "temporal"
	EdgeSpatial  = "spatial"
	EdgeCausal   = "causal"
)

// Relationship names.
const (
	RelNext         = "NEXT"
	RelAtDepth      = "AT_DEPTH"
	RelFromDepth    = "FROM_DEPTH"
	RelCaused       = "CAUSED"
	RelHasActivity  = "HAS_ACTIVITY"
	RelHasLithology = "HAS_LITHOLOGY"
	RelHasAnomaly   = "HAS_ANOMALY"
	RelUsesFluid    = "USES_FLUID"
)

type Node struct {
	ID    string         `json:"id"`
	Type  string         `json:"type"`
	Props map[string]any `json:"props,omitempty"`
}

type Edge struct {
	From         string `json:"from"`
	To           string `json:"to"`
	Relationship string `json:"relationship"`
	Type         string `json:"type,omitempty"`
}

type Graph struct {
	nodes map[string]*Node
	order []string
	edges []Edge
}

func New() *Graph {
	return &Graph{nodes: map[string]*Node{}}
}

// AddNode creates the node or, when the ID already exists, overwrites its
// type and properties. Depth nodes rely on this for per-(wellbore, depth)
// deduplication.
func (g *Graph) AddNode(id, nodeType string, props map[string]any) *Node {
	if n, ok := g.nodes[id]; ok {
		n.Type = nodeType
		n.Props = props
		return n
	}
	n := &Node{ID: id, Type: nodeType, Props: props}
	g.nodes[id] = n
	g.order = append(g.order, id)
	return n
}

func (g *Graph) AddEdge(from, to, relationship, edgeType string) {
	g.edges = append(g.edges, Edge{From: from, To: to, Relationship: relationship, Type: edgeType})
}

func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

func (g *Graph) Edges() []Edge {
	return g.edges
}

// wellboreOf resolves the owning wellbore node of a graph node by walking its
// incoming edges.
func (g *Graph) wellboreOf(id string) string {
	for _, e := range g.edges {
		if e.To != id {
			continue
		}
		if n, ok := g.nodes[e.From]; ok && n.Type == NodeWellbore {
			return n.ID
		}
	}
	return "unknown"
}

// DepthNodeID keys depth nodes per (wellbore, depth value) pair so repeated
// visits to the same depth reuse one node.
func DepthNodeID(wellbore string, depth float64) string {
	return wellbore + "_depth_" + strconv.FormatFloat(depth, 'g', -1, 64)
}

// Statistics counts nodes and edges by type.
type Statistics struct {
	TotalNodes  int `json:"total_nodes"`
	TotalEdges  int `json:"total_edges"`
	Wellbores   int `json:"wellbores"`
	Activities  int `json:"activities"`
	Depths      int `json:"depths"`
	Lithologies int `json:"lithologies"`
	Fluids      int `json:"fluids"`
	Anomalies   int `json:"anomalies"`
}

func (g *Graph) Statistics() Statistics {
	s := Statistics{TotalNodes: len(g.nodes), TotalEdges: len(g.edges)}
	for _, n := range g.nodes {
		switch n.Type {
		case NodeWellbore:
			s.Wellbores++
		case NodeActivity:
			s.Activities++
		case NodeDepth:
			s.Depths++
		case NodeLithology:
			s.Lithologies++
		case NodeFluid:
			s.Fluids++
		case NodeAnomaly:
			s.Anomalies++
		}
	}
	return s
}

// GasPeak is one high-gas anomaly node surfaced by QueryGasPeaks.
type GasPeak struct {
	ID            string   `json:"id"`
	Depth         *float64 `json:"depth"`
	GasPercentage float64  `json:"gas_percentage"`
	Wellbore      string   `json:"wellbore"`
}

// QueryGasPeaks returns high-gas anomaly nodes above threshold, sorted by
// depth ascending.
func (g *Graph) QueryGasPeaks(threshold float64) []GasPeak {
	var peaks []GasPeak
	for _, id := range g.order {
		n := g.nodes[id]
		if n.Type != NodeAnomaly || n.Props["anomaly_type"] != "high_gas" {
			continue
		}
		pct, ok := n.Props["gas_percentage"].(float64)
		if !ok || pct <= threshold {
			continue
		}
		peak := GasPeak{ID: n.ID, GasPercentage: pct, Wellbore: g.wellboreOf(n.ID)}
		if d, ok := n.Props["depth"].(float64); ok {
			peak.Depth = &d
		}
		peaks = append(peaks, peak)
	}
	sort.SliceStable(peaks, func(i, j int) bool {
		di, dj := 0.0, 0.0
		if peaks[i].Depth != nil {
			di = *peaks[i].Depth
		}
		if peaks[j].Depth != nil {
			dj = *peaks[j].Depth
		}
		return di < dj
	})
	return peaks
}

// QueryLithologyAtDepth returns descriptions of lithology intervals of the
// wellbore containing the given depth. Wellbore matching is a substring test
// on the node ID, which embeds the wellbore name.
func (g *Graph) QueryLithologyAtDepth(wellbore string, depth float64) []string {
	var results []string
	for _, id := range g.order {
		n := g.nodes[id]
		if n.Type != NodeLithology || !strings.Contains(n.ID, wellbore) {
			continue
		}
		start, ok1 := n.Props["start_depth"].(float64)
		end, ok2 := n.Props["end_depth"].(float64)
		if !ok1 || !ok2 {
			continue
		}
		if start <= depth && depth <= end {
			if desc, ok := n.Props["description"].(string); ok {
				results = append(results, desc)
			}
		}
	}
	return results
}

// ActivityHit is one activity node near a queried depth.
type ActivityHit struct {
	Activity string  `json:"activity"`
	Depth    float64 `json:"depth"`
	Time     string  `json:"time"`
	State    string  `json:"state"`
}

// QueryActivitiesAtDepth returns activities of the wellbore whose depth lies
// within tolerance meters of the queried depth.
func (g *Graph) QueryActivitiesAtDepth(wellbore string, depth, tolerance float64) []ActivityHit {
	var results []ActivityHit
	for _, id := range g.order {
		n := g.nodes[id]
		if n.Type != NodeActivity || !strings.Contains(n.ID, wellbore) {
			continue
		}
		d, ok := n.Props["depth"].(float64)
		if !ok {
			continue
		}
		if diff := d - depth; diff <= tolerance && diff >= -tolerance {
			hit := ActivityHit{Depth: d}
			hit.Activity, _ = n.Props["activity_type"].(string)
			hit.State, _ = n.Props["state"].(string)
			start, _ := n.Props["start_time"].(string)
			end, _ := n.Props["end_time"].(string)
			hit.Time = start + "-" + end
			results = append(results, hit)
		}
	}
	return results
}

// CoreSample reports a coring activity joined with the lithology at its depth.
type CoreSample struct {
	Time      string   `json:"time"`
	Depth     *float64 `json:"depth"`
	Wellbore  string   `json:"wellbore"`
	Lithology []string `json:"lithology"`
}

// QueryCoreSamples finds activities whose remark or category mentions coring.
func (g *Graph) QueryCoreSamples() []CoreSample {
	var results []CoreSample
	for _, id := range g.order {
		n := g.nodes[id]
		if n.Type != NodeActivity {
			continue
		}
		remark, _ := n.Props["remark"].(string)
		activity, _ := n.Props["activity_type"].(string)
		if !strings.Contains(strings.ToLower(remark), "core") &&
			!strings.Contains(strings.ToLower(activity), "core") {
			continue
		}

		sample := CoreSample{Wellbore: g.wellboreOf(n.ID)}
		sample.Time, _ = n.Props["start_time"].(string)
		if d, ok := n.Props["depth"].(float64); ok {
			sample.Depth = &d
			sample.Lithology = g.QueryLithologyAtDepth(sample.Wellbore, d)
		}
		results = append(results, sample)
	}
	return results
}
