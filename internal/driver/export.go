package driver

import (
	"context"
	"fmt"

	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/graph"
)

// Export mirrors the in-memory knowledge model into the graph database. The
// model is rebuilt from scratch each batch, so the mirror is wiped first.
func Export(ctx context.Context, d GraphDriver, g *graph.Graph) error {
	if _, err := d.ExecuteQuery(ctx, ClearGraphQuery, nil); err != nil {
		return fmt.Errorf("failed to clear graph: %w", err)
	}

	for _, n := range g.Nodes() {
		props := map[string]interface{}{}
		for k, v := range n.Props {
			if v != nil {
				props[k] = v
			}
		}
		params := map[string]interface{}{
			"id":        n.ID,
			"node_type": n.Type,
			"props":     props,
		}
		if _, err := d.ExecuteQuery(ctx, SaveNodeQuery, params); err != nil {
			return fmt.Errorf("failed to save node %s: %w", n.ID, err)
		}
	}

	for _, e := range g.Edges() {
		params := map[string]interface{}{
			"from":         e.From,
			"to":           e.To,
			"relationship": e.Relationship,
			"edge_type":    e.Type,
		}
		if _, err := d.ExecuteQuery(ctx, SaveEdgeQuery, params); err != nil {
			return fmt.Errorf("failed to save edge %s->%s: %w", e.From, e.To, err)
		}
	}

	return nil
}
