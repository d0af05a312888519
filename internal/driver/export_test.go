package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RzayevNihat/ddr-ai-analysis-system/internal/core/graph"
)

type recordedQuery struct {
	query  string
	params map[string]interface{}
}

type fakeDriver struct {
	queries []recordedQuery
	failOn  string
}

func (f *fakeDriver) ExecuteQuery(_ context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	f.queries = append(f.queries, recordedQuery{query: query, params: params})
	if f.failOn != "" && query == f.failOn {
		return neo4j.EagerResult{}, errors.New("bolt connection lost")
	}
	return neo4j.EagerResult{}, nil
}

func (f *fakeDriver) BuildIndices(context.Context) error { return nil }
func (f *fakeDriver) Close(context.Context) error        { return nil }

func testGraph() *graph.Graph {
	g := graph.New()
	g.AddNode("15/9-19 A", graph.NodeWellbore, map[string]any{
		"operator": "Equinor Energy",
		"depth_md": 2800.0,
		"rig":      nil, // unset field, must not reach the database
	})
	g.AddNode("15/9-19 A_activity_0_08:00", graph.NodeActivity, map[string]any{
		"activity_type": "drilling",
	})
	g.AddEdge("15/9-19 A", "15/9-19 A_activity_0_08:00", graph.RelHasActivity, "")
	return g
}

func TestExport(t *testing.T) {
	d := &fakeDriver{}
	require.NoError(t, Export(context.Background(), d, testGraph()))

	// Clear first, then both nodes, then the edge.
	require.Len(t, d.queries, 4)
	assert.Equal(t, ClearGraphQuery, d.queries[0].query)
	assert.Equal(t, SaveNodeQuery, d.queries[1].query)
	assert.Equal(t, SaveNodeQuery, d.queries[2].query)
	assert.Equal(t, SaveEdgeQuery, d.queries[3].query)

	nodeParams := d.queries[1].params
	assert.Equal(t, "15/9-19 A", nodeParams["id"])
	assert.Equal(t, graph.NodeWellbore, nodeParams["node_type"])
	props, ok := nodeParams["props"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 2800.0, props["depth_md"])
	_, hasRig := props["rig"]
	assert.False(t, hasRig, "nil properties are filtered before export")

	edgeParams := d.queries[3].params
	assert.Equal(t, "15/9-19 A", edgeParams["from"])
	assert.Equal(t, graph.RelHasActivity, edgeParams["relationship"])
}

func TestExportStopsOnClearFailure(t *testing.T) {
	d := &fakeDriver{failOn: ClearGraphQuery}
	err := Export(context.Background(), d, testGraph())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to clear graph")
	assert.Len(t, d.queries, 1)
}

func TestExportWrapsNodeFailure(t *testing.T) {
	d := &fakeDriver{failOn: SaveNodeQuery}
	err := Export(context.Background(), d, testGraph())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save node")
}
