package driver

import (
	"context"
	"fmt"
	"log"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// MemgraphDriver persists the knowledge model to Memgraph (or Neo4j) over
// bolt. The in-memory graph stays the source of truth; the database mirror
// exists for external Cypher tooling.
type MemgraphDriver struct {
	Driver neo4j.DriverWithContext
}

func NewMemgraphDriver(uri, username, password string) (*MemgraphDriver, error) {
	drv, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}
	if err := drv.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}
	log.Println("connected to graph database")
	return &MemgraphDriver{Driver: drv}, nil
}

func (d *MemgraphDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *MemgraphDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

func (d *MemgraphDriver) BuildIndices(ctx context.Context) error {
	queries := []string{
		"CREATE INDEX ON :Node(id);",
		"CREATE INDEX ON :Node(node_type);",
		"CREATE INDEX ON :Node(wellbore);",
	}
	for _, q := range queries {
		if _, err := d.ExecuteQuery(ctx, q, nil); err != nil {
			// The index may already exist.
			log.Printf("failed to create index '%s': %v", q, err)
		}
	}
	return nil
}
