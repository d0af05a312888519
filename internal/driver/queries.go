package driver

const (
	SaveNodeQuery = `
		MERGE (n:Node {id: $id})
		SET n.node_type = $node_type,
			n += $props
		RETURN n.id AS id
	`

	SaveEdgeQuery = `
		MATCH (source:Node {id: $from})
		MATCH (target:Node {id: $to})
		MERGE (source)-[e:REL {relationship: $relationship}]->(target)
		SET e.edge_type = $edge_type
		RETURN $from AS id
	`

	ClearGraphQuery = `
		MATCH (n:Node)
		DETACH DELETE n
	`
)
