package graphdb_test

import (
	"fmt"

	"github.com/matzehuels/modelgraph/pkg/graphdb"
)

func ExampleGraph_basic() {
	// main owns debug and release
	g := graphdb.New()
	main := g.CreateNode().AddLabel("NODE").Property("name", "main")
	debug := g.CreateNode().AddLabel("NODE").Property("name", "debug")
	release := g.CreateNode().AddLabel("NODE").Property("name", "release")
	_, _ = main.CreateRelationshipTo(debug, "OWNS")
	_, _ = main.CreateRelationshipTo(release, "OWNS")

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Relationships:", g.RelationshipCount())
	for _, r := range main.Relationships(graphdb.Outgoing, "OWNS") {
		fmt.Println("owns", r.End().GetPropertyOr("name", "?"))
	}
	// Output:
	// Nodes: 3
	// Relationships: 2
	// owns debug
	// owns release
}

func ExampleNode_SingleRelationship() {
	g := graphdb.New()
	parent := g.CreateNode().Property("name", "main")
	child := g.CreateNode().Property("name", "debug")
	_, _ = parent.CreateRelationshipTo(child, "OWNS")

	if rel, ok := child.SingleRelationship("OWNS", graphdb.Incoming); ok {
		fmt.Println("parent:", rel.Start().GetPropertyOr("name", "?"))
	}
	_, ok := parent.SingleRelationship("OWNS", graphdb.Incoming)
	fmt.Println("root has parent:", ok)
	// Output:
	// parent: main
	// root has parent: false
}
