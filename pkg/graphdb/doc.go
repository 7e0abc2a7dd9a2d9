// Package graphdb provides a small in-memory labeled property graph.
//
// # Overview
//
// The model layer encodes parent/child ownership and node projections as a
// generic labeled graph rather than plain object references. This package is
// that graph: nodes and directed relationships, each carrying string-keyed
// properties, with relationships typed by a [RelationshipType] and traversed
// by [Direction].
//
// Entities live in an arena owned by the [Graph] and are addressed by dense
// integer ids. Every node keeps adjacency indices for its outgoing and
// incoming relationships, split by relationship type, so typed traversal does
// not scan unrelated edges.
//
// # Basic Usage
//
//	g := graphdb.New()
//	parent := g.CreateNode().AddLabel("NODE").Property("name", "main")
//	child := g.CreateNode().AddLabel("NODE").Property("name", "debug")
//	_, _ = parent.CreateRelationshipTo(child, "OWNS")
//
//	rel, ok := child.SingleRelationship("OWNS", graphdb.Incoming)
//	if ok {
//	    fmt.Println(rel.Start().GetPropertyOr("name", "?")) // main
//	}
//
// # Append-only
//
// The graph has no delete operations. Properties may be overwritten but are
// never removed. This mirrors a single configuration pass: entities are only
// ever added while the model is being built.
//
// # Concurrency
//
// A Graph is not safe for concurrent use. The model layer mutates it from a
// single goroutine during configuration.
package graphdb
