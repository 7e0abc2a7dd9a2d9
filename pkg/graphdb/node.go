package graphdb

import (
	"cmp"
	"maps"
	"slices"
)

// Node is a vertex of a [Graph].
//
// Nodes are created with [Graph.CreateNode] and are never removed. Two *Node
// values are the same node exactly when the pointers are equal.
type Node struct {
	graph  *Graph
	id     NodeID
	labels []Label
	props  Properties

	outAll []*Relationship
	inAll  []*Relationship
	out    map[RelationshipType][]*Relationship
	in     map[RelationshipType][]*Relationship
}

// ID returns the node's id within its graph.
func (n *Node) ID() NodeID { return n.id }

// Graph returns the graph that owns the node.
func (n *Node) Graph() *Graph { return n.graph }

// AddLabel tags the node with label. Adding a label twice is a no-op.
// It returns the node for chaining.
func (n *Node) AddLabel(label Label) *Node {
	if n.HasLabel(label) {
		return n
	}
	n.labels = append(n.labels, label)
	n.graph.labels[label] = append(n.graph.labels[label], n)
	return n
}

// HasLabel reports whether the node carries label.
func (n *Node) HasLabel(label Label) bool {
	return slices.Contains(n.labels, label)
}

// Labels returns the node's labels in the order they were added.
func (n *Node) Labels() []Label { return slices.Clone(n.labels) }

// Property sets key to value and returns the node for chaining.
func (n *Node) Property(key string, value any) *Node {
	n.props[key] = value
	return n
}

// SetProperty sets key to value, replacing any previous value.
func (n *Node) SetProperty(key string, value any) { n.props[key] = value }

// GetProperty returns the value stored under key.
func (n *Node) GetProperty(key string) (any, bool) {
	v, ok := n.props[key]
	return v, ok
}

// GetPropertyOr returns the value stored under key, or def when absent.
func (n *Node) GetPropertyOr(key string, def any) any {
	if v, ok := n.props[key]; ok {
		return v
	}
	return def
}

// HasProperty reports whether a value is stored under key.
func (n *Node) HasProperty(key string) bool {
	_, ok := n.props[key]
	return ok
}

// PropertyKeys returns the node's property keys, sorted.
func (n *Node) PropertyKeys() []string {
	return slices.Sorted(maps.Keys(n.props))
}

// CreateRelationshipTo links n to other with a relationship of type t.
// Returns [ErrNilNode] or [ErrForeignNode] when other is unusable.
func (n *Node) CreateRelationshipTo(other *Node, t RelationshipType) (*Relationship, error) {
	if other == nil {
		return nil, ErrNilNode
	}
	if other.graph != n.graph {
		return nil, ErrForeignNode
	}
	return n.graph.newRelationship(n, other, t), nil
}

// Relationships returns the node's relationships in direction dir, filtered
// to the given types. With no types every relationship matches. Results are
// in creation order.
func (n *Node) Relationships(dir Direction, types ...RelationshipType) []*Relationship {
	switch dir {
	case Outgoing:
		return pick(n.outAll, n.out, types)
	case Incoming:
		return pick(n.inAll, n.in, types)
	case Both:
		out := pick(n.outAll, n.out, types)
		in := pick(n.inAll, n.in, types)
		all := append(out, in...)
		slices.SortFunc(all, func(a, b *Relationship) int { return cmp.Compare(a.id, b.id) })
		// self-loops show up in both lists
		return slices.CompactFunc(all, func(a, b *Relationship) bool { return a == b })
	default:
		return nil
	}
}

// SingleRelationship returns the relationship of type t in direction dir.
// When several match, the earliest one is returned.
func (n *Node) SingleRelationship(t RelationshipType, dir Direction) (*Relationship, bool) {
	rels := n.Relationships(dir, t)
	if len(rels) == 0 {
		return nil, false
	}
	return rels[0], true
}

// HasRelationship reports whether the node has any relationship in dir
// matching types.
func (n *Node) HasRelationship(dir Direction, types ...RelationshipType) bool {
	return n.Degree(dir, types...) > 0
}

// Degree returns the number of relationships in dir matching types.
func (n *Node) Degree(dir Direction, types ...RelationshipType) int {
	return len(n.Relationships(dir, types...))
}

func pick(all []*Relationship, byType map[RelationshipType][]*Relationship, types []RelationshipType) []*Relationship {
	switch len(types) {
	case 0:
		return slices.Clone(all)
	case 1:
		return slices.Clone(byType[types[0]])
	}
	var result []*Relationship
	for _, r := range all {
		if slices.Contains(types, r.typ) {
			result = append(result, r)
		}
	}
	return result
}
