package graphdb

import (
	"maps"
	"slices"
)

// Relationship is a directed, typed edge between two nodes of one graph.
type Relationship struct {
	graph *Graph
	id    RelationshipID
	start *Node
	end   *Node
	typ   RelationshipType
	props Properties
}

// ID returns the relationship's id within its graph.
func (r *Relationship) ID() RelationshipID { return r.id }

// Start returns the node the relationship leaves from.
func (r *Relationship) Start() *Node { return r.start }

// End returns the node the relationship points to.
func (r *Relationship) End() *Node { return r.end }

// Type returns the relationship type.
func (r *Relationship) Type() RelationshipType { return r.typ }

// IsType reports whether the relationship has type t.
func (r *Relationship) IsType(t RelationshipType) bool { return r.typ == t }

// Other returns the endpoint opposite n. For a node that is not an endpoint
// it returns nil.
func (r *Relationship) Other(n *Node) *Node {
	switch n {
	case r.start:
		return r.end
	case r.end:
		return r.start
	default:
		return nil
	}
}

// Property sets key to value and returns the relationship for chaining.
func (r *Relationship) Property(key string, value any) *Relationship {
	r.props[key] = value
	return r
}

// SetProperty sets key to value, replacing any previous value.
func (r *Relationship) SetProperty(key string, value any) { r.props[key] = value }

// GetProperty returns the value stored under key.
func (r *Relationship) GetProperty(key string) (any, bool) {
	v, ok := r.props[key]
	return v, ok
}

// GetPropertyOr returns the value stored under key, or def when absent.
func (r *Relationship) GetPropertyOr(key string, def any) any {
	if v, ok := r.props[key]; ok {
		return v
	}
	return def
}

// HasProperty reports whether a value is stored under key.
func (r *Relationship) HasProperty(key string) bool {
	_, ok := r.props[key]
	return ok
}

// PropertyKeys returns the relationship's property keys, sorted.
func (r *Relationship) PropertyKeys() []string {
	return slices.Sorted(maps.Keys(r.props))
}
