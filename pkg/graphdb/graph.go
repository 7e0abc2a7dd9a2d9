package graphdb

import (
	"errors"
	"maps"
	"slices"

	"github.com/google/uuid"
)

var (
	// ErrNilNode is returned by [Node.CreateRelationshipTo] when the target
	// node is nil.
	ErrNilNode = errors.New("relationship target must not be nil")

	// ErrForeignNode is returned by [Node.CreateRelationshipTo] when the target
	// node belongs to a different graph. Relationships never cross graphs.
	ErrForeignNode = errors.New("relationship target belongs to another graph")
)

// NodeID addresses a node within its graph. Ids are dense and assigned in
// creation order starting at zero.
type NodeID int

// RelationshipID addresses a relationship within its graph.
type RelationshipID int

// Label tags a node with a kind. A node may carry several labels.
type Label string

// RelationshipType names the kind of a relationship, such as "OWNS".
type RelationshipType string

// RelationshipTypeWithName returns the relationship type with the given name.
func RelationshipTypeWithName(name string) RelationshipType {
	return RelationshipType(name)
}

// Name returns the type's name.
func (t RelationshipType) Name() string { return string(t) }

// Direction selects which relationships of a node a traversal considers.
type Direction int

const (
	// Outgoing selects relationships that start at the node.
	Outgoing Direction = iota
	// Incoming selects relationships that end at the node.
	Incoming
	// Both selects relationships in either direction.
	Both
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Outgoing:
		return "OUTGOING"
	case Incoming:
		return "INCOMING"
	case Both:
		return "BOTH"
	default:
		return "UNKNOWN"
	}
}

// Properties stores the key-value pairs attached to a node or relationship.
type Properties map[string]any

// Graph is an arena of nodes and relationships.
//
// The zero value is not usable - use [New].
type Graph struct {
	id     uuid.UUID
	nodes  []*Node
	rels   []*Relationship
	labels map[Label][]*Node
}

// New creates an empty graph with a fresh random id.
func New() *Graph {
	return &Graph{
		id:     uuid.New(),
		labels: make(map[Label][]*Node),
	}
}

// ID returns the graph's unique id. Renderers and logs use it to tell
// graphs from separate model builds apart.
func (g *Graph) ID() uuid.UUID { return g.id }

// CreateNode appends a new node with no labels and no properties.
func (g *Graph) CreateNode() *Node {
	n := &Node{
		graph: g,
		id:    NodeID(len(g.nodes)),
		props: Properties{},
		out:   make(map[RelationshipType][]*Relationship),
		in:    make(map[RelationshipType][]*Relationship),
	}
	g.nodes = append(g.nodes, n)
	return n
}

// Node returns the node with the given id.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	if id < 0 || int(id) >= len(g.nodes) {
		return nil, false
	}
	return g.nodes[id], true
}

// Nodes returns all nodes in creation order.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.nodes) }

// Relationships returns all relationships in creation order.
func (g *Graph) Relationships() []*Relationship { return slices.Clone(g.rels) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// RelationshipCount returns the number of relationships.
func (g *Graph) RelationshipCount() int { return len(g.rels) }

// NodesWithLabel returns the nodes carrying label, in the order the label
// was added.
func (g *Graph) NodesWithLabel(label Label) []*Node {
	return slices.Clone(g.labels[label])
}

// Labels returns every label in use, sorted.
func (g *Graph) Labels() []Label {
	return slices.Sorted(maps.Keys(g.labels))
}

func (g *Graph) newRelationship(start, end *Node, t RelationshipType) *Relationship {
	r := &Relationship{
		graph: g,
		id:    RelationshipID(len(g.rels)),
		start: start,
		end:   end,
		typ:   t,
		props: Properties{},
	}
	g.rels = append(g.rels, r)
	start.outAll = append(start.outAll, r)
	start.out[t] = append(start.out[t], r)
	end.inAll = append(end.inAll, r)
	end.in[t] = append(end.in[t], r)
	return r
}
