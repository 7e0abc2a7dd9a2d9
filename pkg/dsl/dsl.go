// Package dsl offers get-or-create accessors over a model tree, the way
// build scripts describe a model: by name, without caring whether an entity
// already exists.
package dsl

import (
	"reflect"

	"github.com/matzehuels/modelgraph/pkg/container"
	"github.com/matzehuels/modelgraph/pkg/model"
)

// Node wraps a model node with get-or-create accessors.
type Node struct {
	delegate *model.Node
}

// Of wraps n.
func Of(n *model.Node) *Node { return &Node{delegate: n} }

// Model returns the wrapped node.
func (n *Node) Model() *model.Node { return n.delegate }

// Node returns the child named after identity, creating it when no child
// has that name, then applies configure in order.
func (n *Node) Node(identity any, configure ...func(*Node) error) (*Node, error) {
	child, ok := n.delegate.FindNamed(container.NameOf(identity))
	if !ok {
		var err error
		if child, err = n.delegate.NewChildNode(identity); err != nil {
			return nil, err
		}
	}
	out := Of(child)
	for _, fn := range configure {
		if err := fn(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Projection returns the projection of n whose type is t, creating a
// type-only projection when none exists. actions run when the value is
// realized.
func (n *Node) Projection(t reflect.Type, actions ...container.Action) (*model.Projection, error) {
	p, ok := projectionOfType(n.delegate, t)
	if !ok {
		var err error
		if p, err = n.delegate.NewProjection(func(b *model.ProjectionBuilder) { b.Type(t) }); err != nil {
			return nil, err
		}
	}
	for _, action := range actions {
		if err := p.WhenRealized(t, action); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// NodeWithProjection gets or creates the child named after identity and
// gets or creates its projection of type t.
func (n *Node) NodeWithProjection(identity any, t reflect.Type, actions ...container.Action) (*model.Projection, error) {
	child, err := n.Node(identity)
	if err != nil {
		return nil, err
	}
	return child.Projection(t, actions...)
}

func projectionOfType(n *model.Node, t reflect.Type) (*model.Projection, bool) {
	for _, p := range n.Projections() {
		if p.Type() == t {
			return p, true
		}
	}
	return nil, false
}
