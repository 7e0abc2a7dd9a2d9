package model

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/matzehuels/modelgraph/pkg/container"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/graphdb"
	"github.com/matzehuels/modelgraph/pkg/observability"
)

type rootIdentity struct{}

func (rootIdentity) String() string { return "<root>" }

// RootIdentity is the identity reported by the root node.
var RootIdentity any = rootIdentity{}

// Node is a model entity backed by one graph node.
//
// Node values are memoized by their model, so two *Node values refer to the
// same entity exactly when they are equal.
type Node struct {
	model    *Model
	delegate *graphdb.Node
}

// Model returns the model the node belongs to.
func (n *Node) Model() *Model { return n.model }

// ID returns the id of the backing graph node.
func (n *Node) ID() graphdb.NodeID { return n.delegate.ID() }

// Identity returns the identity the node was created with, or
// [RootIdentity] for the root.
func (n *Node) Identity() any {
	return n.delegate.GetPropertyOr(PropIdentity, RootIdentity)
}

// Name returns the name derived from the identity. The root's name is empty.
func (n *Node) Name() string {
	name, _ := n.delegate.GetPropertyOr(PropName, "").(string)
	return name
}

// IsRoot reports whether n is the model root.
func (n *Node) IsRoot() bool { return n == n.model.root }

// Path returns the dot-joined names from the root down to n. The root's path
// is empty.
func (n *Node) Path() string {
	var names []string
	for cur := n; !cur.IsRoot(); {
		names = append(names, cur.Name())
		parent, ok := cur.Parent()
		if !ok {
			break
		}
		cur = parent
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, ".")
}

// String returns the node's path, or "<root>".
func (n *Node) String() string {
	if n.IsRoot() {
		return RootIdentity.(fmt.Stringer).String()
	}
	return n.Path()
}

// Parent returns the node owning n. The root has no parent.
func (n *Node) Parent() (*Node, bool) {
	rel, ok := n.delegate.SingleRelationship(OwnsRelationship, graphdb.Incoming)
	if !ok {
		return nil, false
	}
	return n.model.node(rel.Start()), true
}

// ChildNodes returns the nodes owned by n in creation order.
func (n *Node) ChildNodes() []*Node {
	rels := n.delegate.Relationships(graphdb.Outgoing, OwnsRelationship)
	out := make([]*Node, len(rels))
	for i, r := range rels {
		out[i] = n.model.node(r.End())
	}
	return out
}

// Projections returns the projections attached to n in creation order.
func (n *Node) Projections() []*Projection {
	rels := n.delegate.Relationships(graphdb.Outgoing, ProjectionsRelationship)
	out := make([]*Projection, len(rels))
	for i, r := range rels {
		out[i] = n.model.projection(r.End())
	}
	return out
}

// Find returns the child whose identity equals identity.
func (n *Node) Find(identity any) (*Node, bool) {
	for _, child := range n.ChildNodes() {
		if sameIdentity(child.Identity(), identity) {
			return child, true
		}
	}
	return nil, false
}

// FindNamed returns the first child whose name is name.
func (n *Node) FindNamed(name string) (*Node, bool) {
	for _, child := range n.ChildNodes() {
		if child.Name() == name {
			return child, true
		}
	}
	return nil, false
}

// Child returns the child whose identity equals identity, or NOT_FOUND.
func (n *Node) Child(identity any) (*Node, error) {
	if child, ok := n.Find(identity); ok {
		return child, nil
	}
	return nil, errors.New(errors.ErrCodeNotFound, "no child node with identity '%v'", identity)
}

// NewChildNode creates a child of n with the given identity.
//
// It fails with INVALID_INPUT for a nil or root identity and with
// DUPLICATE_CHILD when a sibling already uses an equal identity.
func (n *Node) NewChildNode(identity any) (*Node, error) {
	if identity == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "child node identity must not be nil")
	}
	if sameIdentity(identity, RootIdentity) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot use the root identity as a child node identity")
	}
	if _, exists := n.Find(identity); exists {
		return nil, errors.New(errors.ErrCodeDuplicateChild, "child node with identity '%v' already exists under %s", identity, n)
	}

	gn := n.model.graph.CreateNode().
		AddLabel(NodeLabel).
		Property(PropIdentity, identity).
		Property(PropName, container.NameOf(identity))
	if _, err := n.delegate.CreateRelationshipTo(gn, OwnsRelationship); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "linking child node")
	}
	child := n.model.node(gn)
	n.model.logger.Debug("node created", "path", child.Path())
	observability.Model().OnNodeCreated(child.Path())
	return child, nil
}

// NewProjection builds a projection with configure and attaches it to n.
func (n *Node) NewProjection(configure func(*ProjectionBuilder)) (*Projection, error) {
	b := &ProjectionBuilder{}
	if configure != nil {
		configure(b)
	}
	spec, err := b.build(n)
	if err != nil {
		return nil, err
	}

	gn := n.model.graph.CreateNode().
		AddLabel(ProjectionLabel).
		Property(PropSpec, spec)
	if _, err := n.delegate.CreateRelationshipTo(gn, ProjectionsRelationship); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "linking projection")
	}
	p := n.model.projection(gn)
	n.model.order = append(n.model.order, p)
	n.model.logger.Debug("projection created", "path", n.Path(), "type", container.TypeName(spec.Type()), "provided", spec.IsProvided())
	observability.Model().OnProjectionCreated(n.Path(), container.TypeName(spec.Type()), spec.IsProvided())
	if err := n.model.projectionCreated(p); err != nil {
		return nil, err
	}
	return p, nil
}

// WhenProjectionKnown calls fn for every projection of n and its
// descendants, owners in pre-order, and then for each projection created
// under n later. A failing fn stops the replay; for a later projection the
// error is returned by [Node.NewProjection], with the projection attached.
func (n *Node) WhenProjectionKnown(fn func(*Projection) error) error {
	var known []*Projection
	n.walk(func(cur *Node) {
		known = append(known, cur.Projections()...)
	})
	n.model.listeners = append(n.model.listeners, projectionListener{scope: n, fn: fn})
	for _, p := range known {
		if err := fn(p); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.ChildNodes() {
		child.walk(fn)
	}
}

// isAncestorOrSelf reports whether other is n or lies below n.
func (n *Node) isAncestorOrSelf(other *Node) bool {
	for cur, ok := other, other != nil; ok; cur, ok = cur.Parent() {
		if cur == n {
			return true
		}
	}
	return false
}

// CanBeViewedAs reports whether any projection of n can be viewed as t.
func (n *Node) CanBeViewedAs(t reflect.Type) bool {
	_, ok := n.projectionOf(t)
	return ok
}

// Get returns the value of the first projection viewable as t. It fails
// with UNVIEWABLE_PROJECTION when there is none.
func (n *Node) Get(t reflect.Type) (any, error) {
	p, ok := n.projectionOf(t)
	if !ok {
		return nil, n.unviewable(t)
	}
	return p.Get(t)
}

// As returns a provider for the first projection viewable as t, or an
// absent provider.
func (n *Node) As(t reflect.Type) container.Provider {
	p, ok := n.projectionOf(t)
	if !ok {
		return container.Absent()
	}
	return p.As(t)
}

// WhenRealized runs action on the value of the first projection viewable as
// t once it is realized.
func (n *Node) WhenRealized(t reflect.Type, action container.Action) error {
	p, ok := n.projectionOf(t)
	if !ok {
		return n.unviewable(t)
	}
	return p.WhenRealized(t, action)
}

func (n *Node) projectionOf(t reflect.Type) (*Projection, bool) {
	for _, p := range n.Projections() {
		if p.CanBeViewedAs(t) {
			return p, true
		}
	}
	return nil, false
}

func (n *Node) unviewable(t reflect.Type) error {
	return errors.New(errors.ErrCodeUnviewableProjection, "no projection of '%s' found on %s", container.TypeName(t), n)
}

// Get returns the value of the first projection of n viewable as T.
func Get[T any](n *Node) (T, error) {
	var zero T
	v, err := n.Get(reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, errors.New(errors.ErrCodeTypeMismatch, "projection value %T is not a %s", v, reflect.TypeFor[T]())
	}
	return t, nil
}

// CanBeViewedAs reports whether any projection of n can be viewed as T.
func CanBeViewedAs[T any](n *Node) bool {
	return n.CanBeViewedAs(reflect.TypeFor[T]())
}

// sameIdentity compares identities by value when both values can be
// compared and structurally otherwise. A comparable type may still hold an
// uncomparable value in an interface field, so the check is on the values.
func sameIdentity(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if reflect.ValueOf(a).Comparable() && reflect.ValueOf(b).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
