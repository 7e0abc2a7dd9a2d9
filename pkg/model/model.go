package model

import (
	"io"
	"reflect"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/modelgraph/pkg/container"
	"github.com/matzehuels/modelgraph/pkg/graphdb"
)

// Graph vocabulary used by the model.
const (
	OwnsRelationship        graphdb.RelationshipType = "OWNS"
	ProjectionsRelationship graphdb.RelationshipType = "PROJECTIONS"

	NodeLabel       graphdb.Label = "NODE"
	ProjectionLabel graphdb.Label = "PROJECTION"
)

// Property keys stored on graph nodes.
const (
	PropIdentity = "identity"
	PropName     = "name"
	PropSpec     = "spec"
)

// Registry creates named elements for type-only projections. It is
// satisfied by *registry.Registry.
type Registry interface {
	CanRegisterType(t reflect.Type) bool
	RegisterIfAbsent(name string, t reflect.Type, actions ...container.Action) (container.NamedProvider, error)
	ContainerFor(t reflect.Type) (*container.Container, error)
}

// Instantiator creates an eager instance of t.
type Instantiator func(t reflect.Type) (any, error)

// Option configures a [Model].
type Option func(*Model)

// WithRegistry sets the registry used for type-only projections.
func WithRegistry(r Registry) Option {
	return func(m *Model) { m.registry = r }
}

// WithInstantiator sets the fallback factory for type-only projections
// whose type no registry accepts.
func WithInstantiator(fn Instantiator) Option {
	return func(m *Model) { m.instantiator = fn }
}

// WithPass shares a configuration pass with other components, typically the
// registry the model uses.
func WithPass(p *container.Pass) Option {
	return func(m *Model) {
		if p != nil {
			m.pass = p
		}
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// Model owns the graph and hands out memoized wrappers for its entities.
//
// The zero value is not usable - use [New]. A Model is not safe for
// concurrent use.
type Model struct {
	graph        *graphdb.Graph
	root         *Node
	nodes        map[graphdb.NodeID]*Node
	projections  map[graphdb.NodeID]*Projection
	order        []*Projection
	registry     Registry
	instantiator Instantiator
	pass         *container.Pass
	decorators   *DecoratorFactory
	listeners    []projectionListener
	logger       *log.Logger
}

// projectionListener observes projections created under scope.
type projectionListener struct {
	scope *Node
	fn    func(*Projection) error
}

// New creates a model containing only the root node.
func New(opts ...Option) *Model {
	m := &Model{
		graph:       graphdb.New(),
		nodes:       make(map[graphdb.NodeID]*Node),
		projections: make(map[graphdb.NodeID]*Projection),
		pass:        container.NewPass(),
		logger:      log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With("graph", m.graph.ID())
	m.decorators = NewDecoratorFactory(m.pass)
	m.root = m.node(m.graph.CreateNode().AddLabel(NodeLabel))
	return m
}

// Root returns the root node. It has no parent and no identity of its own.
func (m *Model) Root() *Node { return m.root }

// Graph returns the backing graph.
func (m *Model) Graph() *graphdb.Graph { return m.graph }

// Pass returns the configuration pass shared by the model's components.
func (m *Model) Pass() *container.Pass { return m.pass }

// Decorators returns the self-mutation decorator factory bound to the pass.
func (m *Model) Decorators() *DecoratorFactory { return m.decorators }

// Logger returns the model's logger. Its entries carry the graph id.
func (m *Model) Logger() *log.Logger { return m.logger }

// Nodes returns every node, root first, in creation order.
func (m *Model) Nodes() []*Node {
	gns := m.graph.NodesWithLabel(NodeLabel)
	out := make([]*Node, len(gns))
	for i, gn := range gns {
		out[i] = m.node(gn)
	}
	return out
}

// Projections returns every projection in creation order.
func (m *Model) Projections() []*Projection {
	out := make([]*Projection, len(m.order))
	copy(out, m.order)
	return out
}

// FinalizeAll finalizes every projection in creation order, including
// projections created while finalizing.
func (m *Model) FinalizeAll() error {
	for i := 0; i < len(m.order); i++ {
		if err := m.order[i].FinalizeProjection(); err != nil {
			return err
		}
	}
	return nil
}

// RealizeAll realizes every projection in creation order.
func (m *Model) RealizeAll() error {
	for i := 0; i < len(m.order); i++ {
		if err := m.order[i].Realize(); err != nil {
			return err
		}
	}
	return nil
}

// projectionCreated notifies the listeners whose scope holds p's owner, in
// subscription order.
func (m *Model) projectionCreated(p *Projection) error {
	owner := p.Owner()
	for _, l := range slices.Clone(m.listeners) {
		if !l.scope.isAncestorOrSelf(owner) {
			continue
		}
		if err := l.fn(p); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) node(gn *graphdb.Node) *Node {
	if n, ok := m.nodes[gn.ID()]; ok {
		return n
	}
	n := &Node{model: m, delegate: gn}
	m.nodes[gn.ID()] = n
	return n
}

func (m *Model) projection(gn *graphdb.Node) *Projection {
	if p, ok := m.projections[gn.ID()]; ok {
		return p
	}
	p := &Projection{model: m, delegate: gn}
	m.projections[gn.ID()] = p
	return p
}
