package model

import (
	"reflect"

	"github.com/matzehuels/modelgraph/pkg/container"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/graphdb"
	"github.com/matzehuels/modelgraph/pkg/observability"
)

// Projection is a typed view attached to a node, backed by a graph node
// that stores its [ProjectionSpec].
type Projection struct {
	model    *Model
	delegate *graphdb.Node
}

// ID returns the id of the backing graph node.
func (p *Projection) ID() graphdb.NodeID { return p.delegate.ID() }

// Spec returns the projection's spec.
func (p *Projection) Spec() *ProjectionSpec {
	spec, _ := p.delegate.GetPropertyOr(PropSpec, nil).(*ProjectionSpec)
	return spec
}

// Type returns the projection type.
func (p *Projection) Type() reflect.Type { return p.Spec().Type() }

// Owner returns the node the projection is attached to.
func (p *Projection) Owner() *Node {
	rel, ok := p.delegate.SingleRelationship(ProjectionsRelationship, graphdb.Incoming)
	if !ok {
		return nil
	}
	return p.model.node(rel.Start())
}

// CanBeViewedAs reports whether the projection can be viewed as t.
func (p *Projection) CanBeViewedAs(t reflect.Type) bool { return p.Spec().CanBeViewedAs(t) }

// Get returns the projection viewed as t: the backing provider for a
// provider type, otherwise the realized value.
func (p *Projection) Get(t reflect.Type) (any, error) {
	if !p.CanBeViewedAs(t) {
		return nil, p.unviewable(t)
	}
	return p.Spec().Get(t)
}

// Value returns the realized value.
func (p *Projection) Value() (any, error) { return p.Get(p.Type()) }

// As returns the backing provider when the projection can be viewed as t,
// else an absent provider.
func (p *Projection) As(t reflect.Type) container.Provider {
	if !p.CanBeViewedAs(t) {
		return container.Absent()
	}
	return p.Spec().Provider()
}

// Configure applies action to the projection value. See
// [ProjectionSpec.Configure].
func (p *Projection) Configure(action container.Action) error {
	return p.Spec().Configure(action)
}

// WhenRealized runs action on the value once it is realized. It fails with
// UNVIEWABLE_PROJECTION when the projection cannot be viewed as t.
func (p *Projection) WhenRealized(t reflect.Type, action container.Action) error {
	if !p.CanBeViewedAs(t) {
		return p.unviewable(t)
	}
	return p.Spec().Configure(action)
}

// WhenFinalized queues action until the projection is finalized.
func (p *Projection) WhenFinalized(action container.Action) error {
	return p.Spec().Finalize(action)
}

// WhenFinalizedAs is [Projection.WhenFinalized] after checking the
// projection can be viewed as t.
func (p *Projection) WhenFinalizedAs(t reflect.Type, action container.Action) error {
	if !p.CanBeViewedAs(t) {
		return p.unviewable(t)
	}
	return p.Spec().Finalize(action)
}

// FinalizeProjection finalizes the projection.
func (p *Projection) FinalizeProjection() error {
	spec := p.Spec()
	replayed, err := spec.finalizeProjection()
	if err != nil {
		return err
	}
	path := p.ownerPath()
	p.model.logger.Debug("projection finalized", "path", path, "type", container.TypeName(spec.Type()), "replayed", replayed)
	observability.Model().OnProjectionFinalized(path, container.TypeName(spec.Type()), replayed)
	return nil
}

// RealizeOnFinalize requests realization on finalization. See
// [ProjectionSpec.RealizeOnFinalize].
func (p *Projection) RealizeOnFinalize() error { return p.Spec().RealizeOnFinalize() }

// Realize forces the backing value.
func (p *Projection) Realize() error { return p.Spec().RealizeProjection() }

// IsRealized reports whether the backing value exists.
func (p *Projection) IsRealized() bool { return p.Spec().IsRealized() }

func (p *Projection) ownerPath() string {
	if owner := p.Owner(); owner != nil {
		return owner.Path()
	}
	return ""
}

func (p *Projection) unviewable(t reflect.Type) error {
	return errors.New(errors.ErrCodeUnviewableProjection, "projection cannot be viewed as '%s'", container.TypeName(t))
}

// GetAs returns the projection value viewed as T.
func GetAs[T any](p *Projection) (T, error) {
	var zero T
	v, err := p.Get(reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, errors.New(errors.ErrCodeTypeMismatch, "projection value %T is not a %s", v, reflect.TypeFor[T]())
	}
	return t, nil
}
