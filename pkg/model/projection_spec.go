package model

import (
	"reflect"

	"github.com/matzehuels/modelgraph/pkg/container"
	"github.com/matzehuels/modelgraph/pkg/errors"
)

// configurationStrategy decides how configuration reaches the backing value.
type configurationStrategy interface {
	configure(action container.Action) error
	realize() error
	onRealize(callback func() error)
	isRealized() bool
	provider() container.Provider
}

// existingStrategy configures an already-materialized instance in place.
type existingStrategy struct {
	target any
}

func (s *existingStrategy) configure(action container.Action) error { return action(s.target) }
func (s *existingStrategy) realize() error                          { return nil }
func (s *existingStrategy) onRealize(func() error)                  {}
func (s *existingStrategy) isRealized() bool                        { return true }
func (s *existingStrategy) provider() container.Provider            { return container.Fixed(s.target) }

// providedStrategy forwards configuration to a named provider's own deferred
// configuration, so ordering follows the provider's queue.
type providedStrategy struct {
	target   container.NamedProvider
	realized bool
	callback func() error
}

func newProvidedStrategy(target container.NamedProvider) (*providedStrategy, error) {
	s := &providedStrategy{target: target}
	err := target.Configure(func(any) error {
		s.realized = true
		if s.callback != nil {
			return s.callback()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *providedStrategy) configure(action container.Action) error { return s.target.Configure(action) }
func (s *providedStrategy) onRealize(callback func() error)         { s.callback = callback }
func (s *providedStrategy) isRealized() bool                        { return s.realized }
func (s *providedStrategy) provider() container.Provider            { return s.target }

func (s *providedStrategy) realize() error {
	_, err := s.target.Get()
	return err
}

// ProjectionSpec is the value and lifecycle behind a projection.
type ProjectionSpec struct {
	typ               reflect.Type
	strategy          configurationStrategy
	finalizeActions   []container.Action
	finalized         bool
	realizeOnFinalize bool
}

// Type returns the projection type.
func (s *ProjectionSpec) Type() reflect.Type { return s.typ }

// IsProvided reports whether the projection is backed by a named provider.
func (s *ProjectionSpec) IsProvided() bool {
	_, ok := s.strategy.(*providedStrategy)
	return ok
}

// IsFinalized reports whether [ProjectionSpec.FinalizeProjection] ran.
func (s *ProjectionSpec) IsFinalized() bool { return s.finalized }

// IsRealized reports whether the backing value exists.
func (s *ProjectionSpec) IsRealized() bool { return s.strategy.isRealized() }

// PendingFinalizeActions returns how many finalize actions are queued.
func (s *ProjectionSpec) PendingFinalizeActions() int { return len(s.finalizeActions) }

// Configure applies action through the configuration strategy: immediately
// for an existing instance, deferred to the provider otherwise.
func (s *ProjectionSpec) Configure(action container.Action) error {
	return s.strategy.configure(action)
}

// Finalize queues action until finalization. After finalization it behaves
// like [ProjectionSpec.Configure].
func (s *ProjectionSpec) Finalize(action container.Action) error {
	if s.finalized {
		return s.strategy.configure(action)
	}
	s.finalizeActions = append(s.finalizeActions, action)
	return nil
}

// FinalizeProjection replays queued finalize actions in arrival order,
// marks the projection finalized and realizes it when requested. Calling it
// again replays nothing.
func (s *ProjectionSpec) FinalizeProjection() error {
	_, err := s.finalizeProjection()
	return err
}

func (s *ProjectionSpec) finalizeProjection() (int, error) {
	replayed := 0
	// actions queued by a replayed action are replayed too
	for len(s.finalizeActions) > 0 {
		action := s.finalizeActions[0]
		s.finalizeActions = s.finalizeActions[1:]
		replayed++
		if err := s.strategy.configure(action); err != nil {
			return replayed, err
		}
	}
	s.finalizeActions = nil
	s.finalized = true
	if s.realizeOnFinalize {
		return replayed, s.RealizeProjection()
	}
	return replayed, nil
}

// RealizeProjection forces the backing value. Repeated calls are safe; the
// provider memoizes its value.
func (s *ProjectionSpec) RealizeProjection() error {
	return s.strategy.realize()
}

// RealizeOnFinalize requests realization at finalization, or realizes now
// when the projection is already finalized.
func (s *ProjectionSpec) RealizeOnFinalize() error {
	s.realizeOnFinalize = true
	if s.finalized {
		return s.RealizeProjection()
	}
	return nil
}

// CanBeViewedAs reports whether t is a provider type or the projection type
// is assignable to t.
func (s *ProjectionSpec) CanBeViewedAs(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Implements(container.ProviderType) {
		return true
	}
	return s.typ.AssignableTo(t)
}

// Get returns the backing provider when t is a provider type, otherwise the
// realized value.
func (s *ProjectionSpec) Get(t reflect.Type) (any, error) {
	if !s.CanBeViewedAs(t) {
		return nil, errors.New(errors.ErrCodeUnviewableProjection,
			"projection of '%s' cannot be viewed as '%s'", container.TypeName(s.typ), container.TypeName(t))
	}
	if t.Implements(container.ProviderType) {
		p := s.strategy.provider()
		if !reflect.TypeOf(p).AssignableTo(t) {
			return nil, errors.New(errors.ErrCodeTypeMismatch,
				"projection provider %T is not a %s", p, container.TypeName(t))
		}
		return p, nil
	}
	v, err := s.strategy.provider().Get()
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Provider returns the backing provider.
func (s *ProjectionSpec) Provider() container.Provider { return s.strategy.provider() }
