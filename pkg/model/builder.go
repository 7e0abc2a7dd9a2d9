package model

import (
	"reflect"

	"github.com/go-openapi/inflect"

	"github.com/matzehuels/modelgraph/pkg/container"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/observability"
)

// ProjectionBuilder collects what [Node.NewProjection] needs: a type, and at
// most one of a provider or an instance.
//
// With only a type, the owning model creates the backing value: through its
// registry when one accepts the type, else through its instantiator.
type ProjectionBuilder struct {
	typ         reflect.Type
	provider    container.NamedProvider
	instance    any
	hasInstance bool
}

// Type declares the projection type.
func (b *ProjectionBuilder) Type(t reflect.Type) *ProjectionBuilder {
	b.typ = t
	return b
}

// ForProvider backs the projection with a lazily-realized element.
func (b *ProjectionBuilder) ForProvider(p container.NamedProvider) *ProjectionBuilder {
	b.provider = p
	return b
}

// ForInstance backs the projection with an existing value.
func (b *ProjectionBuilder) ForInstance(v any) *ProjectionBuilder {
	b.instance = v
	b.hasInstance = true
	return b
}

// TypeOf declares T as the projection type.
func TypeOf[T any](b *ProjectionBuilder) *ProjectionBuilder {
	return b.Type(reflect.TypeFor[T]())
}

func (b *ProjectionBuilder) build(owner *Node) (*ProjectionSpec, error) {
	if b.provider != nil && b.hasInstance {
		return nil, errors.New(errors.ErrCodeInvalidInput, "projection cannot have both a provider and an instance")
	}
	if b.hasInstance && b.instance == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "projection instance must not be nil")
	}

	switch {
	case b.typ == nil && b.provider == nil && !b.hasInstance:
		return nil, errors.New(errors.ErrCodeInvalidInput, "projection needs a type, a provider or an instance")
	case b.typ == nil:
		b.typ = b.inferredType()
	case b.provider == nil && !b.hasInstance:
		if err := b.create(owner); err != nil {
			return nil, err
		}
	}

	if inferred := b.inferredType(); inferred == nil || !inferred.AssignableTo(b.typ) {
		return nil, errors.New(errors.ErrCodeTypeMismatch,
			"projection type '%s' is not assignable from '%s'", container.TypeName(b.typ), container.TypeName(inferred))
	}

	var strategy configurationStrategy
	if b.provider != nil {
		s, err := newProvidedStrategy(b.provider)
		if err != nil {
			return nil, err
		}
		strategy = s
	} else {
		strategy = &existingStrategy{target: b.instance}
	}

	spec := &ProjectionSpec{typ: b.typ, strategy: strategy}
	if owner != nil {
		strategy.onRealize(func() error {
			owner.model.logger.Debug("projection realized", "path", owner.Path(), "type", container.TypeName(spec.typ))
			observability.Model().OnProjectionRealized(owner.Path(), container.TypeName(spec.typ))
			return realizeOwner(owner)
		})
	}
	return spec, nil
}

func (b *ProjectionBuilder) inferredType() reflect.Type {
	if b.provider != nil {
		return b.provider.Type()
	}
	return container.PublicTypeOf(b.instance)
}

// create backs a type-only projection.
func (b *ProjectionBuilder) create(owner *Node) error {
	m := owner.model
	if m.registry != nil && m.registry.CanRegisterType(b.typ) {
		name, err := calculateName(owner, b.typ)
		if err != nil {
			return err
		}
		p, err := m.registry.RegisterIfAbsent(name, b.typ)
		if err != nil {
			return err
		}
		c, err := m.registry.ContainerFor(b.typ)
		switch {
		case err == nil:
			if p, err = m.decorators.ForContainer(c).Decorate(p); err != nil {
				return err
			}
		case !errors.Is(err, errors.ErrCodeUnsupported):
			return err
		}
		b.provider = p
		return nil
	}
	if m.instantiator != nil {
		v, err := m.instantiator(b.typ)
		if err != nil {
			return err
		}
		b.ForInstance(v)
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput,
		"cannot create a projection of '%s' on %s: no registry or instantiator can provide it", container.TypeName(b.typ), owner)
}

// realizeOwner realizes the ancestors of node, outermost first, then every
// projection of node.
func realizeOwner(node *Node) error {
	if parent, ok := node.Parent(); ok {
		if err := realizeOwner(parent); err != nil {
			return err
		}
	}
	for _, p := range node.Projections() {
		if err := p.Realize(); err != nil {
			return err
		}
	}
	return nil
}

var taskType = reflect.TypeFor[container.Task]()

// calculateName derives a registration name from the owner's position in the
// tree. Ancestor names are joined from the root down in camel case. Task
// names lead with the owner's name ("compileMainDebug"); other names end with
// it ("mainDebugSources").
func calculateName(owner *Node, t reflect.Type) (string, error) {
	if owner.IsRoot() {
		return "", errors.New(errors.ErrCodeInvalidInput,
			"cannot calculate a registration name for '%s' on the root node", container.TypeName(t))
	}
	prefix := ""
	for cur, ok := owner.Parent(); ok; cur, ok = cur.Parent() {
		if name := cur.Name(); name != "" {
			prefix = name + capitalize(prefix)
		}
	}

	own := owner.Name()
	switch {
	case t.Implements(taskType):
		return own + capitalize(prefix), nil
	case prefix == "":
		return own, nil
	default:
		return prefix + capitalize(own), nil
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return inflect.Capitalize(s)
}
