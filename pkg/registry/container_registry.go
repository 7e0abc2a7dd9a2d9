package registry

import (
	"reflect"

	"github.com/matzehuels/modelgraph/pkg/container"
	"github.com/matzehuels/modelgraph/pkg/errors"
)

// ContainerRegistry registers elements in one container.
type ContainerRegistry interface {
	// Register creates a new element. It fails if the name is taken.
	Register(name string, t reflect.Type, actions ...container.Action) (container.NamedProvider, error)

	// RegisterIfAbsent returns the element named name, creating it if it
	// does not exist. actions only apply to a newly created element.
	RegisterIfAbsent(name string, t reflect.Type, actions ...container.Action) (container.NamedProvider, error)

	// RegistrableTypes returns the accepted types.
	RegistrableTypes() RegistrableTypes

	// Container returns the backing container, or UNSUPPORTED when the
	// registry does not expose it.
	Container() (*container.Container, error)
}

// lazyRegistry registers lazily-created elements through
// [container.Container.Register].
type lazyRegistry struct {
	kind  string
	c     *container.Container
	types func() RegistrableTypes
}

// NewNamedContainerRegistry accepts exactly the element type of c.
func NewNamedContainerRegistry(c *container.Container) ContainerRegistry {
	types := RegistrableTypes{InstanceOf(c.ElementType())}
	return &lazyRegistry{kind: "named", c: c, types: func() RegistrableTypes { return types }}
}

// NewPolymorphicContainerRegistry accepts exactly each type c can create.
// Types declared on c later are picked up.
func NewPolymorphicContainerRegistry(c *container.Container) ContainerRegistry {
	return &lazyRegistry{kind: "polymorphic", c: c, types: func() RegistrableTypes {
		creatable := c.CreatableTypes()
		types := make(RegistrableTypes, len(creatable))
		for i, t := range creatable {
			types[i] = InstanceOf(t)
		}
		return types
	}}
}

// NewTaskContainerRegistry accepts every type implementing [container.Task].
func NewTaskContainerRegistry(c *container.Container) ContainerRegistry {
	types := RegistrableTypes{SubtypeOf(reflect.TypeFor[container.Task]())}
	return &lazyRegistry{kind: "task", c: c, types: func() RegistrableTypes { return types }}
}

func (r *lazyRegistry) Register(name string, t reflect.Type, actions ...container.Action) (container.NamedProvider, error) {
	return r.c.Register(name, t, actions...)
}

func (r *lazyRegistry) RegisterIfAbsent(name string, t reflect.Type, actions ...container.Action) (container.NamedProvider, error) {
	if p, ok := r.c.Find(name); ok {
		return existing(r.c, p, t)
	}
	return r.c.Register(name, t, actions...)
}

func (r *lazyRegistry) RegistrableTypes() RegistrableTypes { return r.types() }

func (r *lazyRegistry) Container() (*container.Container, error) { return r.c, nil }

func (r *lazyRegistry) String() string { return r.kind + " registry '" + r.c.Name() + "'" }

// existing checks that the element found under a requested name can serve
// the requested type.
func existing(c *container.Container, p container.NamedProvider, t reflect.Type) (container.NamedProvider, error) {
	if t != nil && !p.Type().AssignableTo(t) {
		return nil, errors.New(errors.ErrCodeTypeMismatch,
			"element '%s' in container '%s' is a %s, not a %s",
			p.Name(), c.Name(), container.TypeName(p.Type()), container.TypeName(t))
	}
	return p, nil
}

// AdhocComponent is a software component assembled by name.
type AdhocComponent struct {
	name     string
	variants []string
}

// NewAdhocComponent creates an empty component.
func NewAdhocComponent(name string) *AdhocComponent {
	return &AdhocComponent{name: name}
}

// Name returns the component name.
func (c *AdhocComponent) Name() string { return c.name }

// AddVariant records a variant published by the component.
func (c *AdhocComponent) AddVariant(name string) { c.variants = append(c.variants, name) }

// Variants returns the published variants in insertion order.
func (c *AdhocComponent) Variants() []string { return append([]string(nil), c.variants...) }

var adhocComponentType = reflect.TypeFor[*AdhocComponent]()

// componentRegistry adds components eagerly. Components are created by the
// registry, not by the container, so the container is not exposed.
type componentRegistry struct {
	c *container.Container
}

// NewComponentContainerRegistry accepts exactly [*AdhocComponent]. Elements
// are created at registration and their actions run immediately.
func NewComponentContainerRegistry(c *container.Container) ContainerRegistry {
	return &componentRegistry{c: c}
}

func (r *componentRegistry) Register(name string, t reflect.Type, actions ...container.Action) (container.NamedProvider, error) {
	return r.add(name, actions)
}

func (r *componentRegistry) RegisterIfAbsent(name string, t reflect.Type, actions ...container.Action) (container.NamedProvider, error) {
	if p, ok := r.c.Find(name); ok {
		return existing(r.c, p, t)
	}
	return r.add(name, actions)
}

func (r *componentRegistry) add(name string, actions []container.Action) (container.NamedProvider, error) {
	component := NewAdhocComponent(name)
	p, err := r.c.Add(name, component)
	if err != nil {
		return nil, err
	}
	for _, action := range actions {
		if err := action(component); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (r *componentRegistry) RegistrableTypes() RegistrableTypes {
	return RegistrableTypes{InstanceOf(adhocComponentType)}
}

func (r *componentRegistry) String() string { return "component registry '" + r.c.Name() + "'" }

func (r *componentRegistry) Container() (*container.Container, error) {
	return nil, errors.New(errors.ErrCodeUnsupported,
		"component registry for container '%s' does not expose its container", r.c.Name())
}
