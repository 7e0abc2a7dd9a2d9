package container

import (
	"io"
	"reflect"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/modelgraph/pkg/errors"
)

// Factory creates the value of the element named name.
type Factory func(name string) (any, error)

// Option configures a [Container].
type Option func(*Container)

// WithFactory declares t as creatable, using f to create values of it.
// Declaring the same type twice replaces the earlier factory.
func WithFactory(t reflect.Type, f Factory) Option {
	return func(c *Container) {
		if _, ok := c.factories[t]; !ok {
			c.creatable = append(c.creatable, t)
		}
		c.factories[t] = f
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger(l *log.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.logger = l
		}
	}
}

// Container holds named elements of a common element type.
//
// The zero value is not usable - use [New].
type Container struct {
	name        string
	elementType reflect.Type
	factories   map[reflect.Type]Factory
	creatable   []reflect.Type
	elements    map[string]*element
	order       []*element
	eachActions []Action
	listeners   []func(NamedProvider) error
	guard       Guard
	logger      *log.Logger
}

// New creates an empty container for elements assignable to elementType.
func New(name string, elementType reflect.Type, opts ...Option) *Container {
	c := &Container{
		name:        name,
		elementType: elementType,
		factories:   make(map[reflect.Type]Factory),
		elements:    make(map[string]*element),
		logger:      log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the container name.
func (c *Container) Name() string { return c.name }

// ElementType returns the common type of all elements.
func (c *Container) ElementType() reflect.Type { return c.elementType }

// CreatableTypes returns the types [Container.Register] accepts, in
// declaration order.
func (c *Container) CreatableTypes() []reflect.Type { return slices.Clone(c.creatable) }

// Guard returns the container's mutation guard.
func (c *Container) Guard() *Guard { return &c.guard }

// Len returns the number of known elements.
func (c *Container) Len() int { return len(c.order) }

// Names returns element names in registration order.
func (c *Container) Names() []string {
	names := make([]string, len(c.order))
	for i, e := range c.order {
		names[i] = e.name
	}
	return names
}

// Providers returns a provider for every element in registration order.
func (c *Container) Providers() []NamedProvider {
	out := make([]NamedProvider, len(c.order))
	for i, e := range c.order {
		out[i] = e
	}
	return out
}

// Register adds a lazily-created element named name of type t. actions run,
// in order, when the element is realized.
func (c *Container) Register(name string, t reflect.Type, actions ...Action) (NamedProvider, error) {
	if err := c.guard.AssertMutationAllowed("Register", c.describe()); err != nil {
		return nil, err
	}
	if err := c.checkNew(name); err != nil {
		return nil, err
	}
	f, ok := c.factories[t]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"cannot create a %s in %s: supported types are %v", TypeName(t), c.describe(), c.creatable)
	}
	e := &element{c: c, name: name, typ: t, factory: f, actions: slices.Clone(actions)}
	c.logger.Debug("element registered", "container", c.name, "name", name, "type", TypeName(t))
	return e, c.add(e)
}

// Add adds an element whose value already exists. Actions added through
// [Container.ConfigureEach] run immediately.
func (c *Container) Add(name string, v any) (NamedProvider, error) {
	if err := c.guard.AssertMutationAllowed("Add", c.describe()); err != nil {
		return nil, err
	}
	if err := c.checkNew(name); err != nil {
		return nil, err
	}
	t := PublicTypeOf(v)
	if c.elementType != nil && (t == nil || !t.AssignableTo(c.elementType)) {
		return nil, errors.New(errors.ErrCodeTypeMismatch,
			"cannot add %s to %s of %s", TypeName(t), c.describe(), TypeName(c.elementType))
	}
	e := &element{c: c, name: name, typ: t, value: v, realized: true}
	if err := c.guard.WithMutationDisallowed(func() error {
		return runAll(c.eachActions, v)
	}); err != nil {
		return nil, err
	}
	c.logger.Debug("element added", "container", c.name, "name", name, "type", TypeName(t))
	return e, c.add(e)
}

// Named returns the element named name, or NOT_FOUND.
func (c *Container) Named(name string) (NamedProvider, error) {
	if e, ok := c.elements[name]; ok {
		return e, nil
	}
	return nil, errors.New(errors.ErrCodeNotFound, "%s has no element named '%s'", c.describe(), name)
}

// Find returns the element named name.
func (c *Container) Find(name string) (NamedProvider, bool) {
	e, ok := c.elements[name]
	if !ok {
		return nil, false
	}
	return e, true
}

// ConfigureEach runs action on every element: immediately for realized ones,
// before per-element actions for the rest.
func (c *Container) ConfigureEach(action Action) error {
	if err := c.guard.AssertMutationAllowed("ConfigureEach", c.describe()); err != nil {
		return err
	}
	c.eachActions = append(c.eachActions, action)
	for _, e := range slices.Clone(c.order) {
		if !e.realized || e.err != nil {
			continue
		}
		if err := c.guard.WithMutationDisallowed(func() error { return action(e.value) }); err != nil {
			return err
		}
	}
	return nil
}

// WhenElementKnown calls fn for every element already known and then for
// each element added later.
func (c *Container) WhenElementKnown(fn func(NamedProvider) error) error {
	c.listeners = append(c.listeners, fn)
	for _, e := range slices.Clone(c.order) {
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

func (c *Container) checkNew(name string) error {
	if err := errors.ValidateElementName(name); err != nil {
		return err
	}
	if _, exists := c.elements[name]; exists {
		return errors.New(errors.ErrCodeInvalidInput,
			"cannot add an element with name '%s' to %s: an element with that name already exists", name, c.describe())
	}
	return nil
}

func (c *Container) add(e *element) error {
	c.elements[e.name] = e
	c.order = append(c.order, e)
	for _, fn := range slices.Clone(c.listeners) {
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

func (c *Container) describe() string {
	return "container '" + c.name + "'"
}

func runAll(actions []Action, v any) error {
	for _, a := range actions {
		if err := a(v); err != nil {
			return err
		}
	}
	return nil
}

// element is the provider of one container element.
type element struct {
	c       *Container
	name    string
	typ     reflect.Type
	factory Factory
	actions []Action

	value     any
	realized  bool
	realizing bool
	err       error
}

func (e *element) Name() string       { return e.name }
func (e *element) Type() reflect.Type { return e.typ }
func (e *element) IsRealized() bool   { return e.realized }
func (e *element) IsPresent() bool    { return true }

// Get realizes the element on first use. A failed realization is memoized.
func (e *element) Get() (any, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.realized {
		return e.value, nil
	}
	if e.realizing {
		return nil, errors.New(errors.ErrCodeInternal,
			"element '%s' requested while its value is being created", e.name)
	}
	e.realizing = true
	v, err := e.factory(e.name)
	e.realizing = false
	if err == nil && v == nil {
		err = errors.New(errors.ErrCodeInternal, "factory for '%s' returned no value", e.name)
	}
	if err == nil && !PublicTypeOf(v).AssignableTo(e.typ) {
		err = errors.New(errors.ErrCodeTypeMismatch,
			"factory for '%s' created %s, want %s", e.name, TypeName(PublicTypeOf(v)), TypeName(e.typ))
	}
	if err != nil {
		e.err = err
		return nil, err
	}

	e.value, e.realized = v, true
	e.c.logger.Debug("element realized", "container", e.c.name, "name", e.name, "type", TypeName(e.typ))
	err = e.c.guard.WithMutationDisallowed(func() error {
		if err := runAll(slices.Clone(e.c.eachActions), v); err != nil {
			return err
		}
		for len(e.actions) > 0 {
			a := e.actions[0]
			e.actions = e.actions[1:]
			if err := a(v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		e.err = err
		return nil, err
	}
	return v, nil
}

// Configure queues action until realization, or runs it now when the value
// already exists.
func (e *element) Configure(action Action) error {
	if err := e.c.guard.AssertMutationAllowed("Configure", "element '"+e.name+"'"); err != nil {
		return err
	}
	if e.err != nil {
		return e.err
	}
	if e.realized {
		return action(e.value)
	}
	e.actions = append(e.actions, action)
	return nil
}
