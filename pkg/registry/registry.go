package registry

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/modelgraph/pkg/container"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/observability"
)

// Option configures a [Registry].
type Option func(*Registry)

// WithLogger sets the logger used for debug events.
func WithLogger(l *log.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithContainerRegistry adds cr at construction time.
func WithContainerRegistry(cr ContainerRegistry) Option {
	return func(r *Registry) { r.registries = append(r.registries, cr) }
}

// Registry dispatches registrations to the first [ContainerRegistry] that
// accepts the requested type. It satisfies model.Registry.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	pass       *container.Pass
	registries []ContainerRegistry
	logger     *log.Logger
}

// New creates an empty registry marking registrations on pass. A nil pass
// gets a private one.
func New(pass *container.Pass, opts ...Option) *Registry {
	if pass == nil {
		pass = container.NewPass()
	}
	r := &Registry{
		pass:   pass,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add appends cr. Earlier registries win when several accept a type.
func (r *Registry) Add(cr ContainerRegistry) { r.registries = append(r.registries, cr) }

// Pass returns the pass registrations are marked on.
func (r *Registry) Pass() *container.Pass { return r.pass }

// Registries returns the container registries in dispatch order.
func (r *Registry) Registries() []ContainerRegistry {
	return append([]ContainerRegistry(nil), r.registries...)
}

// Register creates a new element named name of type t.
func (r *Registry) Register(name string, t reflect.Type, actions ...container.Action) (container.NamedProvider, error) {
	return r.dispatch(name, t, func(cr ContainerRegistry) (container.NamedProvider, error) {
		return cr.Register(name, t, actions...)
	})
}

// RegisterIfAbsent returns the element named name, creating it with actions
// when it does not exist.
func (r *Registry) RegisterIfAbsent(name string, t reflect.Type, actions ...container.Action) (container.NamedProvider, error) {
	return r.dispatch(name, t, func(cr ContainerRegistry) (container.NamedProvider, error) {
		return cr.RegisterIfAbsent(name, t, actions...)
	})
}

func (r *Registry) dispatch(name string, t reflect.Type, fn func(ContainerRegistry) (container.NamedProvider, error)) (container.NamedProvider, error) {
	cr, err := r.RegistryFor(t)
	if err != nil {
		observability.Registry().OnRegisterRejected(name, container.TypeName(t), r.RegistrableTypes().Strings())
		return nil, err
	}
	desc := describe(cr)
	r.logger.Debug("registering", "name", name, "type", container.TypeName(t), "registry", desc)
	observability.Registry().OnRegister(name, container.TypeName(t), desc)

	var p container.NamedProvider
	err = r.pass.Registering(container.Key{Name: name, Type: t}, func() error {
		var err error
		p, err = fn(cr)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// RegistrableTypes returns the union of all accepted types in dispatch
// order.
func (r *Registry) RegistrableTypes() RegistrableTypes {
	var out RegistrableTypes
	for _, cr := range r.registries {
		out = append(out, cr.RegistrableTypes()...)
	}
	return out
}

// CanRegisterType reports whether any registry accepts t.
func (r *Registry) CanRegisterType(t reflect.Type) bool {
	_, err := r.RegistryFor(t)
	return err == nil
}

// RegistryFor returns the first registry accepting t, or
// UNREGISTRABLE_TYPE.
func (r *Registry) RegistryFor(t reflect.Type) (ContainerRegistry, error) {
	for _, cr := range r.registries {
		if cr.RegistrableTypes().CanRegisterType(t) {
			return cr, nil
		}
	}
	supported := "none"
	if types := r.RegistrableTypes(); len(types) > 0 {
		supported = strings.Join(types.Strings(), ", ")
	}
	return nil, errors.New(errors.ErrCodeUnregistrableType,
		"cannot register element of type '%s': supported types are %s", container.TypeName(t), supported)
}

// ContainerFor returns the container backing the registry accepting t.
func (r *Registry) ContainerFor(t reflect.Type) (*container.Container, error) {
	cr, err := r.RegistryFor(t)
	if err != nil {
		return nil, err
	}
	return cr.Container()
}

func describe(cr ContainerRegistry) string {
	if s, ok := cr.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", cr)
}
