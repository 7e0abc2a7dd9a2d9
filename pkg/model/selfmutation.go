package model

import (
	"reflect"
	"slices"

	"github.com/matzehuels/modelgraph/pkg/container"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/observability"
)

// DecoratorFactory creates self-mutation decorators bound to one
// configuration pass.
//
// A decorated provider routes every Configure call through a FIFO queue.
// What is registered with the underlying provider is a wrapper that pushes
// the element key on the pass breadcrumbs, pops the front of the queue and
// runs it. When Configure is called while the same key is being configured,
// the wrapper is registered with the container's mutation guard relaxed.
// The element then runs the wrapper immediately, and the wrapper runs the
// next action in arrival order rather than the one just passed in.
type DecoratorFactory struct {
	pass *container.Pass
}

// NewDecoratorFactory returns a factory using pass for re-entrancy tracking.
func NewDecoratorFactory(pass *container.Pass) *DecoratorFactory {
	return &DecoratorFactory{pass: pass}
}

// ForContainer returns a decorator for providers of c.
func (f *DecoratorFactory) ForContainer(c *container.Container) *ProviderDecorator {
	return &ProviderDecorator{pass: f.pass, container: c}
}

// ProviderDecorator decorates providers of a single container.
type ProviderDecorator struct {
	pass      *container.Pass
	container *container.Container
}

// Decorate wraps p. It fails with UNSUPPORTED when the container does not
// know an element named like p.
func (d *ProviderDecorator) Decorate(p container.NamedProvider) (container.NamedProvider, error) {
	if existing, ok := p.(*selfMutationProvider); ok && existing.guard == d.container.Guard() {
		return existing, nil
	}
	if _, ok := d.container.Find(p.Name()); !ok {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"cannot decorate '%s': not an element of container '%s'", p.Name(), d.container.Name())
	}
	return &selfMutationProvider{delegate: p, guard: d.container.Guard(), pass: d.pass}, nil
}

type queuedAction struct {
	action container.Action
}

type selfMutationProvider struct {
	delegate container.NamedProvider
	guard    *container.Guard
	pass     *container.Pass
	queue    []*queuedAction
}

func (p *selfMutationProvider) Name() string       { return p.delegate.Name() }
func (p *selfMutationProvider) Type() reflect.Type { return p.delegate.Type() }
func (p *selfMutationProvider) Get() (any, error)  { return p.delegate.Get() }
func (p *selfMutationProvider) IsPresent() bool    { return p.delegate.IsPresent() }
func (p *selfMutationProvider) IsRealized() bool   { return p.delegate.IsRealized() }

// Unwrap returns the decorated provider.
func (p *selfMutationProvider) Unwrap() container.NamedProvider { return p.delegate }

func (p *selfMutationProvider) Configure(action container.Action) error {
	entry := &queuedAction{action: action}
	p.queue = append(p.queue, entry)
	key := container.KeyOf(p.delegate)

	ran := false
	wrapper := func(v any) error {
		ran = true
		return p.pass.Configuring(key, func() error { return p.runNext(key, v) })
	}

	var err error
	if p.pass.IsConfiguring(key) {
		observability.Model().OnSelfMutation(key.String(), breadcrumbStrings(p.pass.Breadcrumbs()))
		err = p.guard.WithMutationEnabled(func() error { return p.delegate.Configure(wrapper) })
	} else {
		err = p.delegate.Configure(wrapper)
	}
	if err != nil && !ran {
		// never registered, so nothing will pop it
		if i := slices.Index(p.queue, entry); i >= 0 {
			p.queue = slices.Delete(p.queue, i, i+1)
		}
	}
	return err
}

func (p *selfMutationProvider) runNext(key container.Key, v any) error {
	if len(p.queue) == 0 {
		return errors.New(errors.ErrCodeInternal, "no pending configuration for %s", key)
	}
	next := p.queue[0]
	p.queue = p.queue[1:]
	if err := next.action(v); err != nil {
		return errors.Wrap(errors.ErrCodeConfigurationFailed, err,
			"could not configure '%s' of type '%s' (breadcrumbs: %s)",
			key.Name, container.TypeName(key.Type), container.FormatBreadcrumbs(p.pass.Breadcrumbs()))
	}
	return nil
}

func breadcrumbStrings(keys []container.Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}
