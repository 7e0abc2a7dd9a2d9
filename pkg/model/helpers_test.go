package model

import (
	"reflect"
	"slices"

	"github.com/matzehuels/modelgraph/pkg/container"
)

type Runnable interface{ Run() }

type runnable struct{ runs int }

func (r *runnable) Run() { r.runs++ }

type sourceSet struct {
	name string
	dirs []string
}

func (s *sourceSet) Name() string { return s.name }

type compileTask struct {
	name     string
	executed bool
}

func (t *compileTask) Name() string { return t.name }

func (t *compileTask) Execute() error {
	t.executed = true
	return nil
}

type named struct{ name string }

func (n named) Name() string { return n.name }

type buildType int

func (b buildType) String() string { return [...]string{"debug", "release"}[b] }

var (
	runnableType    = reflect.TypeFor[Runnable]()
	sourceSetType   = reflect.TypeFor[*sourceSet]()
	compileTaskType = reflect.TypeFor[*compileTask]()
)

func newSourceSets() *container.Container {
	return container.New("sourceSets", sourceSetType,
		container.WithFactory(sourceSetType, func(name string) (any, error) {
			return &sourceSet{name: name}, nil
		}))
}

func newTasks() *container.Container {
	return container.New("tasks", reflect.TypeFor[container.Task](),
		container.WithFactory(compileTaskType, func(name string) (any, error) {
			return &compileTask{name: name}, nil
		}))
}

// testRegistry dispatches to the first container declaring the type.
type testRegistry struct {
	pass       *container.Pass
	containers []*container.Container
}

func (r *testRegistry) find(t reflect.Type) *container.Container {
	for _, c := range r.containers {
		if slices.Contains(c.CreatableTypes(), t) {
			return c
		}
	}
	return nil
}

func (r *testRegistry) CanRegisterType(t reflect.Type) bool { return r.find(t) != nil }

func (r *testRegistry) RegisterIfAbsent(name string, t reflect.Type, actions ...container.Action) (container.NamedProvider, error) {
	c := r.find(t)
	if p, ok := c.Find(name); ok {
		return p, nil
	}
	var p container.NamedProvider
	err := r.pass.Registering(container.Key{Name: name, Type: t}, func() error {
		var err error
		p, err = c.Register(name, t, actions...)
		return err
	})
	return p, err
}

func (r *testRegistry) ContainerFor(t reflect.Type) (*container.Container, error) {
	return r.find(t), nil
}

func newTestModel(containers ...*container.Container) (*Model, *testRegistry) {
	pass := container.NewPass()
	reg := &testRegistry{pass: pass, containers: containers}
	return New(WithPass(pass), WithRegistry(reg)), reg
}

func recorder(order *[]string, label string) container.Action {
	return func(any) error {
		*order = append(*order, label)
		return nil
	}
}
