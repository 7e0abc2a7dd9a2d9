package registry_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/modelgraph/pkg/container"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/model"
	"github.com/matzehuels/modelgraph/pkg/registry"
)

type sourceSet struct{ name string }

type linkTask struct{ name string }

func (t *linkTask) Name() string   { return t.name }
func (t *linkTask) Execute() error { return nil }

type compileTask struct{ name string }

func (t *compileTask) Name() string   { return t.name }
func (t *compileTask) Execute() error { return nil }

var (
	sourceSetType   = reflect.TypeFor[*sourceSet]()
	linkTaskType    = reflect.TypeFor[*linkTask]()
	compileTaskType = reflect.TypeFor[*compileTask]()
	taskType        = reflect.TypeFor[container.Task]()
	componentType   = reflect.TypeFor[*registry.AdhocComponent]()
)

func newSourceSets() *container.Container {
	return container.New("sourceSets", sourceSetType,
		container.WithFactory(sourceSetType, func(name string) (any, error) {
			return &sourceSet{name: name}, nil
		}))
}

func newTasks() *container.Container {
	return container.New("tasks", taskType,
		container.WithFactory(linkTaskType, func(name string) (any, error) {
			return &linkTask{name: name}, nil
		}),
		container.WithFactory(compileTaskType, func(name string) (any, error) {
			return &compileTask{name: name}, nil
		}))
}

func newComponents() *container.Container {
	return container.New("components", reflect.TypeFor[container.Named]())
}

func TestSupportedType(t *testing.T) {
	tests := []struct {
		name string
		s    registry.SupportedType
		typ  reflect.Type
		want bool
	}{
		{"instance exact", registry.InstanceOf(sourceSetType), sourceSetType, true},
		{"instance rejects subtype", registry.InstanceOf(taskType), linkTaskType, false},
		{"subtype accepts implementation", registry.SubtypeOf(taskType), linkTaskType, true},
		{"subtype accepts itself", registry.SubtypeOf(taskType), taskType, true},
		{"subtype rejects unrelated", registry.SubtypeOf(taskType), sourceSetType, false},
		{"nil", registry.InstanceOf(sourceSetType), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Supports(tt.typ); got != tt.want {
				t.Errorf("%s.Supports(%v) = %v, want %v", tt.s, tt.typ, got, tt.want)
			}
		})
	}
}

func TestRegistrableTypesStringsAreSorted(t *testing.T) {
	types := registry.RegistrableTypes{registry.SubtypeOf(taskType), registry.InstanceOf(sourceSetType)}
	want := []string{"instances of *registry_test.sourceSet", "subtypes of container.Task"}
	if diff := cmp.Diff(want, types.Strings()); diff != "" {
		t.Errorf("Strings() mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatch(t *testing.T) {
	tasks, sourceSets := newTasks(), newSourceSets()
	r := registry.New(nil)
	r.Add(registry.NewTaskContainerRegistry(tasks))
	r.Add(registry.NewNamedContainerRegistry(sourceSets))

	if _, err := r.Register("compileMain", compileTaskType); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Register("main", sourceSetType); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"compileMain"}, tasks.Names()); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"main"}, sourceSets.Names()); diff != "" {
		t.Errorf("source sets mismatch (-want +got):\n%s", diff)
	}

	c, err := r.ContainerFor(linkTaskType)
	if err != nil || c != tasks {
		t.Errorf("ContainerFor(linkTask) = %v, %v, want tasks", c, err)
	}
}

func TestUnregistrableTypeMutatesNothing(t *testing.T) {
	tasks, sourceSets := newTasks(), newSourceSets()
	r := registry.New(nil,
		registry.WithContainerRegistry(registry.NewTaskContainerRegistry(tasks)),
		registry.WithContainerRegistry(registry.NewNamedContainerRegistry(sourceSets)))

	_, err := r.Register("x", reflect.TypeFor[string]())
	if !errors.Is(err, errors.ErrCodeUnregistrableType) {
		t.Fatalf("Register(string) error = %v, want UNREGISTRABLE_TYPE", err)
	}
	want := "supported types are instances of *registry_test.sourceSet, subtypes of container.Task"
	if !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not list supported types", err)
	}
	if tasks.Len() != 0 || sourceSets.Len() != 0 {
		t.Error("rejected registration mutated a container")
	}
	if r.CanRegisterType(reflect.TypeFor[string]()) {
		t.Error("CanRegisterType(string) = true")
	}
}

func TestEmptyRegistry(t *testing.T) {
	_, err := registry.New(nil).RegistryFor(sourceSetType)
	if !errors.Is(err, errors.ErrCodeUnregistrableType) || !strings.Contains(err.Error(), "are none") {
		t.Errorf("RegistryFor() error = %v", err)
	}
}

func TestFirstRegistryWins(t *testing.T) {
	first, second := newTasks(), newTasks()
	r := registry.New(nil)
	r.Add(registry.NewPolymorphicContainerRegistry(first))
	r.Add(registry.NewTaskContainerRegistry(second))

	_, _ = r.Register("link", linkTaskType)
	if first.Len() != 1 || second.Len() != 0 {
		t.Errorf("first = %v, second = %v", first.Names(), second.Names())
	}
}

func TestRegisterIfAbsent(t *testing.T) {
	sourceSets := newSourceSets()
	r := registry.New(nil, registry.WithContainerRegistry(registry.NewNamedContainerRegistry(sourceSets)))

	p1, err := r.RegisterIfAbsent("main", sourceSetType)
	if err != nil {
		t.Fatal(err)
	}
	ran := false
	p2, err := r.RegisterIfAbsent("main", sourceSetType, func(any) error { ran = true; return nil })
	if err != nil {
		t.Fatal(err)
	}
	if p1 != p2 || sourceSets.Len() != 1 {
		t.Error("RegisterIfAbsent created a second element")
	}
	if _, err := p2.Get(); err != nil || ran {
		t.Errorf("actions applied to existing element: ran = %v, err = %v", ran, err)
	}
	if _, err := r.Register("main", sourceSetType); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Register(duplicate) error = %v, want INVALID_INPUT", err)
	}
}

func TestRegisterIfAbsentTypeMismatch(t *testing.T) {
	tasks := newTasks()
	r := registry.New(nil, registry.WithContainerRegistry(registry.NewTaskContainerRegistry(tasks)))

	_, _ = r.Register("link", linkTaskType)
	if _, err := r.RegisterIfAbsent("link", compileTaskType); !errors.Is(err, errors.ErrCodeTypeMismatch) {
		t.Errorf("RegisterIfAbsent() error = %v, want TYPE_MISMATCH", err)
	}
}

func TestPolymorphicRegistryTracksCreatableTypes(t *testing.T) {
	tasks := newTasks()
	cr := registry.NewPolymorphicContainerRegistry(tasks)
	want := []string{"instances of *registry_test.compileTask", "instances of *registry_test.linkTask"}
	if diff := cmp.Diff(want, cr.RegistrableTypes().Strings()); diff != "" {
		t.Errorf("RegistrableTypes() mismatch (-want +got):\n%s", diff)
	}
	if cr.RegistrableTypes().CanRegisterType(taskType) {
		t.Error("polymorphic registry accepts the element interface")
	}
}

func TestComponentRegistry(t *testing.T) {
	components := newComponents()
	r := registry.New(nil, registry.WithContainerRegistry(registry.NewComponentContainerRegistry(components)))

	p, err := r.Register("main", componentType, container.Func(func(c *registry.AdhocComponent) {
		c.AddVariant("debug")
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsRealized() {
		t.Error("component not created eagerly")
	}
	v, _ := p.Get()
	if diff := cmp.Diff([]string{"debug"}, v.(*registry.AdhocComponent).Variants()); diff != "" {
		t.Errorf("variants mismatch (-want +got):\n%s", diff)
	}

	again, err := r.RegisterIfAbsent("main", componentType, container.Func(func(c *registry.AdhocComponent) {
		c.AddVariant("release")
	}))
	if err != nil || again.Name() != "main" {
		t.Fatalf("RegisterIfAbsent() = %v, %v", again, err)
	}
	if got := v.(*registry.AdhocComponent).Variants(); len(got) != 1 {
		t.Errorf("actions ran on existing component: %v", got)
	}

	if _, err := r.ContainerFor(componentType); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ContainerFor(component) error = %v, want UNSUPPORTED", err)
	}
}

func TestRegistrationIsMarked(t *testing.T) {
	pass := container.NewPass()
	sourceSets := newSourceSets()
	r := registry.New(pass, registry.WithContainerRegistry(registry.NewNamedContainerRegistry(sourceSets)))

	var marked bool
	_ = sourceSets.WhenElementKnown(func(p container.NamedProvider) error {
		marked = pass.IsRegistering(container.KeyOf(p))
		return nil
	})
	_, _ = r.Register("main", sourceSetType)
	if !marked {
		t.Error("registration not marked on the pass")
	}
	if pass.IsRegistering(container.Key{Name: "main", Type: sourceSetType}) {
		t.Error("mark outlived the registration")
	}
}

func TestRegistryBacksTypeOnlyProjections(t *testing.T) {
	pass := container.NewPass()
	tasks, components := newTasks(), newComponents()
	r := registry.New(pass)
	r.Add(registry.NewTaskContainerRegistry(tasks))
	r.Add(registry.NewComponentContainerRegistry(components))
	m := model.New(model.WithPass(pass), model.WithRegistry(r))

	if err := m.Root().Bridge(tasks); err != nil {
		t.Fatal(err)
	}
	main, _ := m.Root().NewChildNode("main")
	link, _ := main.NewChildNode("link")
	if _, err := link.NewProjection(func(b *model.ProjectionBuilder) { b.Type(linkTaskType) }); err != nil {
		t.Fatal(err)
	}
	if _, err := main.NewProjection(func(b *model.ProjectionBuilder) { b.Type(componentType) }); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"linkMain"}, tasks.Names()); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
	// registered through the registry, so the bridge left it alone
	if _, ok := m.Root().Find("linkMain"); ok {
		t.Error("registered task was bridged to the root")
	}
	task, err := model.Get[*linkTask](link)
	if err != nil || task.Name() != "linkMain" {
		t.Errorf("Get[*linkTask]() = %v, %v", task, err)
	}
	component, err := model.Get[*registry.AdhocComponent](main)
	if err != nil || component.Name() != "main" {
		t.Errorf("Get[*AdhocComponent]() = %v, %v", component, err)
	}
}
