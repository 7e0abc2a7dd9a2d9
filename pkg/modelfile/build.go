package modelfile

import (
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/modelgraph/pkg/container"
	"github.com/matzehuels/modelgraph/pkg/dsl"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/model"
	"github.com/matzehuels/modelgraph/pkg/registry"
)

var (
	anyType   = reflect.TypeFor[any]()
	namedType = reflect.TypeFor[container.Named]()
	taskType  = reflect.TypeFor[container.Task]()
)

// Build creates the model the file describes. Containers and their
// registries are created first, in file order; nodes and projections
// follow, in file order. opts are applied after the file's own options, so
// a caller-supplied registry or pass replaces the file's.
func (f *File) Build(cat *Catalog, opts ...model.Option) (*model.Model, error) {
	pass := container.NewPass()
	r := registry.New(pass)
	m := model.New(append([]model.Option{
		model.WithPass(pass),
		model.WithRegistry(r),
		model.WithInstantiator(cat.Instantiate),
	}, opts...)...)

	containers, err := f.containers(cat, container.WithLogger(m.Logger()))
	if err != nil {
		return nil, err
	}
	for i, c := range containers {
		cr, err := newContainerRegistry(f.Containers[i].Kind, c)
		if err != nil {
			return nil, err
		}
		r.Add(cr)
		if f.Containers[i].Bridge {
			if err := m.Root().Bridge(c); err != nil {
				return nil, err
			}
		}
	}

	root := dsl.Of(m.Root())
	for _, n := range f.Nodes {
		if err := buildNode(root, n, cat); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidModelFile, err, "node %q", n.Path)
		}
	}
	return m, nil
}

// Registry builds only the file's containers and registries.
func (f *File) Registry(cat *Catalog) (*registry.Registry, error) {
	containers, err := f.containers(cat)
	if err != nil {
		return nil, err
	}
	r := registry.New(nil)
	for i, c := range containers {
		cr, err := newContainerRegistry(f.Containers[i].Kind, c)
		if err != nil {
			return nil, err
		}
		r.Add(cr)
	}
	return r, nil
}

func (f *File) containers(cat *Catalog, extra ...container.Option) ([]*container.Container, error) {
	out := make([]*container.Container, 0, len(f.Containers))
	for _, spec := range f.Containers {
		var (
			opts    = append([]container.Option(nil), extra...)
			entries []Entry
		)
		for _, name := range spec.Types {
			e, ok := cat.Lookup(name)
			if !ok {
				return nil, unknownType(name, cat)
			}
			if spec.Kind == KindTask && !e.Type.Implements(taskType) {
				return nil, errors.New(errors.ErrCodeInvalidModelFile,
					"container %q: type %q is not a task", spec.Name, name)
			}
			entries = append(entries, e)
			opts = append(opts, container.WithFactory(e.Type, e.Factory()))
		}

		var elementType reflect.Type
		switch spec.Kind {
		case KindNamed:
			elementType = entries[0].Type
		case KindTask:
			elementType = taskType
		case KindComponent:
			elementType = namedType
		default:
			elementType = anyType
		}
		out = append(out, container.New(spec.Name, elementType, opts...))
	}
	return out, nil
}

func newContainerRegistry(kind string, c *container.Container) (registry.ContainerRegistry, error) {
	switch kind {
	case KindNamed:
		return registry.NewNamedContainerRegistry(c), nil
	case KindPolymorphic:
		return registry.NewPolymorphicContainerRegistry(c), nil
	case KindTask:
		return registry.NewTaskContainerRegistry(c), nil
	case KindComponent:
		return registry.NewComponentContainerRegistry(c), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidModelFile, "unknown container kind %q", kind)
}

func buildNode(root *dsl.Node, spec NodeSpec, cat *Catalog) error {
	n := root
	for _, segment := range strings.Split(spec.Path, ".") {
		var err error
		if n, err = n.Node(segment); err != nil {
			return err
		}
	}

	for _, ps := range spec.Projections {
		e, ok := cat.Lookup(ps.Type)
		if !ok {
			return unknownType(ps.Type, cat)
		}

		var actions []container.Action
		if len(ps.Properties) > 0 {
			actions = append(actions, applyProperties(ps.Properties))
		}

		var (
			p   *model.Projection
			err error
		)
		if ps.Instance {
			v := e.New(n.Model().Name())
			p, err = n.Model().NewProjection(func(b *model.ProjectionBuilder) { b.Type(e.Type).ForInstance(v) })
			for _, action := range actions {
				if err == nil {
					err = p.Configure(action)
				}
			}
		} else {
			p, err = n.Projection(e.Type, actions...)
		}
		if err != nil {
			return err
		}
		if ps.RealizeOnFinalize {
			if err := p.RealizeOnFinalize(); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyProperties copies properties onto a value through its YAML field
// names.
func applyProperties(props map[string]any) container.Action {
	return func(v any) error {
		data, err := yaml.Marshal(props)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidModelFile, err, "encode properties")
		}
		if err := yaml.Unmarshal(data, v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidModelFile, err, "apply properties to %T", v)
		}
		return nil
	}
}

func unknownType(name string, cat *Catalog) error {
	var known []string
	for _, e := range cat.Entries() {
		known = append(known, e.Name)
	}
	return errors.New(errors.ErrCodeInvalidModelFile,
		"unknown type %q (known types: %s)", name, strings.Join(known, ", "))
}
