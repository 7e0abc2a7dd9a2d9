package modelfile

import (
	"reflect"
	"slices"
	"strings"

	"github.com/matzehuels/modelgraph/pkg/container"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/registry"
)

// Entry binds a type name used in model files to a Go type.
type Entry struct {
	Name string
	Type reflect.Type
	New  func(name string) any
}

// Catalog maps type names to entries.
type Catalog struct {
	entries map[string]Entry
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]Entry)}
}

// Add registers an entry. A later entry with the same name replaces the
// earlier one.
func (c *Catalog) Add(e Entry) *Catalog {
	c.entries[e.Name] = e
	return c
}

// Lookup returns the entry named name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	e, ok := c.entries[name]
	return e, ok
}

// ForType returns the entry whose type is t.
func (c *Catalog) ForType(t reflect.Type) (Entry, bool) {
	for _, e := range c.entries {
		if e.Type == t {
			return e, true
		}
	}
	return Entry{}, false
}

// Entries returns all entries sorted by name.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Instantiate creates an unnamed value of t. It serves as the model's
// fallback for types no container accepts.
func (c *Catalog) Instantiate(t reflect.Type) (any, error) {
	e, ok := c.ForType(t)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupported, "catalog has no entry for '%s'", container.TypeName(t))
	}
	return e.New(""), nil
}

// Factory adapts the entry to a container factory.
func (e Entry) Factory() container.Factory {
	return func(name string) (any, error) { return e.New(name), nil }
}

// SourceSet is a named set of source directories.
type SourceSet struct {
	Name string   `yaml:"name"`
	Dirs []string `yaml:"dirs"`
}

// ExecTask runs a command.
type ExecTask struct {
	TaskName string   `yaml:"name"`
	Command  string   `yaml:"command"`
	Args     []string `yaml:"args"`
	executed bool
}

func (t *ExecTask) Name() string { return t.TaskName }

// Execute marks the task as executed. Commands are never run.
func (t *ExecTask) Execute() error {
	t.executed = true
	return nil
}

// Executed reports whether Execute was called.
func (t *ExecTask) Executed() bool { return t.executed }

// LinkTask links objects into a binary.
type LinkTask struct {
	TaskName string   `yaml:"name"`
	Output   string   `yaml:"output"`
	Objects  []string `yaml:"objects"`
}

func (t *LinkTask) Name() string   { return t.TaskName }
func (t *LinkTask) Execute() error { return nil }

// Variant is one build flavor of a component.
type Variant struct {
	Name       string `yaml:"name"`
	BuildType  string `yaml:"build_type"`
	Debuggable bool   `yaml:"debuggable"`
}

// Toolchain describes a compiler toolchain.
type Toolchain struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Target  string `yaml:"target"`
}

// DefaultCatalog returns the built-in types.
func DefaultCatalog() *Catalog {
	return NewCatalog().
		Add(Entry{Name: "source-set", Type: reflect.TypeFor[*SourceSet](), New: func(n string) any { return &SourceSet{Name: n} }}).
		Add(Entry{Name: "exec-task", Type: reflect.TypeFor[*ExecTask](), New: func(n string) any { return &ExecTask{TaskName: n} }}).
		Add(Entry{Name: "link-task", Type: reflect.TypeFor[*LinkTask](), New: func(n string) any { return &LinkTask{TaskName: n} }}).
		Add(Entry{Name: "variant", Type: reflect.TypeFor[*Variant](), New: func(n string) any { return &Variant{Name: n} }}).
		Add(Entry{Name: "component", Type: reflect.TypeFor[*registry.AdhocComponent](), New: func(n string) any { return registry.NewAdhocComponent(n) }}).
		Add(Entry{Name: "toolchain", Type: reflect.TypeFor[*Toolchain](), New: func(n string) any { return &Toolchain{Name: n} }})
}
