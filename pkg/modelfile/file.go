// Package modelfile loads model descriptions from TOML or YAML files.
//
// A model file declares the containers elements live in and the nodes of
// the model tree with their projections:
//
//	[[container]]
//	name = "tasks"
//	kind = "task"
//	types = ["exec-task", "link-task"]
//
//	[[node]]
//	path = "main.debug"
//
//	[[node.projection]]
//	type = "link-task"
//	realize_on_finalize = true
//	properties = { output = "app" }
//
// Type names resolve through a [Catalog]; [DefaultCatalog] holds the
// built-in types.
package modelfile

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/modelgraph/pkg/errors"
)

// Format is a model file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidModelFile,
			"unsupported model file extension %q (use .toml, .yaml or .yml)", filepath.Ext(path))
	}
}

// Container kinds.
const (
	KindNamed       = "named"
	KindPolymorphic = "polymorphic"
	KindTask        = "task"
	KindComponent   = "component"
)

// File is a parsed model description.
type File struct {
	Containers []ContainerSpec `toml:"container" yaml:"containers"`
	Nodes      []NodeSpec      `toml:"node" yaml:"nodes"`
}

// ContainerSpec declares a container and the registry serving it.
type ContainerSpec struct {
	Name  string   `toml:"name" yaml:"name"`
	Kind  string   `toml:"kind" yaml:"kind"`
	Types []string `toml:"types" yaml:"types"`

	// Bridge attaches every element of the container to the model root.
	Bridge bool `toml:"bridge" yaml:"bridge"`
}

// NodeSpec declares a node by its dot-separated path.
type NodeSpec struct {
	Path        string           `toml:"path" yaml:"path"`
	Projections []ProjectionSpec `toml:"projection" yaml:"projections"`
}

// ProjectionSpec declares a projection of a node.
type ProjectionSpec struct {
	Type              string         `toml:"type" yaml:"type"`
	Instance          bool           `toml:"instance" yaml:"instance"`
	RealizeOnFinalize bool           `toml:"realize_on_finalize" yaml:"realize_on_finalize"`
	Properties        map[string]any `toml:"properties" yaml:"properties"`
}

// Load reads and validates the model file at path.
func Load(path string) (*File, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidModelFile, err, "read %s", path)
	}
	return Parse(data, format)
}

// Parse decodes and validates a model description.
func Parse(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidModelFile, err, "parse toml")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !stderrors.Is(err, io.EOF) {
			return nil, errors.Wrap(errors.ErrCodeInvalidModelFile, err, "parse yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidModelFile, "unknown format %q", format)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// reservedProperty is the element name. It comes from the node path or the
// registration name and cannot be set through properties.
const reservedProperty = "name"

// Validate checks names, kinds and paths. Type names are checked against a
// catalog by [File.Build].
func (f *File) Validate() error {
	seen := make(map[string]bool)
	for i, c := range f.Containers {
		if err := errors.ValidateElementName(c.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidModelFile, err, "container #%d", i+1)
		}
		if seen[c.Name] {
			return errors.New(errors.ErrCodeInvalidModelFile, "container %q declared twice", c.Name)
		}
		seen[c.Name] = true
		switch c.Kind {
		case KindNamed:
			if len(c.Types) != 1 {
				return errors.New(errors.ErrCodeInvalidModelFile,
					"container %q: a named container takes exactly one type, got %d", c.Name, len(c.Types))
			}
		case KindPolymorphic, KindTask:
			if len(c.Types) == 0 {
				return errors.New(errors.ErrCodeInvalidModelFile, "container %q declares no types", c.Name)
			}
		case KindComponent:
		default:
			return errors.New(errors.ErrCodeInvalidModelFile,
				"container %q: unknown kind %q (use named, polymorphic, task or component)", c.Name, c.Kind)
		}
	}
	for _, n := range f.Nodes {
		if err := errors.ValidateModelPath(n.Path); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidModelFile, err, "node %q", n.Path)
		}
		for j, p := range n.Projections {
			if p.Type == "" {
				return errors.New(errors.ErrCodeInvalidModelFile, "node %q: projection #%d has no type", n.Path, j+1)
			}
			if _, ok := p.Properties[reservedProperty]; ok {
				return errors.New(errors.ErrCodeInvalidModelFile,
					"node %q: projection #%d sets %q, which is derived from the node", n.Path, j+1, reservedProperty)
			}
		}
	}
	return nil
}
