// Package pkg provides the libraries behind modelgraph, an entity/projection
// model graph for build configuration.
//
// # Overview
//
// A model is a tree of nodes. Each node stands for a build entity (a
// component, a variant, a source directory) and carries typed projections:
// views of the entity backed either by an existing value or by a lazily
// realized element of a named container. The pkg directory is organized
// into these areas:
//
//  1. [graphdb] - Labeled property graph the model is stored in
//  2. [container] - Named containers, providers and the configuration pass
//  3. [model] - Nodes, projections, their lifecycle and self-mutation safety
//  4. [registry] - Type-driven dispatch of registrations to containers
//  5. [dsl] - Get-or-create accessors and tree queries
//  6. [modelfile] - TOML/YAML model descriptions and the type catalog
//  7. [render] - Graphviz output of a model
//
// # Architecture
//
// The typical data flow:
//
//	model file (TOML/YAML)
//	         ↓
//	    [modelfile] package (parse, validate, resolve type names)
//	         ↓
//	    [registry] + [container] packages (containers and their registries)
//	         ↓
//	    [model] package (nodes, projections, finalization)
//	         ↓
//	    [render] package (DOT, SVG, PDF, PNG)
//
// # Quick Start
//
//	f, _ := modelfile.Load("model.toml")
//	m, _ := f.Build(modelfile.DefaultCatalog())
//	_ = m.FinalizeAll()
//	dot := render.ToDOT(m, render.Options{Projections: true})
//
// Models can also be assembled in code:
//
//	m := model.New(model.WithInstantiator(modelfile.DefaultCatalog().Instantiate))
//	main, _ := dsl.Of(m.Root()).Node("main")
//	_, _ = main.Projection(reflect.TypeFor[*modelfile.SourceSet](), container.ActionOf(
//	    func(s *modelfile.SourceSet) error {
//	        s.Dirs = append(s.Dirs, "src/main/go")
//	        return nil
//	    }))
//
// # Supporting Packages
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Hooks for node, projection and registry events.
//
// [buildinfo] - Version information for the CLI.
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/model/...      # Specific package
//	go test -run Example ./...   # Examples only
//
// [graphdb]: https://pkg.go.dev/github.com/matzehuels/modelgraph/pkg/graphdb
// [container]: https://pkg.go.dev/github.com/matzehuels/modelgraph/pkg/container
// [model]: https://pkg.go.dev/github.com/matzehuels/modelgraph/pkg/model
// [registry]: https://pkg.go.dev/github.com/matzehuels/modelgraph/pkg/registry
// [dsl]: https://pkg.go.dev/github.com/matzehuels/modelgraph/pkg/dsl
// [modelfile]: https://pkg.go.dev/github.com/matzehuels/modelgraph/pkg/modelfile
// [render]: https://pkg.go.dev/github.com/matzehuels/modelgraph/pkg/render
// [errors]: https://pkg.go.dev/github.com/matzehuels/modelgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/modelgraph/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/modelgraph/pkg/buildinfo
package pkg
