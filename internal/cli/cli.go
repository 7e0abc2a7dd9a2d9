// Package cli implements the modelgraph command-line interface.
//
// # Commands
//
//   - inspect: Build a model file and print its node tree
//   - dot: Write the model graph as DOT, SVG, PDF or PNG
//   - types: List catalog types and the container accepting each
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. In verbose
// mode model and registry events are logged through observability hooks.
//
// # Example
//
//	c := cli.New(os.Stdout, os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/modelgraph/pkg/buildinfo"
	"github.com/matzehuels/modelgraph/pkg/model"
	"github.com/matzehuels/modelgraph/pkg/modelfile"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "modelgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger  *log.Logger
	Out     io.Writer
	Catalog *modelfile.Catalog
}

// New creates a CLI printing results to out and logging to logw.
func New(out, logw io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:  newLogger(logw, level),
		Out:     out,
		Catalog: modelfile.DefaultCatalog(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "modelgraph builds and inspects entity/projection model graphs",
		Long:         `modelgraph loads a model description (TOML or YAML), builds the node tree with its projections, and reports or renders the result.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.typesCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Model Loading
// =============================================================================

// buildOptions controls how far a loaded model is driven.
type buildOptions struct {
	finalize bool
	realize  bool
}

// loadModel reads path and builds the model it describes.
func (c *CLI) loadModel(path string, opts buildOptions) (*model.Model, error) {
	prog := newProgress(c.Logger)
	f, err := modelfile.Load(path)
	if err != nil {
		return nil, err
	}
	m, err := f.Build(c.Catalog, model.WithLogger(c.Logger))
	if err != nil {
		return nil, err
	}
	if opts.finalize {
		if err := m.FinalizeAll(); err != nil {
			return nil, err
		}
	}
	if opts.realize {
		if err := m.RealizeAll(); err != nil {
			return nil, err
		}
	}
	prog.done("Built " + path)
	return m, nil
}
