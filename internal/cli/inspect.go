package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/modelgraph/pkg/model"
)

// inspectOpts holds the flags of the inspect command.
type inspectOpts struct {
	buildOptions
	watch bool
}

func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Build a model file and print its node tree",
		Long: `Build the model described by FILE (.toml, .yaml or .yml) and print
every node with its projections and their lifecycle state.

With --finalize every projection is finalized first, which realizes the
projections marked realize_on_finalize. With --realize every projection is
realized. With --watch the model is rebuilt whenever FILE changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.watch {
				return c.watchFile(cmd.Context(), args[0], func() error {
					if err := c.runInspect(args[0], opts.buildOptions); err != nil {
						c.printError("%v", err)
					}
					return nil
				})
			}
			return c.runInspect(args[0], opts.buildOptions)
		},
	}

	cmd.Flags().BoolVar(&opts.finalize, "finalize", false, "finalize all projections")
	cmd.Flags().BoolVar(&opts.realize, "realize", false, "realize all projections")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "rebuild when the file changes")

	return cmd
}

func (c *CLI) runInspect(path string, opts buildOptions) error {
	m, err := c.loadModel(path, opts)
	if err != nil {
		return err
	}
	c.printModel(path, m)
	return nil
}

func (c *CLI) printModel(path string, m *model.Model) {
	fmt.Fprintln(c.Out, StyleTitle.Render(path))
	fmt.Fprintln(c.Out, modelTree(m).String())
	c.printStats(statsOf(m))
}
