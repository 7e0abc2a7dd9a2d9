package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/modelgraph/pkg/render"
)

// dotOpts holds the flags of the dot command.
type dotOpts struct {
	buildOptions
	output      string
	detailed    bool
	projections bool
	scale       float64
}

func (c *CLI) dotCommand() *cobra.Command {
	var opts dotOpts

	cmd := &cobra.Command{
		Use:   "dot FILE",
		Short: "Render the model graph with Graphviz",
		Long: `Build the model described by FILE and write its node graph.

The output format follows the extension of --output: .dot writes DOT source,
.svg renders in-process with Graphviz, .pdf and .png convert the SVG with
rsvg-convert. Without --output DOT source is written to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDot(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (.dot, .svg, .pdf or .png)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "list projections in node labels")
	cmd.Flags().BoolVar(&opts.projections, "projections", true, "draw projections as separate shapes")
	cmd.Flags().BoolVar(&opts.finalize, "finalize", false, "finalize all projections first")
	cmd.Flags().BoolVar(&opts.realize, "realize", false, "realize all projections first")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2.0, "PNG scale factor")

	return cmd
}

func (c *CLI) runDot(ctx context.Context, path string, opts dotOpts) error {
	m, err := c.loadModel(path, opts.buildOptions)
	if err != nil {
		return err
	}
	dot := render.ToDOT(m, render.Options{Detailed: opts.detailed, Projections: opts.projections})
	if opts.output == "" {
		_, err := fmt.Fprint(c.Out, dot)
		return err
	}

	data, err := encode(ctx, dot, strings.ToLower(filepath.Ext(opts.output)), opts.scale)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return err
	}
	c.printSuccess("Rendered %s", path)
	c.printFile(opts.output)
	return nil
}

func encode(ctx context.Context, dot, ext string, scale float64) ([]byte, error) {
	if ext == ".dot" || ext == ".gv" {
		return []byte(dot), nil
	}
	switch ext {
	case ".svg", ".pdf", ".png":
	default:
		return nil, fmt.Errorf("unsupported output extension %q (use .dot, .svg, .pdf or .png)", ext)
	}
	svg, err := render.RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	switch ext {
	case ".pdf":
		return render.Convert(ctx, svg, render.FormatPDF, 0)
	case ".png":
		return render.Convert(ctx, svg, render.FormatPNG, scale)
	}
	return svg, nil
}
