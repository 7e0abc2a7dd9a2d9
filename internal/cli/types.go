package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/modelgraph/pkg/container"
	"github.com/matzehuels/modelgraph/pkg/modelfile"
)

func (c *CLI) typesCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the types model files can use",
		Long: `List the catalog of type names usable in model files.

With --file, also show which container registry of that file accepts each
type. Types no registry accepts are instantiated directly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTypes(file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "model file whose registries to consult")

	return cmd
}

func (c *CLI) runTypes(file string) error {
	var f *modelfile.File
	if file != "" {
		var err error
		if f, err = modelfile.Load(file); err != nil {
			return err
		}
	}

	fmt.Fprintln(c.Out, StyleTitle.Render("Types"))
	for _, e := range c.Catalog.Entries() {
		value := container.TypeName(e.Type)
		if f != nil {
			accepted, err := acceptedBy(f, c.Catalog, e)
			if err != nil {
				return err
			}
			value += " " + StyleDim.Render(iconArrow+" "+accepted)
		}
		c.printKeyValue(e.Name, value)
	}
	return nil
}

// acceptedBy names the registry of f that accepts e's type.
func acceptedBy(f *modelfile.File, cat *modelfile.Catalog, e modelfile.Entry) (string, error) {
	r, err := f.Registry(cat)
	if err != nil {
		return "", err
	}
	cr, err := r.RegistryFor(e.Type)
	if err != nil {
		return "instantiated", nil
	}
	if s, ok := cr.(fmt.Stringer); ok {
		return s.String(), nil
	}
	return fmt.Sprintf("%T", cr), nil
}
