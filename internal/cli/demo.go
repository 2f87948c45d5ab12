package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/textblock/internal/showcase"
)

// demoCommand creates the demo command, which prints a built-in layout.
func (c *CLI) demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "demo [name]",
		Short:     "Print a built-in demo layout",
		Long:      "Print one of the built-in demo layouts. Without a name, list the demos.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: showcase.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return c.listDemos()
			}
			return c.runDemo(args[0])
		},
	}
}

func (c *CLI) listDemos() error {
	for _, name := range showcase.Names() {
		if _, err := fmt.Fprintln(c.out, name); err != nil {
			return err
		}
	}
	return nil
}

func (c *CLI) runDemo(name string) error {
	b, err := showcase.Lookup(name)
	if err != nil {
		return err
	}
	_, err = b.WriteTo(c.out)
	return err
}
