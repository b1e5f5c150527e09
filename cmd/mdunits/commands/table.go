package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *CLI) newTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the canonical molecular-dynamics unit table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := c.app.Table()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "DIMENSION\tUNIT")
			for _, e := range entries {
				_, _ = fmt.Fprintf(w, "%s\t%s\n", e.Dimension, e.Unit)
			}
			return w.Flush()
		},
	}
}
