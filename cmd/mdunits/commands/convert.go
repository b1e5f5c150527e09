package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <quantity>",
		Short: "Convert a quantity to molecular-dynamics units or to --to",
		Example: `  mdunits convert "1 angstrom"
  mdunits convert "25 degC" --to kelvin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, _ := cmd.Flags().GetString("to")
			q, err := c.app.Convert(args[0], target)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), q.Format(c.app.Precision()))
			return err
		},
	}
	cmd.Flags().StringP("to", "t", "", "Target unit expression (default: molecular-dynamics units)")
	return cmd
}
