package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newSICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "si <quantity>",
		Short: "Express a quantity in SI base units",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := c.app.ToSI(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
			return err
		},
	}
}
