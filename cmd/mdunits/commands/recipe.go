package commands

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newRecipeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipe <quantity>",
		Short: "Print the reconstruction recipe of a quantity or measurement",
		Example: `  mdunits recipe "5 meter"
  mdunits recipe "1.2 nm" --uncertainty 0.1 --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uncertainty, _ := cmd.Flags().GetFloat64("uncertainty")
			format, _ := cmd.Flags().GetString("format")
			data, err := c.app.Recipe(args[0], uncertainty, format)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bytes.TrimSpace(data)))
			return err
		},
	}
	cmd.Flags().Float64P("uncertainty", "u", 0, "Standard uncertainty; produces a measurement recipe")
	cmd.Flags().StringP("format", "f", "json", "Output format: json or yaml")
	return cmd
}

func (c *CLI) newRebuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild [recipe]",
		Short: "Rebuild a value from a JSON or YAML recipe (reads stdin without an argument or with -)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			if len(args) == 1 && args[0] != "-" {
				data = []byte(args[0])
			} else {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return zerr.Wrap(err, "failed to read recipe")
				}
				data = b
			}
			v, err := c.app.Rebuild(data)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
			return err
		},
	}
}
