package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/mdunits/internal/core/domain"
)

func (c *CLI) newDimsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dims <expression>",
		Short: "Show the dimensionality of a unit or dimension expression",
		Example: `  mdunits dims "kJ / mol"
  mdunits dims "[length] / [time]"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.app.Dimensions(args[0])
			if err != nil {
				return err
			}
			md := "unsupported"
			if report.Supported {
				md = report.MDUnits.String()
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "dimensionality: %s\n", report.Dimensionality.Format(domain.DimensionlessName))
			_, err = fmt.Fprintf(out, "md units:       %s\n", md)
			return err
		},
	}
}
