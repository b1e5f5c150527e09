// Package commands implements the CLI commands for the mdunits tool.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/mdunits/internal/app"
	"go.trai.ch/mdunits/internal/build"
)

// skipInit marks commands that run without a unit registry.
const skipInit = "skip-init"

// CLI represents the command line interface for mdunits.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "mdunits",
		Short:         "Convert physical quantities to molecular-dynamics units",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	// Persistent flags first: -v belongs to --verbose, so --version gets no shorthand.
	rootCmd.PersistentFlags().StringP("config", "c", "mdunits.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log each resolution step")

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRunE = c.initApp

	rootCmd.AddCommand(c.newConvertCmd())
	rootCmd.AddCommand(c.newDimsCmd())
	rootCmd.AddCommand(c.newTableCmd())
	rootCmd.AddCommand(c.newSICmd())
	rootCmd.AddCommand(c.newRecipeCmd())
	rootCmd.AddCommand(c.newRebuildCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) initApp(cmd *cobra.Command, _ []string) error {
	if _, ok := cmd.Annotations[skipInit]; ok {
		return nil
	}
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	return c.app.Init(cmd.Context(), app.InitOptions{
		ConfigPath: configPath,
		Verbose:    verbose,
	})
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetOutput redirects command output and input. Used for testing.
func (c *CLI) SetOutput(out io.Writer, in io.Reader) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(out)
	c.rootCmd.SetIn(in)
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}
