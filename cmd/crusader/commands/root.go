// Package commands implements the CLI commands for the crusader build tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/crusader/internal/app"
	"go.trai.ch/crusader/internal/build"
)

// CLI represents the command line interface for crusader.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	SetOutputMode(mode string)
	Update(ctx context.Context, force bool) error
	Build(ctx context.Context) error
	Exec(ctx context.Context, name string, opts app.ExecOptions) error
	Init(ctx context.Context, opts app.InitOptions) error
	SetMethod(ctx context.Context, name string) error
	EditConfig(ctx context.Context) error
	ListCommands(ctx context.Context, w io.Writer) error
	ExportCommands(ctx context.Context, w io.Writer) error
	Watch(ctx context.Context) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "crusader",
		Short:         "Keeps makefiles in step with the project's file list and runs its commands",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("output", "o", "auto", "Console output: auto, tty or plain")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		mode, err := cmd.Flags().GetString("output")
		if err != nil {
			return err
		}
		c.app.SetOutputMode(mode)
		return nil
	}

	rootCmd.AddCommand(c.newUpdateCmd())
	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newExecCmd())
	rootCmd.AddCommand(c.newInitCmd())
	rootCmd.AddCommand(c.newMethodCmd())
	rootCmd.AddCommand(c.newEditConfigCmd())
	rootCmd.AddCommand(c.newCommandsCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
