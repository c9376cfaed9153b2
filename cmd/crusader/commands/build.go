package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/crusader/internal/app"
)

func (c *CLI) newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Regenerate the build files and rescan dependencies when needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			return c.app.Update(cmd.Context(), force)
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Run the dependency scan even if the makefile is current")
	return cmd
}

func (c *CLI) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Run the project's make command",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Build(cmd.Context())
		},
	}
}

func (c *CLI) newExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <name> [files...]",
		Short: "Run a named command on the given files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, _ := cmd.Flags().GetInt("line")
			return c.app.Exec(cmd.Context(), args[0], app.ExecOptions{
				Files: args[1:],
				Line:  line,
			})
		},
	}
	cmd.Flags().IntP("line", "l", 0, "Line number substituted for $line")
	return cmd
}

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep the build files current while project files change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Watch(cmd.Context())
		},
	}
}
