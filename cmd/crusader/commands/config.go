package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/crusader/internal/app"
)

func (c *CLI) newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the build files for a build method",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			method, _ := cmd.Flags().GetString("method")
			target, _ := cmd.Flags().GetString("target")
			return c.app.Init(cmd.Context(), app.InitOptions{Method: method, Target: target})
		},
	}
	cmd.Flags().StringP("method", "m", "makemake", "Build method: makemake, cmake, qmake or manual")
	cmd.Flags().StringP("target", "t", "", "Comma separated names of the programs to build")
	return cmd
}

func (c *CLI) newMethodCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "method <makemake|cmake|qmake|manual>",
		Short: "Switch the build method",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.SetMethod(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) newEditConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit-config",
		Short: "Open the build configuration in $EDITOR",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.EditConfig(cmd.Context())
		},
	}
}

func (c *CLI) newCommandsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commands",
		Short: "List the available commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			export, _ := cmd.Flags().GetBool("export")
			if export {
				return c.app.ExportCommands(cmd.Context(), cmd.OutOrStdout())
			}
			return c.app.ListCommands(cmd.Context(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().Bool("export", false, "Write the commands in the format of the global command file")
	return cmd
}
