package cmd

import (
	"github.com/spf13/cobra"
)

// unmarkCmd represents the unmark command.
var unmarkCmd = newUnmarkCmd()

func newUnmarkCmd() *cobra.Command {
	var flags formatFlags

	cmd := &cobra.Command{
		Use:   "unmark [paths...]",
		Short: "Remove fmt: off/on comments written by colfmt",
		Long: `Remove every line holding a colfmt fmt: off/on comment and collapse the
runs of blank lines left behind.

` + pathPatternsHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Unmark(cmd.Context(), formatArgs(args, flags))
		},
	}

	addFormatFlags(cmd, &flags)

	return cmd
}

func init() {
	rootCmd.AddCommand(unmarkCmd)
}
