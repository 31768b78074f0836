package cmd

import (
	"github.com/spf13/cobra"
)

const listLongDescription = `List source files with the number of blocks align would line up, the
one-line compound statements it would wrap and, when mark.threshold is
configured, the regions mark would protect. Nothing is written.

` + pathPatternsHelp

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List source files and what colfmt would change",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Estimate(cmd.Context(), estimateArgs(args))
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
