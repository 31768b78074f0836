package cmd

import (
	"github.com/spf13/cobra"
)

const markLongDescription = `Bracket runs of lines that are already laid out alike with
"fmt: off" / "fmt: on" comments, so that other formatters keep them as they
are. Two neighbouring lines belong to one run when their character-class
similarity score reaches --threshold. There is no default threshold.

Weights of the similarity matrix can be overridden with a TOML file:

  [[weight]]
  from = "EQUAL"
  to = "EQUAL"
  weight = 12.0

` + pathPatternsHelp

// markCmd represents the mark command.
var markCmd = newMarkCmd()

func newMarkCmd() *cobra.Command {
	var flags formatFlags

	cmd := &cobra.Command{
		Use:   "mark [paths...]",
		Short: "Protect visually aligned blocks with fmt: off/on comments",
		Long:  markLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Mark(cmd.Context(), formatArgs(args, flags))
		},
	}

	addFormatFlags(cmd, &flags)

	cmd.Flags().Float64(thresholdFlagName, defaultThreshold, "minimum similarity score for two lines to share a block (required)")
	bindFlagToConfig(cmd.Flags().Lookup(thresholdFlagName), thresholdConfigKey)

	cmd.Flags().String(matrixFlagName, defaultMatrix, "TOML file of substitution matrix overrides")
	bindFlagToConfig(cmd.Flags().Lookup(matrixFlagName), matrixConfigKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(markCmd)
}
