package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const alignLongDescription = `Align consecutive lines that share indentation and token shape into
columns. Lone one-line compound statements such as "if x: y = 1" are wrapped
in fmt: off/on comments. Files are rewritten in place unless --check, --diff
or --stdout is given.

` + pathPatternsHelp

// alignCmd represents the align command.
var alignCmd = newAlignCmd()

func newAlignCmd() *cobra.Command {
	var (
		flags formatFlags
		debug bool
	)

	cmd := &cobra.Command{
		Use:   "align [paths...]",
		Short: "Align similar lines into columns",
		Long:  alignLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			runArgs := formatArgs(args, flags)
			runArgs.FmtTags = viper.GetBool(fmtTagsConfigKey)
			runArgs.Debug = debug

			return workflow.Align(cmd.Context(), runArgs)
		},
	}

	addFormatFlags(cmd, &flags)

	cmd.Flags().Bool(fmtTagsFlagName, defaultFmtTags, "wrap every aligned block in fmt: off/on comments")
	bindFlagToConfig(cmd.Flags().Lookup(fmtTagsFlagName), fmtTagsConfigKey)

	cmd.Flags().BoolVar(&debug, "debug", false, "log every processed line (needs --verbose)")

	return cmd
}

func init() {
	rootCmd.AddCommand(alignCmd)
}
