package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"colfmt.dev/pkg/colfmt/internal/domain"
	m "colfmt.dev/pkg/colfmt/internal/model"
)

const (
	checkFlagName  = "check"
	diffFlagName   = "diff"
	stdoutFlagName = "stdout"
)

// formatFlags are the output modes shared by align, mark and unmark.
type formatFlags struct {
	check  bool
	diff   bool
	stdout bool
}

func addFormatFlags(cmd *cobra.Command, flags *formatFlags) {
	cmd.Flags().BoolVar(&flags.check, checkFlagName, false, "report files that would change and exit with an error, without writing")
	cmd.Flags().BoolVar(&flags.diff, diffFlagName, false, "show a unified diff of every change, without writing")
	cmd.Flags().BoolVar(&flags.stdout, stdoutFlagName, false, "print the formatted files to stdout, without writing")
	cmd.MarkFlagsMutuallyExclusive(stdoutFlagName, checkFlagName)
	cmd.MarkFlagsMutuallyExclusive(stdoutFlagName, diffFlagName)
}

func formatArgs(args []string, flags formatFlags) domain.FormatArgs {
	return domain.FormatArgs{
		EstimateArgs: estimateArgs(args),
		UseCache:     !viper.GetBool(noCacheFlagName),
		CacheFile:    m.Path(viper.GetString(cacheFileConfigKey)),
		Threads:      viper.GetInt(runParallelConfigKey),
		SpillDir:     viper.GetString(spillDirConfigKey),
		Check:        flags.check,
		Diff:         flags.diff,
		Stdout:       flags.stdout,
	}
}
