// Package cmd provides the root command and CLI setup for colfmt.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"colfmt.dev/pkg/colfmt/internal/adapter"
	"colfmt.dev/pkg/colfmt/internal/controller"
	"colfmt.dev/pkg/colfmt/internal/domain"
	m "colfmt.dev/pkg/colfmt/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var cacheStore adapter.CacheStore
var matrixAdapter adapter.MatrixFileAdapter
var formatter domain.Formatter
var workflow domain.Workflow
var ui controller.UI

func init() {
	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	cacheStore = adapter.NewCacheStore()
	matrixAdapter = adapter.NewMatrixFileAdapter()
	formatter = domain.NewFormatter()
	workflow = domain.NewWorkflow(
		fsAdapter,
		cacheStore,
		matrixAdapter,
		ui,
		formatter,
	)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./pkg/...      recursively scan pkg directory
  - ./cmd ./pkg    scan multiple directories
Directories contribute their *.py and *.pyi files. Files named explicitly are
always processed.`

const rootLongDescription = `colfmt lines up Python-like source code in columns.

It groups consecutive lines that share indentation and token shape and
aligns them, or brackets runs of visually aligned lines with
"fmt: off" / "fmt: on" comments so that other formatters leave them alone.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "colfmt",
		Short:         "Column formatter for Python-like code",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

			if configErr != nil {
				slog.Warn("Failed to read config", "error", configErr)
				return configErr
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringArrayP(excludeFlagName, "x", nil, "exclude files matching regex (can be repeated)")
	bindFlagToConfig(flags.Lookup(excludeFlagName), excludeConfigKey)

	flags.Bool(noCacheFlagName, defaultNoCache, "disable the incremental cache (process every file)")
	bindFlagToConfig(flags.Lookup(noCacheFlagName), noCacheFlagName)

	flags.IntP(parallelFlagName, "p", defaultRunParallel, "number of files processed in parallel")
	bindFlagToConfig(flags.Lookup(parallelFlagName), runParallelConfigKey)

	flags.BoolP(verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)

	flags.String(logFileFlagName, defaultLogFilename, "path of the log file")
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// An interrupt cancels the running workflow.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// estimateArgs collects the path and similarity settings shared by commands.
func estimateArgs(args []string) domain.EstimateArgs {
	return domain.EstimateArgs{
		Paths:     parsePaths(args),
		Exclude:   viper.GetStringSlice(excludeConfigKey),
		Threshold: viper.GetFloat64(thresholdConfigKey),
		Matrix:    m.Path(viper.GetString(matrixConfigKey)),
	}
}
