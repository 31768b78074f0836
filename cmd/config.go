package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "colfmt"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	noCacheFlagName   = "no-cache"
	excludeFlagName   = "exclude"
	parallelFlagName  = "parallel"
	verboseFlagName   = "verbose"
	logFileFlagName   = "log-file"
	fmtTagsFlagName   = "fmt-tags"
	thresholdFlagName = "threshold"
	matrixFlagName    = "matrix"

	runParallelConfigKey = "run.parallel"
	excludeConfigKey     = "paths.exclude"
	cacheFileConfigKey   = "cache.file"
	spillDirConfigKey    = "run.spill_dir"
	fmtTagsConfigKey     = "align.fmt_tags"
	thresholdConfigKey   = "mark.threshold"
	matrixConfigKey      = "mark.matrix"

	defaultNoCache     = false
	defaultRunParallel = 1
	defaultCacheFile   = ".colfmt-cache.yaml"
	defaultSpillDir    = ""
	defaultFmtTags     = false
	// defaultThreshold of zero means unset; mark refuses to run without one.
	defaultThreshold = 0.0
	defaultMatrix    = ""

	envPrefix = "COLFMT"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".colfmt.log"
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var (
	globalLogger *slog.Logger
	// configErr is set when colfmt.yaml exists but could not be read.
	configErr error
)

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(noCacheFlagName, defaultNoCache)
	viper.SetDefault(cacheFileConfigKey, defaultCacheFile)
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(spillDirConfigKey, defaultSpillDir)
	viper.SetDefault(excludeConfigKey, []string{})
	viper.SetDefault(fmtTagsConfigKey, defaultFmtTags)
	viper.SetDefault(thresholdConfigKey, defaultThreshold)
	viper.SetDefault(matrixConfigKey, defaultMatrix)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	configErr = readConfig(viper.GetViper())
}

// readConfig loads the config file of v. A missing file is not an error.
func readConfig(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("read %s: %w", v.ConfigFileUsed(), err)
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at the configured level; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
