package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/smudge-dev/smudge/internal/domain"
	m "github.com/smudge-dev/smudge/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "smudge"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName    = "output"
	extensionFlagName = "extension"
	excludeFlagName   = "exclude"
	noReportFlagName  = "no-report"
	verboseFlagName   = "verbose"

	runParallelFlagName = "parallel"
	runBackupFlagName   = "backup"

	rootsConfigKey       = "paths.roots"
	extensionConfigKey   = "paths.extension"
	excludeConfigKey     = "paths.exclude"
	runParallelConfigKey = "run.parallel"
	runBackupConfigKey   = "run.backup"
	noReportConfigKey    = "run.no_report"

	variableKeywordKey = "rules.variable.keyword"
	variablePrefixKey  = "rules.variable.prefix"
	functionKeywordKey = "rules.function.keyword"
	functionPrefixKey  = "rules.function.prefix"

	defaultReportsDir  = ".smudge-reports"
	defaultRoot        = "src"
	defaultExtension   = ".rs"
	defaultRunParallel = 1

	defaultVariableKeyword = "let"
	defaultVariablePrefix  = "var"
	defaultFunctionKeyword = "fn"
	defaultFunctionPrefix  = "func"

	envPrefix = "SMUDGE"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".smudge.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultReportsDir)
	viper.SetDefault(rootsConfigKey, []string{defaultRoot})
	viper.SetDefault(extensionConfigKey, defaultExtension)
	viper.SetDefault(excludeConfigKey, []string{})
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(runBackupConfigKey, false)
	viper.SetDefault(noReportConfigKey, false)

	viper.SetDefault(variableKeywordKey, defaultVariableKeyword)
	viper.SetDefault(variablePrefixKey, defaultVariablePrefix)
	viper.SetDefault(functionKeywordKey, defaultFunctionKeyword)
	viper.SetDefault(functionPrefixKey, defaultFunctionPrefix)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

// rulesFromConfig builds the rename rounds from configuration. Defaults
// reproduce the classic behavior: let -> var_<i>, fn -> func_<i>.
func rulesFromConfig() []m.Rule {
	rules := domain.DefaultRules()

	for i := range rules {
		switch rules[i].Kind {
		case m.CaptureVariable:
			rules[i].Keyword = viper.GetString(variableKeywordKey)
			rules[i].Prefix = viper.GetString(variablePrefixKey)
		case m.CaptureFunction:
			rules[i].Keyword = viper.GetString(functionKeywordKey)
			rules[i].Prefix = viper.GetString(functionPrefixKey)
		}
	}

	return rules
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
// By default it logs at Info; if verbose is true it logs at Debug.
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
