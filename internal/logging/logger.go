// Package logging wraps charmbracelet/log with the snipscan defaults: no
// timestamps or caller info (extraction output is the payload, logs are
// side commentary on stderr), a lazily built package default, and a
// SNIPSCAN_LOG environment fallback for the level.
package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// envLevelVar names the environment variable consulted when no explicit
// level is given.
const envLevelVar = "SNIPSCAN_LOG"

//nolint:gochecknoglobals // Package-level logger is intentional for convenience
var (
	defaultLogger     *log.Logger
	defaultLoggerOnce sync.Once
)

func getDefaultLogger() *log.Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = New("")
	})
	return defaultLogger
}

// New creates a logger writing to stderr at the given level. Valid levels:
// "debug", "info", "warn", "error", "fatal". An empty level falls back to
// SNIPSCAN_LOG, then to "info"; unrecognized values also mean "info".
func New(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})

	if level == "" {
		level = os.Getenv(envLevelVar)
	}
	applyLevel(logger, level)

	return logger
}

func applyLevel(logger *log.Logger, level string) {
	switch strings.ToLower(level) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn", "warning":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	case "fatal":
		logger.SetLevel(log.FatalLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}

// Default returns the package-level default logger.
func Default() *log.Logger {
	return getDefaultLogger()
}

// SetDefault replaces the package-level default logger.
func SetDefault(logger *log.Logger) {
	defaultLogger = logger
}

// SetLevel updates the log level of the default logger.
func SetLevel(level string) {
	applyLevel(getDefaultLogger(), level)
}
