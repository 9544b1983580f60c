// Package logging provides the shared structured logger for cli-sheets.
//
// Every component derives its logger from one [log/slog] text handler on
// stderr, so log lines never mix with the terminal UI on stdout. The level is
// read once from CLI_SHEETS_LOG_LEVEL (debug, info, warn, error) and defaults
// to INFO.
//
//	log := logging.New("codec")
//	log.Info("decoded workbook", "file", name, "sheets", n)
package logging

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LevelEnv names the environment variable holding the log level.
const LevelEnv = "CLI_SHEETS_LOG_LEVEL"

var (
	initLogger sync.Once
	baseLogger *slog.Logger
)

// New returns a logger tagged with component="<component>". An empty
// component returns the base logger.
func New(component string) *slog.Logger {
	initLogger.Do(func() {
		baseLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: parseLevel(os.Getenv(LevelEnv)),
		}))
	})
	if component == "" {
		return baseLogger
	}
	return baseLogger.With("component", component)
}

// parseLevel maps a case-insensitive level name to a slog level. Unknown
// names are INFO.
func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
