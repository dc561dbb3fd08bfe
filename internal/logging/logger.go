package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EnvLevel is the environment variable holding the log level
const EnvLevel = "SWIFTCONVERT_LOG_LEVEL"

// Init configures the global logger. An empty level falls back to
// SWIFTCONVERT_LOG_LEVEL: debug, info, warn, error (default: warn).
func Init(level string) {
	InitWriter(os.Stderr, level)
}

// InitWriter is Init with an explicit output
func InitWriter(w io.Writer, level string) {
	if level == "" {
		level = os.Getenv(EnvLevel)
	}
	zerolog.SetGlobalLevel(ParseLevel(level))
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"})
}

// ParseLevel maps a level name to zerolog. Unknown names are warn so that
// interactive output stays clean.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}
