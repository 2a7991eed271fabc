package lib

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

func ParseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return ParseLogLevel(DefaultLogLevel)
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q. %w", value, BadUserInputError)
	}
}

// NewLogger builds the process logger. Diagnostics go to w so that stdout
// stays reserved for the step output.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		return nil, err
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func NewLoggerFromEnv() (*slog.Logger, error) {
	return NewLogger(os.Stderr, os.Getenv(LogLevelEnv))
}
