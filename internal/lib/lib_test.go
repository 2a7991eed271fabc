package lib

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigEntryToPath(t *testing.T) {
	r := require.New(t)

	t.Run("should split dot separated strings", func(t *testing.T) {
		path, err := ConfigEntryToPath(" routeProps . data.leadPortfolioId", "path")
		r.NoError(err)
		r.Equal([]string{"routeProps", "data", "leadPortfolioId"}, path)
	})

	t.Run("should accept lists", func(t *testing.T) {
		path, err := ConfigEntryToPath([]any{"a", nil, "b"}, "path")
		r.NoError(err)
		r.Equal([]string{"a", "b"}, path)

		path, err = ConfigEntryToPath([]string{"c"}, "path")
		r.NoError(err)
		r.Equal([]string{"c"}, path)
	})

	t.Run("should treat empty values as unset", func(t *testing.T) {
		path, err := ConfigEntryToPath(nil, "path")
		r.NoError(err)
		r.Nil(path)

		path, err = ConfigEntryToPath("  ", "path")
		r.NoError(err)
		r.Nil(path)
	})

	t.Run("should reject bad entries", func(t *testing.T) {
		_, err := ConfigEntryToPath("a..b", "path")
		r.ErrorIs(err, BadUserInputError)

		_, err = ConfigEntryToPath([]any{"a", 1}, "path")
		r.ErrorIs(err, BadUserInputError)

		_, err = ConfigEntryToPath(42, "path")
		r.ErrorIs(err, BadUserInputError)
	})
}

func TestLogger(t *testing.T) {
	r := require.New(t)

	t.Run("should parse known levels", func(t *testing.T) {
		for value, want := range map[string]slog.Level{
			"":      slog.LevelWarn,
			"debug": slog.LevelDebug,
			"INFO":  slog.LevelInfo,
			"warn":  slog.LevelWarn,
			"error": slog.LevelError,
		} {
			lvl, err := ParseLogLevel(value)
			r.NoError(err)
			r.Equal(want, lvl, value)
		}

		_, err := ParseLogLevel("chatty")
		r.ErrorIs(err, BadUserInputError)
	})

	t.Run("should filter below the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLogger(&buf, "warn")
		r.NoError(err)

		logger.Info("hidden")
		logger.Warn("shown")
		r.NotContains(buf.String(), "hidden")
		r.Contains(buf.String(), "shown")
	})
}

func TestReadInput(t *testing.T) {
	r := require.New(t)

	t.Run("should read from a reader", func(t *testing.T) {
		data, err := ReadInput(strings.NewReader("<html></html>"))
		r.NoError(err)
		r.Equal("<html></html>", string(data))
	})

	t.Run("should read stdin for an empty path or dash", func(t *testing.T) {
		data, err := ReadInputFile("-", strings.NewReader("piped"))
		r.NoError(err)
		r.Equal("piped", string(data))
	})

	t.Run("should read files", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "in.html")
		r.NoError(os.WriteFile(path, []byte("file"), 0o600))

		data, err := ReadInputFile(path, nil)
		r.NoError(err)
		r.Equal("file", string(data))

		_, err = ReadInputFile(filepath.Join(t.TempDir(), "missing.html"), nil)
		r.Error(err)
	})
}
