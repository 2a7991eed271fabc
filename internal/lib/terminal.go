package lib

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// ReadInput reads the whole step input. An interactive terminal is refused so
// that a forgotten pipe fails fast instead of waiting for EOF.
func ReadInput(in io.Reader) ([]byte, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, fmt.Errorf("stdin is a terminal, pipe the input or pass a file. %w", BadUserInputError)
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	slog.Debug("input received", "bytes", len(data))

	return data, nil
}

// ReadInputFile reads path, or stdin when path is empty or "-".
func ReadInputFile(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return ReadInput(stdin)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input file %q: %w", path, err)
	}

	return data, nil
}
