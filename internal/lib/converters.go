package lib

import (
	"fmt"
	"log/slog"
	"strings"
)

func ConfigEntryToTypedSlice[T any](entry interface{}, identifier string) ([]T, error) {
	l := slog.With("context", "config_entry_to_typed_slice", "identifier", identifier)

	interfaceSlice, ok := entry.([]any)
	if !ok {
		l.Debug("wrong type for entry",
			"required_type", fmt.Sprintf("%T", *new([]T)),
			"type", fmt.Sprintf("%T", entry))
		return nil, fmt.Errorf("%s must be a list of %T. %w", identifier, *new(T), BadUserInputError)
	}

	result := make([]T, 0, len(interfaceSlice))
	for _, sliceElm := range interfaceSlice {
		if sliceElm == nil {
			continue
		}

		elm, ok := sliceElm.(T)
		if !ok {
			l.Debug("wrong type for entry's element",
				"required_type", fmt.Sprintf("%T", *new(T)),
				"type", fmt.Sprintf("%T", sliceElm))
			return nil, fmt.Errorf("%s must be a list of %T. %w", identifier, *new(T), BadUserInputError)
		}
		result = append(result, elm)
	}

	return result, nil
}

// ConfigEntryToPath accepts either a list of keys or a single dot separated string.
// Environment variables and CLI flags can only carry the latter.
func ConfigEntryToPath(entry interface{}, identifier string) ([]string, error) {
	switch v := entry.(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		parts := strings.Split(v, ".")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
			if parts[i] == "" {
				return nil, fmt.Errorf("%s has an empty segment in %q. %w", identifier, v, BadUserInputError)
			}
		}
		return parts, nil
	default:
		return ConfigEntryToTypedSlice[string](entry, identifier)
	}
}
