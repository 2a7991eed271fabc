package payload

import (
	"strconv"
)

// Lookup walks path through decoded JSON. Objects are indexed by key and
// arrays by zero based position.
func Lookup(root any, path []string) (any, error) {
	current := root
	for i, key := range path {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[key]
			if !ok {
				return nil, &MissingFieldError{Path: append([]string(nil), path[:i+1]...)}
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(key)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, &MissingFieldError{Path: append([]string(nil), path[:i+1]...)}
			}
			current = node[idx]
		default:
			return nil, &MissingFieldError{Path: append([]string(nil), path[:i+1]...)}
		}
	}

	return current, nil
}
