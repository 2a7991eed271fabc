package rows

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// isBlank reports the values upstream APIs use for "no data".
func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == "" || v == "null"
	default:
		return false
	}
}

// ParseFloat returns nil for blank or unparsable values instead of failing.
func ParseFloat(value any) *float64 {
	if isBlank(value) {
		return nil
	}

	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case bool:
		f = boolNumber(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ParseInt returns nil for blank or unparsable values. Fractional numbers are
// truncated, fractional strings are rejected.
func ParseInt(value any) *int64 {
	if isBlank(value) {
		return nil
	}

	var i int64
	switch v := value.(type) {
	case int:
		i = int64(v)
	case int64:
		i = v
	case bool:
		i = int64(boolNumber(v))
	case float64:
		return truncate(v)
	case float32:
		return truncate(float64(v))
	case json.Number:
		if parsed, err := v.Int64(); err == nil {
			i = parsed
			break
		}
		f, err := v.Float64()
		if err != nil {
			return nil
		}
		return truncate(f)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil
		}
		i = parsed
	default:
		return nil
	}

	return &i
}

func truncate(f float64) *int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
		return nil
	}
	i := int64(f)
	return &i
}

func boolNumber(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// truthy mirrors how loosely typed upstream payloads mark empty fields.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	case float64:
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

// firstOf returns the first truthy value under keys, or the value of the last
// key when none is truthy.
func firstOf(item map[string]any, keys ...string) any {
	for _, key := range keys[:len(keys)-1] {
		if v := item[key]; truthy(v) {
			return v
		}
	}
	return item[keys[len(keys)-1]]
}
