package timestamp

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// CoerceMillis converts loosely typed upstream values into epoch milliseconds.
// Numbers are taken as milliseconds as-is, the seconds heuristic of ToMillis
// is not applied here.
func CoerceMillis(value any) (int64, error) {
	switch v := value.(type) {
	case nil:
		return 0, fmt.Errorf("no timestamp value: %w", ErrInvalidInput)
	case time.Time:
		return v.UTC().UnixMilli(), nil
	case *time.Time:
		if v == nil {
			return 0, fmt.Errorf("no timestamp value: %w", ErrInvalidInput)
		}
		return v.UTC().UnixMilli(), nil
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return coerceUnsigned(uint64(v))
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return coerceUnsigned(v)
	case json.Number:
		if ms, err := v.Int64(); err == nil {
			return ms, nil
		}
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("parsing numeric timestamp %q: %w", v.String(), ErrInvalidInput)
		}
		return coerceFloat(f)
	case float32:
		return coerceFloat(float64(v))
	case float64:
		return coerceFloat(v)
	case string:
		return coerceString(v)
	default:
		return 0, fmt.Errorf("unsupported timestamp value %#v (%T): %w", value, value, ErrInvalidInput)
	}
}

func coerceUnsigned(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("timestamp %d overflows int64: %w", v, ErrInvalidInput)
	}
	return int64(v), nil
}

func coerceFloat(v float64) (int64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > MaxMillis {
		return 0, fmt.Errorf("timestamp %v is not a usable number: %w", v, ErrInvalidInput)
	}
	return int64(v), nil
}

func coerceString(value string) (int64, error) {
	stripped := strings.TrimSpace(value)
	if stripped == "" {
		return 0, fmt.Errorf("empty timestamp: %w", ErrInvalidInput)
	}

	if isDigits(stripped) {
		ms, err := strconv.ParseInt(stripped, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parsing millisecond timestamp %q: %w", value, ErrInvalidInput)
		}
		return ms, nil
	}

	for _, layout := range isoLayouts {
		// Layouts without a zone parse as UTC.
		parsed, err := time.Parse(layout, stripped)
		if err == nil {
			return parsed.UTC().UnixMilli(), nil
		}
	}

	return 0, fmt.Errorf("unsupported datetime format %q: %w", value, ErrInvalidInput)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// DefaultRange returns a millisecond window covering days days up to now.
func DefaultRange(now time.Time, days int) (start, end int64) {
	end = now.UTC().UnixMilli()
	start = now.UTC().AddDate(0, 0, -days).UnixMilli()
	return start, end
}
