// Package timestamp turns epoch timestamps of unknown unit into display strings.
package timestamp

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// SecondsThreshold separates second and millisecond inputs. Values strictly
	// below it are seconds. Downstream steps depend on this exact value.
	SecondsThreshold = 1_000_000_000_000

	// MaxMillis bounds the representable range to ±100,000,000 days around the epoch.
	MaxMillis = 8.64e15
)

var (
	ErrInvalidInput = errors.New("invalid timestamp input")
)

// ToMillis applies the unit heuristic and truncates to whole milliseconds.
func ToMillis(t float64) (int64, error) {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0, fmt.Errorf("timestamp %v is not a finite number: %w", t, ErrInvalidInput)
	}

	ms := t
	if t < SecondsThreshold {
		ms = t * 1000
	}
	ms = math.Trunc(ms)

	if math.Abs(ms) > MaxMillis {
		return 0, fmt.Errorf("timestamp %v is outside the representable range: %w", t, ErrInvalidInput)
	}

	return int64(ms), nil
}

func ToTime(t float64) (time.Time, error) {
	ms, err := ToMillis(t)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}

// ParseInput parses a textual timestamp handed over by the pipeline.
func ParseInput(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("empty timestamp: %w", ErrInvalidInput)
	}

	t, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing timestamp %q: %w", value, ErrInvalidInput)
	}
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0, fmt.Errorf("timestamp %q is not a finite number: %w", value, ErrInvalidInput)
	}

	return t, nil
}
