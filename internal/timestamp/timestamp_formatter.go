package timestamp

import (
	"fmt"
	"time"

	"github.com/AnotherFullstackDev/stepkit/internal/lib"
)

const (
	ISOLayout           = "2006-01-02T15:04:05.000Z"
	CustomLayout        = "2006-01-02 15:04:05"
	DefaultLocaleLayout = "1/2/2006, 3:04:05 PM"
)

type Formatter struct {
	location     *time.Location
	localeLayout string
}

type FormatterOption func(*Formatter)

func WithLocation(location *time.Location) FormatterOption {
	return func(f *Formatter) {
		if location != nil {
			f.location = location
		}
	}
}

func WithLocaleLayout(layout string) FormatterOption {
	return func(f *Formatter) {
		if layout != "" {
			f.localeLayout = layout
		}
	}
}

// NewFormatter falls back to time.Local and the en-US layout when no options are given.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		location:     time.Local,
		localeLayout: DefaultLocaleLayout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Formatter) Location() *time.Location {
	return f.location
}

func (f *Formatter) ToLocalString(t float64) (string, error) {
	tm, err := ToTime(t)
	if err != nil {
		return "", err
	}
	return f.localString(tm), nil
}

func (f *Formatter) ToISOString(t float64) (string, error) {
	tm, err := ToTime(t)
	if err != nil {
		return "", err
	}
	return isoString(tm), nil
}

// ToCustomFormat renders YYYY-MM-DD HH:mm:ss. Instants whose year in the
// formatter's location falls outside 0000-9999 are ErrInvalidInput.
func (f *Formatter) ToCustomFormat(t float64) (string, error) {
	tm, err := ToTime(t)
	if err != nil {
		return "", err
	}
	return f.customString(tm)
}

// Formatted holds every rendering of a single timestamp.
type Formatted struct {
	Millis int64  `json:"millis" yaml:"millis"`
	Local  string `json:"local" yaml:"local"`
	ISO    string `json:"iso" yaml:"iso"`
	Custom string `json:"custom" yaml:"custom"`
}

func (f *Formatter) FormatAll(t float64) (Formatted, error) {
	tm, err := ToTime(t)
	if err != nil {
		return Formatted{}, err
	}

	custom, err := f.customString(tm)
	if err != nil {
		return Formatted{}, err
	}

	return Formatted{
		Millis: tm.UnixMilli(),
		Local:  f.localString(tm),
		ISO:    isoString(tm),
		Custom: custom,
	}, nil
}

func (f *Formatter) localString(tm time.Time) string {
	return tm.In(f.location).Format(f.localeLayout)
}

func isoString(tm time.Time) string {
	return tm.UTC().Format(ISOLayout)
}

func (f *Formatter) customString(tm time.Time) (string, error) {
	tm = tm.In(f.location)
	if year := tm.Year(); year < 0 || year > 9999 {
		return "", fmt.Errorf("year %d does not fit YYYY: %w", year, ErrInvalidInput)
	}

	// time.Format does not pad years below 1000 to four digits.
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		tm.Year(), int(tm.Month()), tm.Day(), tm.Hour(), tm.Minute(), tm.Second()), nil
}

func ToLocalString(t float64) (string, error) {
	return NewFormatter().ToLocalString(t)
}

func ToISOString(t float64) (string, error) {
	return NewFormatter().ToISOString(t)
}

func ToCustomFormat(t float64) (string, error) {
	return NewFormatter().ToCustomFormat(t)
}

// LoadLocation resolves a configured timezone name. Empty and "Local" mean the
// process timezone.
func LoadLocation(name string) (*time.Location, error) {
	switch name {
	case "", "Local", "local":
		return time.Local, nil
	case "UTC", "utc":
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %s. %w", name, err, lib.BadUserInputError)
	}
	return loc, nil
}
