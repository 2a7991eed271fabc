package factories

import (
	"fmt"

	"github.com/AnotherFullstackDev/stepkit/internal/payload"
	"github.com/AnotherFullstackDev/stepkit/internal/rows"
	"github.com/AnotherFullstackDev/stepkit/internal/timestamp"
)

// ExtractOverrides carries CLI flags. Empty fields keep the configured value.
type ExtractOverrides struct {
	ScriptID string
	Strategy string
	Path     []string
}

type TimestampOverrides struct {
	Timezone string
}

type StepFactory struct {
	locator *SharedServicesLocator
}

func NewStepFactory(locator *SharedServicesLocator) *StepFactory {
	return &StepFactory{locator: locator}
}

func (f *StepFactory) NewExtractor(overrides ExtractOverrides) (*payload.Extractor, error) {
	cfg, err := f.locator.Config.PayloadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading extract config: %w", err)
	}

	if overrides.ScriptID != "" {
		cfg.ScriptID = overrides.ScriptID
	}
	if overrides.Strategy != "" {
		cfg.Strategy = payload.Strategy(overrides.Strategy)
	}
	if len(overrides.Path) > 0 {
		cfg.Path = overrides.Path
	}

	f.locator.Logger.Debug("creating payload extractor",
		"script_id", cfg.ScriptID,
		"strategy", cfg.Strategy,
		"path", cfg.Path)

	extractor, err := payload.NewExtractor(cfg, f.locator.Logger)
	if err != nil {
		return nil, fmt.Errorf("creating payload extractor: %w", err)
	}
	return extractor, nil
}

func (f *StepFactory) NewFormatter(overrides TimestampOverrides) (*timestamp.Formatter, error) {
	tz := f.locator.Config.Timestamp.Timezone
	if overrides.Timezone != "" {
		tz = overrides.Timezone
	}

	location, err := timestamp.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("resolving formatter timezone: %w", err)
	}

	return timestamp.NewFormatter(
		timestamp.WithLocation(location),
		timestamp.WithLocaleLayout(f.locator.Config.Timestamp.LocaleLayout),
	), nil
}

func (f *StepFactory) NewRowsBuilder() *rows.Builder {
	return rows.NewBuilder(f.locator.Logger)
}
