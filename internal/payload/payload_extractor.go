// Package payload pulls the JSON state that server-rendered pages inline in a
// script tag and reads single fields out of it.
package payload

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"regexp"
	"strings"

	"github.com/AnotherFullstackDev/stepkit/internal/lib"
)

const (
	DefaultScriptID = "__APP_DATA"
	DefaultVariable = "__APP_DATA__"
)

var DefaultPath = []string{"routeProps", "data", "leadPortfolioId"}

type Strategy string

const (
	// StrategyPattern matches `<script id="ID" ...>` literally, id first and double quoted.
	StrategyPattern Strategy = "pattern"
	// StrategySelector parses the document and selects script[id="ID"].
	StrategySelector Strategy = "selector"
	// StrategyAssignment reads `window.VARIABLE = {...};` from inline script code.
	StrategyAssignment Strategy = "assignment"
)

type Config struct {
	ScriptID string   `mapstructure:"script_id"`
	Path     []string `mapstructure:"path"`
	Strategy Strategy `mapstructure:"strategy"`
	Variable string   `mapstructure:"variable"`
}

func DefaultConfig() Config {
	return Config{
		ScriptID: DefaultScriptID,
		Path:     append([]string(nil), DefaultPath...),
		Strategy: StrategyPattern,
		Variable: DefaultVariable,
	}
}

func (c Config) withDefaults() Config {
	if c.ScriptID == "" {
		c.ScriptID = DefaultScriptID
	}
	if len(c.Path) == 0 {
		c.Path = DefaultPath
	}
	c.Path = append([]string(nil), c.Path...)
	if c.Strategy == "" {
		c.Strategy = StrategyPattern
	}
	if c.Variable == "" {
		c.Variable = DefaultVariable
	}
	return c
}

type locator func(html string) (string, bool)

type Extractor struct {
	config Config
	locate locator
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) (*Extractor, error) {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}

	for _, key := range cfg.Path {
		if key == "" {
			return nil, fmt.Errorf("payload path %q has an empty segment. %w", strings.Join(cfg.Path, "."), lib.BadUserInputError)
		}
	}

	e := &Extractor{
		config: cfg,
		logger: logger.With("context", "payload_extractor", "strategy", string(cfg.Strategy)),
	}

	switch cfg.Strategy {
	case StrategyPattern:
		re, err := regexp.Compile(fmt.Sprintf(`(?s)<script id="%s"[^>]*>(.*?)</script>`, regexp.QuoteMeta(cfg.ScriptID)))
		if err != nil {
			return nil, fmt.Errorf("failed to compile script tag regex: %w", err)
		}
		e.locate = regexpLocator(re)
	case StrategyAssignment:
		re, err := regexp.Compile(fmt.Sprintf(`(?s)window\.%s\s*=\s*(.*?);\s*(?:</script>|\n|$)`, regexp.QuoteMeta(cfg.Variable)))
		if err != nil {
			return nil, fmt.Errorf("failed to compile assignment regex: %w", err)
		}
		e.locate = regexpLocator(re)
	case StrategySelector:
		e.locate = selectorLocator(cfg.ScriptID, e.logger)
	default:
		return nil, fmt.Errorf("unknown extraction strategy %q. %w", cfg.Strategy, lib.BadUserInputError)
	}

	return e, nil
}

func MustNewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	e, err := NewExtractor(cfg, logger)
	if err != nil {
		log.Fatalf("could not create payload extractor: %v", err)
	}
	return e
}

// Config returns a copy of the effective configuration.
func (e *Extractor) Config() Config {
	cfg := e.config
	cfg.Path = append([]string(nil), cfg.Path...)
	return cfg
}

func regexpLocator(re *regexp.Regexp) locator {
	return func(html string) (string, bool) {
		match := re.FindStringSubmatch(html)
		if len(match) < 2 || match[1] == "" {
			return "", false
		}
		return match[1], true
	}
}

// Payload returns the whole decoded JSON document embedded in html.
func (e *Extractor) Payload(html string) (any, error) {
	raw, ok := e.locate(html)
	if !ok {
		return nil, ErrNotFound
	}

	v, err := DecodeJSON([]byte(raw))
	if err != nil {
		e.logger.Error("failed to parse embedded payload", "error", err, "bytes", len(raw))
		return nil, err
	}

	return v, nil
}

// Extract returns the value at the configured path, or one of ErrNotFound,
// ErrMalformedPayload and ErrMissingField.
func (e *Extractor) Extract(html string) (any, error) {
	root, err := e.Payload(html)
	if err != nil {
		return nil, err
	}

	v, err := Lookup(root, e.config.Path)
	if err != nil {
		return nil, err
	}

	return v, nil
}

// Value is Extract with every failure collapsed into nil.
func (e *Extractor) Value(html string) any {
	v, err := e.Extract(html)
	if err != nil {
		var missing *MissingFieldError
		if errors.As(err, &missing) {
			e.logger.Debug("payload field missing", "path", strings.Join(missing.Path, "."))
		}
		return nil
	}
	return v
}

// LeadPortfolioID renders the extracted value as text. JSON numbers keep their literal digits.
func (e *Extractor) LeadPortfolioID(html string) (string, error) {
	v, err := e.Extract(html)
	if err != nil {
		return "", err
	}
	return Stringify(v)
}

func Stringify(v any) (string, error) {
	switch value := v.(type) {
	case nil:
		return "", nil
	case string:
		return value, nil
	case fmt.Stringer:
		return value.String(), nil
	case bool:
		if value {
			return "true", nil
		}
		return "false", nil
	default:
		return "", fmt.Errorf("payload value of type %T is not a scalar", v)
	}
}
