package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/AnotherFullstackDev/stepkit/internal/lib"
	"github.com/AnotherFullstackDev/stepkit/internal/payload"
	"github.com/spf13/viper"
)

type Config struct {
	Extract      ExtractConfig             `mapstructure:"extract"`
	Timestamp    TimestampConfig           `mapstructure:"timestamp"`
	Environments map[string]map[string]any `mapstructure:"environments"`
	v            *viper.Viper
}

type ExtractConfig struct {
	ScriptID string `mapstructure:"script_id"`
	Strategy string `mapstructure:"strategy"`
	Variable string `mapstructure:"variable"`
	// Path is resolved separately, it may be a list or a dot separated string.
	Path any `mapstructure:"path"`
}

type TimestampConfig struct {
	Timezone     string `mapstructure:"timezone"`
	LocaleLayout string `mapstructure:"locale_layout"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(lib.EnvKeyPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := payload.DefaultConfig()
	v.SetDefault("extract.script_id", defaults.ScriptID)
	v.SetDefault("extract.strategy", string(defaults.Strategy))
	v.SetDefault("extract.variable", defaults.Variable)
	v.SetDefault("extract.path", strings.Join(defaults.Path, "."))
	v.SetDefault("timestamp.timezone", "Local")
	v.SetDefault("timestamp.locale_layout", "")

	return v
}

func newConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.v = v
	return &cfg, nil
}

func NewDefaultConfig() (*Config, error) {
	return newConfigFromViper(newViper())
}

func NewConfigFromPath(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return newConfigFromViper(v)
}

func NewConfigFromReader(reader io.Reader) (*Config, error) {
	v := newViper()
	if err := v.ReadConfig(reader); err != nil {
		return nil, fmt.Errorf("reading config from reader: %w", err)
	}

	return newConfigFromViper(v)
}

// WithEnvironment returns a copy with the named overlay merged over the base
// settings. The receiver is left untouched.
func (c *Config) WithEnvironment(env string) (*Config, error) {
	overlay, ok := c.Environments[strings.ToLower(env)]
	if !ok {
		return nil, fmt.Errorf("environment '%s' not found in config. %w", env, lib.BadUserInputError)
	}

	newV := newViper()
	if err := newV.MergeConfigMap(c.v.AllSettings()); err != nil {
		return nil, fmt.Errorf("merging config map from global config instance: %w", err)
	}
	if err := newV.MergeConfigMap(overlay); err != nil {
		return nil, fmt.Errorf("merging environment config map: %w", err)
	}

	return newConfigFromViper(newV)
}

func (c *Config) PayloadConfig() (payload.Config, error) {
	path, err := lib.ConfigEntryToPath(c.v.Get("extract.path"), "extract.path")
	if err != nil {
		return payload.Config{}, fmt.Errorf("loading extract path: %w", err)
	}

	return payload.Config{
		ScriptID: c.Extract.ScriptID,
		Path:     path,
		Strategy: payload.Strategy(c.Extract.Strategy),
		Variable: c.Extract.Variable,
	}, nil
}
