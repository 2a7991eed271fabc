package steps

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/AnotherFullstackDev/stepkit/internal/config"
	"github.com/AnotherFullstackDev/stepkit/internal/factories"
	"github.com/AnotherFullstackDev/stepkit/internal/lib"
	"github.com/AnotherFullstackDev/stepkit/internal/placeholders"
	"github.com/spf13/cobra"
)

type locatorProvider func() *factories.SharedServicesLocator

func NewRootCmd(logger *slog.Logger) *cobra.Command {
	var configPath, env string
	var locator *factories.SharedServicesLocator

	rootCmd := &cobra.Command{
		Use:           "stepkit",
		Short:         "Stepkit runs small data shaping steps for workflow pipelines.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			if env != "" {
				cfg, err = cfg.WithEnvironment(env)
				if err != nil {
					return fmt.Errorf("loading environment specific config: %w", err)
				}
			}

			locator = factories.NewSharedServicesLocator(cfg, logger, placeholders.NewService())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv(lib.ConfigPathEnv), "Config file (default ./stepkit.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "Environment overlay from the config file")

	provide := func() *factories.SharedServicesLocator { return locator }

	rootCmd.AddCommand(
		newExtractCmd(provide),
		newTimestampCmd(provide),
		newRowsCmd(provide),
	)

	return rootCmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.NewConfigFromPath(path)
		if err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
		return cfg, nil
	}

	if _, err := os.Stat(lib.DefaultConfigPath); err == nil {
		cfg, err := config.NewConfigFromPath(lib.DefaultConfigPath)
		if err != nil {
			return nil, fmt.Errorf("loading config %s: %w", lib.DefaultConfigPath, err)
		}
		return cfg, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("checking config %s: %w", lib.DefaultConfigPath, err)
	}

	cfg, err := config.NewDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("loading default config: %w", err)
	}
	return cfg, nil
}
