package steps

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/AnotherFullstackDev/stepkit/internal/factories"
	"github.com/AnotherFullstackDev/stepkit/internal/lib"
	"github.com/AnotherFullstackDev/stepkit/internal/payload"
	"github.com/AnotherFullstackDev/stepkit/internal/placeholders"
	"github.com/spf13/cobra"
)

func newExtractCmd(locator locatorProvider) *cobra.Command {
	var scriptID, strategy, path, format, template string
	var strict bool

	extractCmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract a field from the JSON payload embedded in an HTML page",
		Long: "Reads HTML from the file or stdin, finds the script tag carrying the page state " +
			"and prints the configured field. A missing tag, invalid JSON or a missing field prints " +
			"an empty line unless --strict is set.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(format)
			if err != nil {
				return err
			}

			overrides := factories.ExtractOverrides{
				ScriptID: scriptID,
				Strategy: strategy,
			}
			if path != "" {
				overrides.Path, err = lib.ConfigEntryToPath(path, "--path")
				if err != nil {
					return err
				}
			}

			extractor, err := factories.NewStepFactory(locator()).NewExtractor(overrides)
			if err != nil {
				return err
			}

			html, err := lib.ReadInputFile(firstArg(args), cmd.InOrStdin())
			if err != nil {
				return err
			}

			value, err := extractor.Extract(string(html))
			if err != nil {
				if strict {
					return fmt.Errorf("extracting payload field: %w", err)
				}
				if !errors.Is(err, payload.ErrNotFound) && !errors.Is(err, payload.ErrMalformedPayload) && !errors.Is(err, payload.ErrMissingField) {
					return err
				}
				value = nil
			}

			if template != "" {
				text, err := valueText(value)
				if err != nil {
					return err
				}
				cfg := extractor.Config()
				return renderTemplate(cmd, locator(), template, map[string]placeholders.PlaceholderResolver{
					"value":     placeholders.Static(text),
					"script_id": placeholders.Static(cfg.ScriptID),
					"path":      placeholders.Static(strings.Join(cfg.Path, ".")),
				})
			}

			return renderer.Render(cmd.OutOrStdout(), value)
		},
	}

	extractCmd.Flags().StringVar(&scriptID, "script-id", "", "Id of the script tag holding the payload")
	extractCmd.Flags().StringVar(&strategy, "strategy", "", "Locating strategy: pattern, selector or assignment")
	extractCmd.Flags().StringVar(&path, "path", "", "Dot separated path of the field to read")
	extractCmd.Flags().StringVar(&format, "format", "text", "Output format: text, json or yaml")
	extractCmd.Flags().StringVar(&template, "template", "", "Render the value into a {{ value }} template")
	extractCmd.Flags().BoolVar(&strict, "strict", false, "Fail instead of printing an empty value")

	extractCmd.AddCommand(newAppDataCmd())

	return extractCmd
}

func newAppDataCmd() *cobra.Command {
	var format string

	appDataCmd := &cobra.Command{
		Use:   "app-data [file]",
		Short: "Parse an already extracted app data JSON document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(format)
			if err != nil {
				return err
			}

			raw, err := lib.ReadInputFile(firstArg(args), cmd.InOrStdin())
			if err != nil {
				return err
			}

			data, err := payload.ParseAppData(raw)
			if err != nil {
				return fmt.Errorf("parsing app data: %w", err)
			}

			return renderer.Render(cmd.OutOrStdout(), map[string]any{
				"leadPortfolioId": data.LeadPortfolioID,
				"appData":         data.Data,
			})
		},
	}

	appDataCmd.Flags().StringVar(&format, "format", "json", "Output format: text, json or yaml")

	return appDataCmd
}

func valueText(value any) (string, error) {
	text, err := payload.Stringify(value)
	if err == nil {
		return text, nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encoding payload value: %w", err)
	}
	return string(data), nil
}
