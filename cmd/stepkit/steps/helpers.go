package steps

import (
	"fmt"

	"github.com/AnotherFullstackDev/stepkit/internal/factories"
	"github.com/AnotherFullstackDev/stepkit/internal/output"
	"github.com/AnotherFullstackDev/stepkit/internal/placeholders"
	"github.com/spf13/cobra"
)

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func newRenderer(format string) (*output.Renderer, error) {
	f, err := output.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return output.NewRenderer(f), nil
}

func renderTemplate(cmd *cobra.Command, locator *factories.SharedServicesLocator, template string, resolvers map[string]placeholders.PlaceholderResolver) error {
	rendered, err := locator.PlaceholdersService.Render(template, resolvers)
	if err != nil {
		return fmt.Errorf("rendering template: %w", err)
	}

	if _, err := fmt.Fprintln(cmd.OutOrStdout(), rendered); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
