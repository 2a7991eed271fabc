package steps

import (
	"fmt"

	"github.com/AnotherFullstackDev/stepkit/internal/factories"
	"github.com/AnotherFullstackDev/stepkit/internal/lib"
	"github.com/AnotherFullstackDev/stepkit/internal/payload"
	"github.com/spf13/cobra"
)

func newRowsCmd(locator locatorProvider) *cobra.Command {
	var leadPortfolioID, format string

	rowsCmd := &cobra.Command{
		Use:   "rows [file]",
		Short: "Flatten a copy trading metrics bundle into table rows",
		Long: "Reads a JSON object with overview, performance, holdings, trade_history, " +
			"balance_history and copy_traders sections and prints one table per section. " +
			"Numeric columns that are blank or unparsable become null.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(format)
			if err != nil {
				return err
			}

			raw, err := lib.ReadInputFile(firstArg(args), cmd.InOrStdin())
			if err != nil {
				return err
			}

			decoded, err := payload.DecodeJSON(raw)
			if err != nil {
				return fmt.Errorf("decoding metrics bundle: %w", err)
			}
			bundle, ok := decoded.(map[string]any)
			if !ok {
				return fmt.Errorf("metrics bundle must be a JSON object, got %T. %w", decoded, lib.BadUserInputError)
			}

			set, err := factories.NewStepFactory(locator()).NewRowsBuilder().Build(bundle, leadPortfolioID)
			if err != nil {
				return fmt.Errorf("building metric rows: %w", err)
			}

			return renderer.Render(cmd.OutOrStdout(), set)
		},
	}

	rowsCmd.Flags().StringVar(&leadPortfolioID, "lead-portfolio-id", "", "Lead portfolio id for every row (default: overview.leadPortfolioId)")
	rowsCmd.Flags().StringVar(&format, "format", "json", "Output format: json or yaml")

	return rowsCmd
}
