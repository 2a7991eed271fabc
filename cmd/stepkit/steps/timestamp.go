package steps

import (
	"fmt"
	"strconv"
	"time"

	"github.com/AnotherFullstackDev/stepkit/internal/factories"
	"github.com/AnotherFullstackDev/stepkit/internal/lib"
	"github.com/AnotherFullstackDev/stepkit/internal/placeholders"
	"github.com/AnotherFullstackDev/stepkit/internal/timestamp"
	"github.com/spf13/cobra"
)

func newTimestampCmd(locator locatorProvider) *cobra.Command {
	var tz string

	timestampCmd := &cobra.Command{
		Use:     "timestamp",
		Aliases: []string{"ts"},
		Short:   "Format epoch timestamps given in seconds or milliseconds",
	}

	timestampCmd.PersistentFlags().StringVar(&tz, "tz", "", "Timezone for local renderings, e.g. UTC or Asia/Shanghai")

	newFormatter := func() (*timestamp.Formatter, error) {
		return factories.NewStepFactory(locator()).NewFormatter(factories.TimestampOverrides{Timezone: tz})
	}

	timestampCmd.AddCommand(
		newTimestampFormatCmd("local", "Render in the locale layout and local timezone", newFormatter, (*timestamp.Formatter).ToLocalString),
		newTimestampFormatCmd("iso", "Render as ISO-8601 in UTC", newFormatter, (*timestamp.Formatter).ToISOString),
		newTimestampFormatCmd("custom", "Render as YYYY-MM-DD HH:mm:ss in the local timezone", newFormatter, (*timestamp.Formatter).ToCustomFormat),
		newTimestampAllCmd(locator, newFormatter),
		newTimestampCoerceCmd(),
		newTimestampRangeCmd(),
	)

	return timestampCmd
}

type formatFunc func(*timestamp.Formatter, float64) (string, error)

func newTimestampFormatCmd(use, short string, newFormatter func() (*timestamp.Formatter, error), format formatFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <timestamp>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := timestamp.ParseInput(args[0])
			if err != nil {
				return err
			}

			formatter, err := newFormatter()
			if err != nil {
				return err
			}

			s, err := format(formatter, t)
			if err != nil {
				return fmt.Errorf("formatting timestamp: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
			return err
		},
	}
}

func newTimestampAllCmd(locator locatorProvider, newFormatter func() (*timestamp.Formatter, error)) *cobra.Command {
	var format, template string

	allCmd := &cobra.Command{
		Use:   "all <timestamp>",
		Short: "Render every format at once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(format)
			if err != nil {
				return err
			}

			t, err := timestamp.ParseInput(args[0])
			if err != nil {
				return err
			}

			formatter, err := newFormatter()
			if err != nil {
				return err
			}

			formatted, err := formatter.FormatAll(t)
			if err != nil {
				return fmt.Errorf("formatting timestamp: %w", err)
			}

			if template != "" {
				return renderTemplate(cmd, locator(), template, map[string]placeholders.PlaceholderResolver{
					"local":  placeholders.Static(formatted.Local),
					"iso":    placeholders.Static(formatted.ISO),
					"custom": placeholders.Static(formatted.Custom),
					"millis": placeholders.Static(strconv.FormatInt(formatted.Millis, 10)),
				})
			}

			return renderer.Render(cmd.OutOrStdout(), map[string]any{
				"millis": formatted.Millis,
				"local":  formatted.Local,
				"iso":    formatted.ISO,
				"custom": formatted.Custom,
			})
		},
	}

	allCmd.Flags().StringVar(&format, "format", "json", "Output format: text, json or yaml")
	allCmd.Flags().StringVar(&template, "template", "", "Render into a template using local, iso, custom and millis")

	return allCmd
}

func newTimestampCoerceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coerce <value>",
		Short: "Convert an ISO date, datetime or millisecond string into epoch milliseconds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := timestamp.CoerceMillis(args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), ms)
			return err
		},
	}
}

func newTimestampRangeCmd() *cobra.Command {
	var days int

	rangeCmd := &cobra.Command{
		Use:   "range",
		Short: "Print a millisecond window of --days days ending now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 0 {
				return fmt.Errorf("days must not be negative, got %d. %w", days, lib.BadUserInputError)
			}

			start, end := timestamp.DefaultRange(time.Now(), days)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), start, end)
			return err
		},
	}

	rangeCmd.Flags().IntVar(&days, "days", 30, "Window length in days")

	return rangeCmd
}
