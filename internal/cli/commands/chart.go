package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/longform/internal/chart"
	"github.com/leapstack-labs/longform/internal/cli/config"
	"github.com/leapstack-labs/longform/internal/reshape"
)

// NewChartCommand creates the chart command.
func NewChartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chart <category> <metric>",
		Short: "Preview one category's metric as terminal bars",
		Long: `Normalize the configured sources, select one (category, metric) pair,
and print a bar preview. The same series is what a charting backend
receives: a label column and a numeric value column.`,
		Example: `  longform chart ADHD Count
  longform chart Age Percent`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(cmd, args[0], args[1])
		},
	}
}

func runChart(cmd *cobra.Command, category, metric string) error {
	cfg := config.Current()
	ctx := cmd.Context()

	ad, err := connectAdapter(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = ad.Close() }()

	inputs, err := gatherInputs(ctx, ad, cfg, nil, nil)
	if err != nil {
		return err
	}

	long := reshape.NormalizeMany(inputs, cfg.ReshapeOptions())
	series := chart.FromLong(long, category, metric)
	if len(series.Values) == 0 {
		return fmt.Errorf("no data for category %q, metric %q", category, metric)
	}

	_, _ = fmt.Fprint(cmd.OutOrStdout(), chart.Bars(series))
	return nil
}
