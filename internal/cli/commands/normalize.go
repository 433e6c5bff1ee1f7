package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/longform/internal/cli/config"
	"github.com/leapstack-labs/longform/internal/reshape"
)

// NormalizeOptions holds options for the normalize command.
type NormalizeOptions struct {
	Format     string
	Wide       bool
	Categories []string
}

// NewNormalizeCommand creates the normalize command.
func NewNormalizeCommand() *cobra.Command {
	opts := &NormalizeOptions{}

	cmd := &cobra.Command{
		Use:   "normalize [files...]",
		Short: "Melt category tables into one long-form table",
		Long: `Melt heterogeneous category tables into a single long-form table.

Each input is a CSV with a label column and one or more metric columns
(count-like and percent-like, recognized by name). The output has one row
per (Category, Variable, Metric, Value). With --wide, the long-form rows
are pivoted back into one row per (Category, Variable) with a column per
metric.

With no file arguments, inputs come from the sources list in
longform.yaml.`,
		Example: `  # Normalize configured sources
  longform normalize

  # Normalize ad-hoc files, naming their categories
  longform normalize age.csv sex.csv --category Age --category Sex

  # Pivoted summary as markdown
  longform normalize --wide --format md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: table, json, csv, md (default from config)")
	cmd.Flags().BoolVar(&opts.Wide, "wide", false, "Pivot the result to one row per (Category, Variable)")
	cmd.Flags().StringArrayVar(&opts.Categories, "category", nil, "Category name for the positional file at the same index (repeatable)")

	return cmd
}

func runNormalize(cmd *cobra.Command, args []string, opts *NormalizeOptions) error {
	cfg := config.Current()
	ctx := cmd.Context()

	ad, err := connectAdapter(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = ad.Close() }()

	inputs, err := gatherInputs(ctx, ad, cfg, args, opts.Categories)
	if err != nil {
		return err
	}

	long := reshape.NormalizeMany(inputs, cfg.ReshapeOptions())

	format := opts.Format
	if format == "" {
		format = cfg.Output
	}

	if opts.Wide {
		wide, err := reshape.PivotWide(long)
		if err != nil {
			return err
		}
		return renderTableAs(cmd.OutOrStdout(), wide, format)
	}
	return renderTableAs(cmd.OutOrStdout(), longToTable(long), format)
}
