package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/longform/internal/cli/config"
	"github.com/leapstack-labs/longform/internal/reshape"
	"github.com/leapstack-labs/longform/internal/source"
	"github.com/leapstack-labs/longform/internal/table"
)

// SchemaOptions holds options for the schema command.
type SchemaOptions struct {
	Format string
}

// NewSchemaCommand creates the schema command.
func NewSchemaCommand() *cobra.Command {
	opts := &SchemaOptions{}

	cmd := &cobra.Command{
		Use:   "schema <file>",
		Short: "Show a CSV's inferred columns and how each classifies",
		Long: `Show the inferred schema of a CSV input and the role each column
would play during normalization: Variable, a metric name, or excluded.`,
		Example: `  longform schema data/age.csv
  longform schema data/age.csv --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: table, json, csv, md (default from config)")

	return cmd
}

func runSchema(cmd *cobra.Command, path string, opts *SchemaOptions) error {
	cfg := config.Current()
	ctx := cmd.Context()

	ad, err := connectAdapter(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = ad.Close() }()

	name, err := source.Ingest(ctx, ad, path)
	if err != nil {
		return err
	}
	md, err := ad.TableMetadata(ctx, name)
	if err != nil {
		return err
	}

	rOpts := cfg.ReshapeOptions()
	out := table.New("Column", "Type", "Nullable", "Role")
	for i, col := range md.Columns {
		nullable := "NO"
		if col.Nullable {
			nullable = "YES"
		}
		_ = out.AppendRow(col.Name, col.Type, nullable, columnRole(col.Name, i, rOpts))
	}

	format := opts.Format
	if format == "" {
		format = cfg.Output
	}
	return renderTableAs(cmd.OutOrStdout(), out, format)
}

// columnRole reports how a column at position pos would classify.
func columnRole(name string, pos int, opts reshape.Options) string {
	if opts.VariableColumn != "" {
		if name == opts.VariableColumn {
			return "Variable"
		}
	} else if pos == 0 {
		return "Variable"
	}

	if metric := reshape.ClassifyColumn(name, opts); metric != "" {
		return metric
	}
	return "(excluded)"
}
