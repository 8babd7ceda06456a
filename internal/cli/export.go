package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/trend-goat/trend-goat/internal/chart"
	"github.com/trend-goat/trend-goat/internal/store"
)

func init() {
	rootCmd.AddCommand(newExportCmd())
}

func newExportCmd() *cobra.Command {
	var (
		format      string
		variants    string
		granularity string
	)

	cmd := &cobra.Command{
		Use:   "export [name]",
		Short: "Export the processed rate series",
		Long: `Export the processed conversion-rate series in CSV or JSON format.

Examples:
  tg export hero --format csv > hero-rates.csv
  tg export hero --granularity week --format json > hero-weekly.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}

			if format != "csv" && format != "json" {
				return fmt.Errorf("invalid format: must be 'csv' or 'json'")
			}

			g, err := chart.ParseGranularity(granularity)
			if err != nil {
				return err
			}

			return withStore(func(s *store.SQLiteStore) error {
				ctx := context.Background()

				exp, err := resolveExperiment(ctx, s, name)
				if err != nil {
					return err
				}

				keys, err := selectVariantKeys(exp, variants)
				if err != nil {
					return err
				}

				records, err := s.DailySeries(ctx, exp.Name)
				if err != nil {
					return fmt.Errorf("failed to load series: %w", err)
				}

				points := chart.BuildSeries(records, keys, g)

				if format == "csv" {
					return exportCSV(points, keys)
				}
				return exportJSON(exp.Name, string(g), points)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format (csv or json)")
	cmd.Flags().StringVarP(&variants, "variants", "v", "", "comma-separated variant keys (default all)")
	cmd.Flags().StringVarP(&granularity, "granularity", "g", "day", "bucket granularity (day or week)")

	return cmd
}

func exportCSV(points []chart.Point, keys []string) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := append([]string{"date"}, keys...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, p := range points {
		row := make([]string, 0, len(keys)+1)
		row = append(row, p.Date)
		for _, k := range keys {
			row = append(row, strconv.FormatFloat(p.Values[k], 'f', 2, 64))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return nil
}

type jsonExport struct {
	Experiment  string        `json:"experiment"`
	Granularity string        `json:"granularity"`
	Points      []chart.Point `json:"points"`
}

func exportJSON(experiment, granularity string, points []chart.Point) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(jsonExport{
		Experiment:  experiment,
		Granularity: granularity,
		Points:      points,
	})
}
