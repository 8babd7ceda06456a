package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/trend-goat/trend-goat/internal/chart"
	"github.com/trend-goat/trend-goat/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all experiments",
	Long:  `List all experiments with their recorded totals and overall conversion rate.`,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	return withStore(func(s *store.SQLiteStore) error {
		ctx := context.Background()

		experiments, err := s.ListExperiments(ctx)
		if err != nil {
			return fmt.Errorf("failed to list experiments: %w", err)
		}

		if len(experiments) == 0 {
			fmt.Println("No experiments yet.")
			fmt.Println()
			fmt.Println("Create one and seed it with demo data:")
			fmt.Println("  tg create hero --variants \"Control,Challenger\"")
			fmt.Println("  tg seed hero")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tVARIANTS\tDAYS\tVISITS\tCONVERSIONS\tRATE\tCREATED")

		for _, exp := range experiments {
			totals, err := s.GetTotals(ctx, exp.Name)
			if err != nil {
				return fmt.Errorf("failed to get totals for %s: %w", exp.Name, err)
			}

			rate := chart.Rate(float64(totals.Conversions), float64(totals.Visits))

			fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%.2f%%\t%s\n",
				exp.Name,
				len(exp.Variants),
				totals.Days,
				formatNumber(totals.Visits),
				formatNumber(totals.Conversions),
				rate,
				exp.CreatedAt.Format("2006-01-02"),
			)
		}

		w.Flush()
		return nil
	})
}

func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%d,%03d", n/1000, n%1000)
	}
	return fmt.Sprintf("%d,%03d,%03d", n/1000000, (n/1000)%1000, n%1000)
}
