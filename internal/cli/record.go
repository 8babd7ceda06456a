package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/trend-goat/trend-goat/internal/store"
)

func init() {
	rootCmd.AddCommand(newRecordCmd())
}

func newRecordCmd() *cobra.Command {
	var (
		date        string
		variant     string
		visits      int
		conversions int
	)

	cmd := &cobra.Command{
		Use:   "record <name>",
		Short: "Record a day's counts for a variant",
		Long: `Record visit and conversion counts for one variant on one day.
Counts accumulate: recording the same day twice adds to the stored totals.

Examples:
  tg record hero --variant 0 --date 2024-01-01 --visits 200 --conversions 50
  tg record hero --variant 1 --visits 180 --conversions 61`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if visits < 0 || conversions < 0 {
				return fmt.Errorf("counts must be non-negative")
			}

			if date == "" {
				date = time.Now().Format("2006-01-02")
			}
			if _, err := time.Parse("2006-01-02", date); err != nil {
				return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
			}

			return withStore(func(s *store.SQLiteStore) error {
				ctx := context.Background()

				exp, err := s.GetExperiment(ctx, name)
				if err != nil {
					if err == store.ErrNotFound {
						return fmt.Errorf("experiment '%s' not found", name)
					}
					return fmt.Errorf("failed to get experiment: %w", err)
				}

				v, ok := exp.VariantByKey(variant)
				if !ok {
					return fmt.Errorf("unknown variant key %q (experiment has keys 0-%d)", variant, len(exp.Variants)-1)
				}

				if err := s.RecordDay(ctx, name, date, variant, visits, conversions); err != nil {
					return fmt.Errorf("failed to record counts: %w", err)
				}

				fmt.Printf("Recorded %s for '%s' / %s (\"%s\"): +%d visits, +%d conversions\n",
					date, name, variant, v.Name, visits, conversions)

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&variant, "variant", "v", "", "variant key (required)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "date YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&visits, "visits", 0, "visit count to add")
	cmd.Flags().IntVar(&conversions, "conversions", 0, "conversion count to add")
	cmd.MarkFlagRequired("variant")

	return cmd
}
