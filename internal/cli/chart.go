package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/trend-goat/trend-goat/internal/chart"
	"github.com/trend-goat/trend-goat/internal/store"
	"github.com/trend-goat/trend-goat/internal/termchart"
)

func init() {
	rootCmd.AddCommand(newChartCmd())
}

func newChartCmd() *cobra.Command {
	var (
		variants    string
		granularity string
		mode        string
		zoom        float64
		pan         float64
		width       int
		height      int
	)

	cmd := &cobra.Command{
		Use:   "chart [name]",
		Short: "Render a conversion-rate chart in the terminal",
		Long: `Render the conversion-rate trend of an experiment as block-character
panels, one per variant. Without a name, prompts to pick an experiment.

Examples:
  tg chart hero
  tg chart hero --granularity week --variants 0,1
  tg chart hero --zoom 2 --pan 10 --mode smooth`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}

			g, err := chart.ParseGranularity(granularity)
			if err != nil {
				return err
			}
			m, err := chart.ParseLineMode(mode)
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

				view := chart.BuildView(records, chart.ViewState{
					Keys:        keys,
					Granularity: g,
					Zoom:        chart.ClampZoom(zoom),
					Pan:         pan,
					Mode:        m,
				})

				if len(view.Points) == 0 {
					fmt.Printf("No data recorded for '%s' yet. Try: tg seed %s\n", exp.Name, exp.Name)
					return nil
				}

				names := make(map[string]string, len(exp.Variants))
				for _, v := range exp.Variants {
					names[v.Key()] = fmt.Sprintf("%s (%s)", v.Name, v.Key())
				}

				fmt.Printf("EXPERIMENT: %s  (%s", exp.Name, g)
				if !view.Full {
					fmt.Printf(", window %d-%d", view.Window.Start, view.Window.End)
				}
				fmt.Println(")")
				fmt.Println()
				fmt.Println(termchart.Render(view.Points, keys, names, view.Domain, width, height))

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&variants, "variants", "v", "", "comma-separated variant keys (default all)")
	cmd.Flags().StringVarP(&granularity, "granularity", "g", "day", "bucket granularity (day or week)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "line", "line style for axis padding (line, smooth or area)")
	cmd.Flags().Float64Var(&zoom, "zoom", 1, "zoom factor, 1-5")
	cmd.Flags().Float64Var(&pan, "pan", 0, "pan offset into the zoomed series")
	cmd.Flags().IntVar(&width, "width", 72, "chart width in characters")
	cmd.Flags().IntVar(&height, "height", 6, "chart height in rows per variant")

	return cmd
}

// selectVariantKeys resolves a comma-separated key list against the
// experiment, deduplicating and preserving order. Empty means all.
func selectVariantKeys(exp *store.Experiment, raw string) ([]string, error) {
	if raw == "" {
		return exp.Keys(), nil
	}

	seen := make(map[string]bool)
	var keys []string
	for _, part := range strings.Split(raw, ",") {
		key := strings.TrimSpace(part)
		if key == "" || seen[key] {
			continue
		}
		if _, ok := exp.VariantByKey(key); !ok {
			return nil, fmt.Errorf("unknown variant key %q", key)
		}
		seen[key] = true
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return exp.Keys(), nil
	}
	return keys, nil
}
