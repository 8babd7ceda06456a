package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/trend-goat/trend-goat/internal/store"
)

func init() {
	rootCmd.AddCommand(newCreateCmd())
}

func newCreateCmd() *cobra.Command {
	var variants string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new experiment",
		Long: `Create a new experiment with the specified name and variant arms.
Variant keys are assigned in order, starting at 0 (the control).

Examples:
  tg create hero --variants "Control,Challenger"
  tg create pricing --variants "Monthly,Annual,Lifetime"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if variants == "" {
				prompt := promptui.Prompt{
					Label: "Variant names (comma-separated)",
				}
				entered, err := prompt.Run()
				if err != nil {
					if err == promptui.ErrInterrupt {
						return fmt.Errorf("cancelled")
					}
					return err
				}
				variants = entered
			}

			variantList := strings.Split(variants, ",")
			for i := range variantList {
				variantList[i] = strings.TrimSpace(variantList[i])
			}

			if len(variantList) < 2 {
				return fmt.Errorf("need at least 2 variants. Example: --variants \"Control,Challenger\"")
			}

			return withStore(func(s *store.SQLiteStore) error {
				ctx := context.Background()

				exp, err := s.CreateExperiment(ctx, name, variantList)
				if err != nil {
					return fmt.Errorf("failed to create experiment: %w", err)
				}

				fmt.Printf("Created experiment '%s' with %d variants:\n", exp.Name, len(exp.Variants))
				for _, v := range exp.Variants {
					fmt.Printf("  %s: %s\n", v.Key(), v.Name)
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&variants, "variants", "v", "", "comma-separated variant names")

	return cmd
}
