package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trend-goat/trend-goat/internal/store"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete an experiment and its recorded counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		return withStore(func(s *store.SQLiteStore) error {
			ctx := context.Background()

			if err := s.DeleteExperiment(ctx, name); err != nil {
				if err == store.ErrNotFound {
					return fmt.Errorf("experiment '%s' not found", name)
				}
				return fmt.Errorf("failed to delete experiment: %w", err)
			}

			fmt.Printf("Deleted experiment '%s'.\n", name)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
