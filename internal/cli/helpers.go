package cli

import (
	"context"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/trend-goat/trend-goat/internal/store"
)

// withStore opens the database, executes the function, and handles cleanup.
func withStore(fn func(*store.SQLiteStore) error) error {
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer s.Close()

	return fn(s)
}

// resolveExperiment returns the named experiment, or prompts for one when
// no name was given.
func resolveExperiment(ctx context.Context, s *store.SQLiteStore, name string) (*store.Experiment, error) {
	if name != "" {
		exp, err := s.GetExperiment(ctx, name)
		if err != nil {
			if err == store.ErrNotFound {
				return nil, fmt.Errorf("experiment '%s' not found", name)
			}
			return nil, fmt.Errorf("failed to get experiment: %w", err)
		}
		return exp, nil
	}

	experiments, err := s.ListExperiments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiments: %w", err)
	}
	if len(experiments) == 0 {
		return nil, fmt.Errorf("no experiments yet; create one with 'tg create'")
	}

	names := make([]string, len(experiments))
	for i, exp := range experiments {
		names[i] = exp.Name
	}

	prompt := promptui.Select{
		Label: "Select experiment",
		Items: names,
	}
	idx, _, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrInterrupt {
			return nil, fmt.Errorf("cancelled")
		}
		return nil, err
	}

	return experiments[idx], nil
}
