package testutil

import (
	"context"
	"testing"

	"github.com/trend-goat/trend-goat/internal/store"
)

// SetupTestStore creates a test database and returns the store with a cleanup function.
// Uses t.TempDir() for automatic cleanup on test completion.
func SetupTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := tmpDir + "/test.db"

	s, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

// SeedDays records the given per-day counts for one variant key.
// counts[i] is {visits, conversions} for day dates[i].
func SeedDays(t *testing.T, s *store.SQLiteStore, experiment, variantKey string, dates []string, counts [][2]int) {
	t.Helper()

	ctx := context.Background()
	for i, date := range dates {
		if err := s.RecordDay(ctx, experiment, date, variantKey, counts[i][0], counts[i][1]); err != nil {
			t.Fatalf("failed to seed day %s: %v", date, err)
		}
	}
}
