package store

import (
	"context"

	"github.com/trend-goat/trend-goat/internal/chart"
)

// Store defines the interface for experiment storage operations
type Store interface {
	// Experiment operations
	CreateExperiment(ctx context.Context, name string, variantNames []string) (*Experiment, error)
	GetExperiment(ctx context.Context, name string) (*Experiment, error)
	ListExperiments(ctx context.Context) ([]*Experiment, error)
	DeleteExperiment(ctx context.Context, name string) error

	// Daily count operations
	RecordDay(ctx context.Context, experiment, date, variantKey string, visits, conversions int) error
	DailySeries(ctx context.Context, experiment string) ([]chart.RawRecord, error)
	GetTotals(ctx context.Context, experiment string) (Totals, error)

	// Lifecycle
	Close() error
}
