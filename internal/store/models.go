package store

import (
	"time"

	"github.com/trend-goat/trend-goat/internal/chart"
)

// Experiment is a tracked A/B experiment with its variant arms.
type Experiment struct {
	ID        int64
	Name      string
	Variants  []chart.Variant // Decoded from JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VariantByKey returns the variant with the given series key.
func (e *Experiment) VariantByKey(key string) (chart.Variant, bool) {
	for _, v := range e.Variants {
		if v.Key() == key {
			return v, true
		}
	}
	return chart.Variant{}, false
}

// Keys returns the series keys of all variants, in variant order.
func (e *Experiment) Keys() []string {
	keys := make([]string, len(e.Variants))
	for i, v := range e.Variants {
		keys[i] = v.Key()
	}
	return keys
}

// Totals summarizes an experiment's recorded data.
type Totals struct {
	Days        int
	Visits      int
	Conversions int
}
