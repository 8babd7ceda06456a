package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/trend-goat/trend-goat/internal/chart"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("not found")

type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS experiments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT UNIQUE NOT NULL,
    variants TEXT NOT NULL,
    created_at INTEGER NOT NULL DEFAULT (unixepoch()),
    updated_at INTEGER NOT NULL DEFAULT (unixepoch())
);

CREATE INDEX IF NOT EXISTS idx_experiments_name ON experiments(name);

CREATE TABLE IF NOT EXISTS daily_stats (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    experiment_name TEXT NOT NULL,
    date TEXT NOT NULL,
    variant_key TEXT NOT NULL,
    visits INTEGER NOT NULL DEFAULT 0,
    conversions INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (experiment_name) REFERENCES experiments(name)
);

CREATE INDEX IF NOT EXISTS idx_daily_experiment ON daily_stats(experiment_name);
CREATE INDEX IF NOT EXISTS idx_daily_experiment_date ON daily_stats(experiment_name, date);
CREATE UNIQUE INDEX IF NOT EXISTS idx_daily_dedup ON daily_stats(experiment_name, date, variant_key);
`

// variantJSON is the persisted shape of a variant arm.
type variantJSON struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func Open(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Apply schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateExperiment(ctx context.Context, name string, variantNames []string) (*Experiment, error) {
	encoded := make([]variantJSON, len(variantNames))
	for i, n := range variantNames {
		encoded[i] = variantJSON{ID: i, Name: n}
	}
	variantsJSON, err := json.Marshal(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal variants: %w", err)
	}

	now := time.Now().Unix()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO experiments (name, variants, created_at, updated_at)
		 VALUES (?, ?, ?, ?)`,
		name, string(variantsJSON), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert experiment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return &Experiment{
		ID:        id,
		Name:      name,
		Variants:  decodeVariants(encoded),
		CreatedAt: time.Unix(now, 0),
		UpdatedAt: time.Unix(now, 0),
	}, nil
}

func (s *SQLiteStore) GetExperiment(ctx context.Context, name string) (*Experiment, error) {
	var exp Experiment
	var variantsJSON string
	var createdAt, updatedAt int64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, variants, created_at, updated_at
		 FROM experiments WHERE name = ?`, name,
	).Scan(&exp.ID, &exp.Name, &variantsJSON, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get experiment: %w", err)
	}

	exp.Variants, err = unmarshalVariants(variantsJSON)
	if err != nil {
		return nil, err
	}

	exp.CreatedAt = time.Unix(createdAt, 0)
	exp.UpdatedAt = time.Unix(updatedAt, 0)

	return &exp, nil
}

func (s *SQLiteStore) ListExperiments(ctx context.Context) ([]*Experiment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, variants, created_at, updated_at
		 FROM experiments ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiments: %w", err)
	}
	defer rows.Close()

	var experiments []*Experiment
	for rows.Next() {
		var exp Experiment
		var variantsJSON string
		var createdAt, updatedAt int64

		err := rows.Scan(&exp.ID, &exp.Name, &variantsJSON, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan experiment: %w", err)
		}

		exp.Variants, err = unmarshalVariants(variantsJSON)
		if err != nil {
			return nil, err
		}

		exp.CreatedAt = time.Unix(createdAt, 0)
		exp.UpdatedAt = time.Unix(updatedAt, 0)

		experiments = append(experiments, &exp)
	}

	return experiments, nil
}

func (s *SQLiteStore) DeleteExperiment(ctx context.Context, name string) error {
	// First delete related daily counts
	_, err := s.db.ExecContext(ctx, `DELETE FROM daily_stats WHERE experiment_name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete daily stats: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM experiments WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete experiment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// RecordDay accumulates counts for one (experiment, date, variant key)
// cell. Repeated calls add to the stored counts via upsert.
func (s *SQLiteStore) RecordDay(ctx context.Context, experiment, date, variantKey string, visits, conversions int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO daily_stats (experiment_name, date, variant_key, visits, conversions)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(experiment_name, date, variant_key)
		 DO UPDATE SET visits = visits + excluded.visits,
		               conversions = conversions + excluded.conversions`,
		experiment, date, variantKey, visits, conversions,
	)
	if err != nil {
		return fmt.Errorf("failed to record day: %w", err)
	}

	return nil
}

// DailySeries returns one RawRecord per recorded date, in date order, with
// per-variant visit and conversion counts folded into the record's maps.
func (s *SQLiteStore) DailySeries(ctx context.Context, experiment string) ([]chart.RawRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, variant_key, visits, conversions
		 FROM daily_stats WHERE experiment_name = ?
		 ORDER BY date, variant_key`,
		experiment,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily series: %w", err)
	}
	defer rows.Close()

	var records []chart.RawRecord
	for rows.Next() {
		var date, key string
		var visits, conversions int
		if err := rows.Scan(&date, &key, &visits, &conversions); err != nil {
			return nil, fmt.Errorf("failed to scan daily stats: %w", err)
		}

		if len(records) == 0 || records[len(records)-1].Date != date {
			records = append(records, chart.RawRecord{
				Date:        date,
				Visits:      make(map[string]int),
				Conversions: make(map[string]int),
			})
		}
		rec := &records[len(records)-1]
		rec.Visits[key] = visits
		rec.Conversions[key] = conversions
	}

	return records, nil
}

func (s *SQLiteStore) GetTotals(ctx context.Context, experiment string) (Totals, error) {
	var t Totals
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(DISTINCT date),
			COALESCE(SUM(visits), 0),
			COALESCE(SUM(conversions), 0)
		FROM daily_stats
		WHERE experiment_name = ?
	`, experiment).Scan(&t.Days, &t.Visits, &t.Conversions)
	if err != nil {
		return Totals{}, fmt.Errorf("failed to get totals: %w", err)
	}

	return t, nil
}

// DB returns the underlying database connection for health checks
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

func unmarshalVariants(raw string) ([]chart.Variant, error) {
	var encoded []variantJSON
	if err := json.Unmarshal([]byte(raw), &encoded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal variants: %w", err)
	}
	return decodeVariants(encoded), nil
}

func decodeVariants(encoded []variantJSON) []chart.Variant {
	variants := make([]chart.Variant, len(encoded))
	for i, v := range encoded {
		id := v.ID
		variants[i] = chart.Variant{ID: &id, Name: v.Name}
	}
	return variants
}
