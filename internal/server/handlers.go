package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/trend-goat/trend-goat/internal/chart"
	"github.com/trend-goat/trend-goat/internal/store"
)

type HealthResponse struct {
	Status           string `json:"status"`
	ExperimentsCount int    `json:"experiments_count"`
	DBSizeBytes      int64  `json:"db_size_bytes"`
	UptimeSeconds    int64  `json:"uptime_seconds"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := context.Background()

	experiments, err := s.store.ListExperiments(ctx)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var dbSize int64
	row := s.store.DB().QueryRow("SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()")
	row.Scan(&dbSize)

	response := HealthResponse{
		Status:           "ok",
		ExperimentsCount: len(experiments),
		DBSizeBytes:      dbSize,
		UptimeSeconds:    int64(time.Since(s.startTime).Seconds()),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ChartResponse is the payload a rendering consumer draws from: visible
// points plus the axis domain, along with the window they were cut from.
type ChartResponse struct {
	Experiment  string        `json:"experiment"`
	Granularity string        `json:"granularity"`
	Mode        string        `json:"mode"`
	Keys        []string      `json:"keys"`
	Points      []chart.Point `json:"points"`
	Window      chart.Range   `json:"window"`
	Full        bool          `json:"full"`
	Domain      chart.Domain  `json:"domain"`
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := r.URL.Query().Get("experiment")
	if name == "" {
		http.Error(w, "Missing experiment parameter", http.StatusBadRequest)
		return
	}

	granularity, err := chart.ParseGranularity(r.URL.Query().Get("granularity"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	mode, err := chart.ParseLineMode(r.URL.Query().Get("mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	zoom := parseFloatOr(r.URL.Query().Get("zoom"), 1)
	pan := parseFloatOr(r.URL.Query().Get("pan"), 0)

	ctx := r.Context()

	exp, err := s.store.GetExperiment(ctx, name)
	if err != nil {
		if err == store.ErrNotFound {
			http.Error(w, "Experiment not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	keys, err := selectKeys(exp, r.URL.Query().Get("variants"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	state := chart.ViewState{
		Keys:        keys,
		Granularity: granularity,
		Zoom:        chart.ClampZoom(zoom),
		Pan:         pan,
		Mode:        mode,
	}

	response, err := s.buildChartResponse(ctx, exp, state)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (s *Server) buildChartResponse(ctx context.Context, exp *store.Experiment, state chart.ViewState) (*ChartResponse, error) {
	records, err := s.store.DailySeries(ctx, exp.Name)
	if err != nil {
		return nil, err
	}

	view := chart.BuildView(records, state)

	return &ChartResponse{
		Experiment:  exp.Name,
		Granularity: string(state.Granularity),
		Mode:        string(state.Mode),
		Keys:        state.Keys,
		Points:      view.Points,
		Window:      view.Window,
		Full:        view.Full,
		Domain:      view.Domain,
	}, nil
}

// selectKeys resolves a comma-separated variant-key list against the
// experiment's variants, deduplicating and preserving order. An empty
// selection means all variants.
func selectKeys(exp *store.Experiment, raw string) ([]string, error) {
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
			return nil, &badKeyError{key: key}
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return keys, nil
}

type badKeyError struct{ key string }

func (e *badKeyError) Error() string {
	return "unknown variant key: " + e.key
}

// RecordRequest is one day's counts for one variant arm.
type RecordRequest struct {
	Experiment  string `json:"experiment"`
	Date        string `json:"date"`
	Variant     string `json:"variant"`
	Visits      int    `json:"visits"`
	Conversions int    `json:"conversions"`
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	// CORS headers so hosted pages can post counts directly
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.Experiment == "" || req.Date == "" || req.Variant == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}
	if req.Visits < 0 || req.Conversions < 0 {
		http.Error(w, "Counts must be non-negative", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	exp, err := s.store.GetExperiment(ctx, req.Experiment)
	if err != nil {
		if err == store.ErrNotFound {
			http.Error(w, "Experiment not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if _, ok := exp.VariantByKey(req.Variant); !ok {
		http.Error(w, "Unknown variant key", http.StatusBadRequest)
		return
	}

	if err := s.store.RecordDay(ctx, req.Experiment, req.Date, req.Variant, req.Visits, req.Conversions); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.broadcastChart(exp)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// experimentItem is the list DTO for /api/experiments.
type experimentItem struct {
	Name        string        `json:"name"`
	Variants    []variantItem `json:"variants"`
	Days        int           `json:"days"`
	Visits      int           `json:"visits"`
	Conversions int           `json:"conversions"`
	CreatedAt   string        `json:"created_at"`
}

type variantItem struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

func (s *Server) handleExperiments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	experiments, err := s.store.ListExperiments(ctx)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	items := make([]experimentItem, len(experiments))
	for i, exp := range experiments {
		totals, err := s.store.GetTotals(ctx, exp.Name)
		if err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		variants := make([]variantItem, len(exp.Variants))
		for j, v := range exp.Variants {
			variants[j] = variantItem{Key: v.Key(), Name: v.Name}
		}

		items[i] = experimentItem{
			Name:        exp.Name,
			Variants:    variants,
			Days:        totals.Days,
			Visits:      totals.Visits,
			Conversions: totals.Conversions,
			CreatedAt:   exp.CreatedAt.Format("2006-01-02"),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"experiments": items,
	})
}

func parseFloatOr(s string, fallback float64) float64 {
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}
