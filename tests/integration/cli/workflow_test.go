package cli_test

import (
	"context"
	"strings"
	"testing"

	"github.com/trend-goat/trend-goat/internal/chart"
	"github.com/trend-goat/trend-goat/internal/termchart"
	"github.com/trend-goat/trend-goat/tests/testutil"
)

// Exercises the create → record → chart flow the CLI wires together.
func TestWorkflow_CreateRecordChart(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()

	exp, err := s.CreateExperiment(ctx, "hero", []string{"Control", "Challenger"})
	if err != nil {
		t.Fatalf("CreateExperiment failed: %v", err)
	}

	testutil.SeedDays(t, s, "hero", "0",
		[]string{"2024-01-01", "2024-01-02", "2024-01-03"},
		[][2]int{{100, 10}, {100, 20}, {100, 30}})
	testutil.SeedDays(t, s, "hero", "1",
		[]string{"2024-01-01", "2024-01-02", "2024-01-03"},
		[][2]int{{100, 15}, {100, 25}, {100, 35}})

	records, err := s.DailySeries(ctx, "hero")
	if err != nil {
		t.Fatalf("DailySeries failed: %v", err)
	}

	view := chart.BuildView(records, chart.ViewState{
		Keys:        exp.Keys(),
		Granularity: chart.GranularityDay,
		Zoom:        1,
		Mode:        chart.ModeLine,
	})

	if len(view.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(view.Points))
	}
	if view.Points[1].Values["1"] != 25 {
		t.Errorf("expected rate 25 for variant 1 on day two, got %v", view.Points[1].Values["1"])
	}

	// Domain spans both variants: values 10..35, span 25, pads 2.5
	if view.Domain.Min != 7.5 || view.Domain.Max != 37.5 {
		t.Errorf("expected domain {7.5, 37.5}, got {%v, %v}", view.Domain.Min, view.Domain.Max)
	}

	out := termchart.Render(view.Points, exp.Keys(), map[string]string{"0": "Control", "1": "Challenger"}, view.Domain, 60, 5)
	if !strings.Contains(out, "Control") || !strings.Contains(out, "Challenger") {
		t.Error("expected a panel per variant in the rendered chart")
	}
}

// Weekly export view: the same pipeline the export command runs.
func TestWorkflow_WeeklyExportSeries(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()

	exp, err := s.CreateExperiment(ctx, "hero", []string{"Control", "Challenger"})
	if err != nil {
		t.Fatalf("CreateExperiment failed: %v", err)
	}

	dates := []string{
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05",
		"2024-01-06", "2024-01-07", "2024-01-08", "2024-01-09", "2024-01-10",
	}
	counts := make([][2]int, len(dates))
	for i := range counts {
		counts[i] = [2]int{100, 10}
	}
	testutil.SeedDays(t, s, "hero", "0", dates, counts)

	records, err := s.DailySeries(ctx, "hero")
	if err != nil {
		t.Fatalf("DailySeries failed: %v", err)
	}

	points := chart.BuildSeries(records, exp.Keys(), chart.GranularityWeek)
	if len(points) != 2 {
		t.Fatalf("expected 2 weekly points, got %d", len(points))
	}
	if points[0].Date != "2024-01-01 - 2024-01-07" {
		t.Errorf("unexpected first week label: %s", points[0].Date)
	}
}
