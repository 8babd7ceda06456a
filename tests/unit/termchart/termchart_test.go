package termchart_test

import (
	"strings"
	"testing"

	"github.com/trend-goat/trend-goat/internal/chart"
	"github.com/trend-goat/trend-goat/internal/termchart"
)

func samplePoints() []chart.Point {
	return []chart.Point{
		{Date: "2024-01-01", Values: map[string]float64{"0": 10}},
		{Date: "2024-01-02", Values: map[string]float64{"0": 20}},
		{Date: "2024-01-03", Values: map[string]float64{"0": 30}},
	}
}

func TestRender_ContainsTitleAndDates(t *testing.T) {
	out := termchart.Render(samplePoints(), []string{"0"}, map[string]string{"0": "Control (0)"}, chart.Domain{Min: 0, Max: 40}, 60, 5)

	if !strings.Contains(out, "Control (0)") {
		t.Error("expected panel title in output")
	}
	if !strings.Contains(out, "2024-01-01") {
		t.Error("expected first date in footer")
	}
	if !strings.Contains(out, "2024-01-03") {
		t.Error("expected last date in footer")
	}
}

func TestRender_AxisLabelsFromDomain(t *testing.T) {
	out := termchart.Render(samplePoints(), []string{"0"}, nil, chart.Domain{Min: 8, Max: 32}, 60, 5)

	if !strings.Contains(out, "32.00%") {
		t.Error("expected max label 32.00%")
	}
	if !strings.Contains(out, "8.00%") {
		t.Error("expected min label 8.00%")
	}
}

func TestRender_OnePanelPerKey(t *testing.T) {
	points := []chart.Point{
		{Date: "2024-01-01", Values: map[string]float64{"0": 10, "1": 20}},
	}

	out := termchart.Render(points, []string{"0", "1"}, nil, chart.Domain{Min: 0, Max: 30}, 60, 4)

	// Panels are separated by a blank line
	if got := strings.Count(out, "\n\n"); got != 1 {
		t.Errorf("expected 2 panels (1 separator), got %d separators", got)
	}
}

func TestRender_EmptyPoints(t *testing.T) {
	out := termchart.Render(nil, []string{"0"}, nil, chart.Domain{Min: 0, Max: 100}, 40, 4)

	if out == "" {
		t.Error("expected placeholder output for empty points")
	}
	lines := strings.Split(out, "\n")
	// Title plus height blank rows
	if len(lines) != 5 {
		t.Errorf("expected 5 lines, got %d", len(lines))
	}
}

func TestRender_MissingNameFallsBackToKey(t *testing.T) {
	out := termchart.Render(samplePoints(), []string{"0"}, nil, chart.Domain{Min: 0, Max: 40}, 60, 4)

	if !strings.HasPrefix(out, "0\n") {
		t.Errorf("expected panel title to fall back to the key, got %q", strings.SplitN(out, "\n", 2)[0])
	}
}
