package chart_test

import (
	"math"
	"testing"

	"github.com/trend-goat/trend-goat/internal/chart"
)

func pointsWithValues(values ...float64) []chart.Point {
	points := make([]chart.Point, len(values))
	for i, v := range values {
		points[i] = chart.Point{
			Date:   "2024-01-01",
			Values: map[string]float64{"0": v},
		}
	}
	return points
}

func TestEstimateDomain_LineMode(t *testing.T) {
	points := pointsWithValues(10, 20, 30)

	d := chart.EstimateDomain(points, []string{"0"}, chart.ModeLine)

	// span 20: top pad 2, bottom pad 2
	if d.Min != 8 {
		t.Errorf("expected min 8, got %v", d.Min)
	}
	if d.Max != 32 {
		t.Errorf("expected max 32, got %v", d.Max)
	}
}

func TestEstimateDomain_SmoothMode(t *testing.T) {
	points := pointsWithValues(10, 20, 30)

	d := chart.EstimateDomain(points, []string{"0"}, chart.ModeSmooth)

	// span 20: top pad 4 (20%), bottom pad 2 plus the 5-unit sag allowance
	if d.Max != 34 {
		t.Errorf("expected max 34, got %v", d.Max)
	}
	if d.Min != 3 {
		t.Errorf("expected min 3, got %v", d.Min)
	}
}

func TestEstimateDomain_SmoothModeFloorsAtMinus5(t *testing.T) {
	points := pointsWithValues(0.5, 1)

	d := chart.EstimateDomain(points, []string{"0"}, chart.ModeSmooth)

	if d.Min != -5 {
		t.Errorf("expected min floored at -5, got %v", d.Min)
	}
}

func TestEstimateDomain_NonSmoothNeverNegative(t *testing.T) {
	points := pointsWithValues(0.5, 1)

	for _, mode := range []chart.LineMode{chart.ModeLine, chart.ModeArea} {
		d := chart.EstimateDomain(points, []string{"0"}, mode)
		if d.Min < 0 {
			t.Errorf("mode %s: expected non-negative min, got %v", mode, d.Min)
		}
	}
}

func TestEstimateDomain_NoValuesDefaults(t *testing.T) {
	cases := [][]chart.Point{
		nil,
		{},
		{{Date: "2024-01-01", Values: map[string]float64{"other": 50}}},
	}

	for i, points := range cases {
		d := chart.EstimateDomain(points, []string{"0"}, chart.ModeLine)
		if d.Min != 0 || d.Max != 100 {
			t.Errorf("case %d: expected default {0, 100}, got {%v, %v}", i, d.Min, d.Max)
		}
	}
}

func TestEstimateDomain_IgnoresNonFiniteValues(t *testing.T) {
	points := []chart.Point{
		{Date: "2024-01-01", Values: map[string]float64{"0": math.NaN()}},
		{Date: "2024-01-02", Values: map[string]float64{"0": math.Inf(1)}},
	}

	d := chart.EstimateDomain(points, []string{"0"}, chart.ModeLine)

	if d.Min != 0 || d.Max != 100 {
		t.Errorf("expected default {0, 100} when only degenerate values exist, got {%v, %v}", d.Min, d.Max)
	}
}

func TestEstimateDomain_AllZero(t *testing.T) {
	points := pointsWithValues(0, 0, 0)

	d := chart.EstimateDomain(points, []string{"0"}, chart.ModeLine)

	// Flat zero series pads by a fixed 1 on top, floored at 0 below
	if d.Min != 0 {
		t.Errorf("expected min 0, got %v", d.Min)
	}
	if d.Max != 1 {
		t.Errorf("expected max 1, got %v", d.Max)
	}
}

func TestEstimateDomain_AllZeroSmooth(t *testing.T) {
	points := pointsWithValues(0, 0, 0)

	d := chart.EstimateDomain(points, []string{"0"}, chart.ModeSmooth)

	if d.Min != -5 {
		t.Errorf("expected min -5, got %v", d.Min)
	}
	if d.Max != 1 {
		t.Errorf("expected max 1, got %v", d.Max)
	}
}

func TestEstimateDomain_FlatNonZero(t *testing.T) {
	points := pointsWithValues(50, 50)

	d := chart.EstimateDomain(points, []string{"0"}, chart.ModeLine)

	// Zero span with max 50: pads are 10% of max
	if d.Min != 45 {
		t.Errorf("expected min 45, got %v", d.Min)
	}
	if d.Max != 55 {
		t.Errorf("expected max 55, got %v", d.Max)
	}
}

func TestEstimateDomain_TinyRangePadsAtLeastOne(t *testing.T) {
	points := pointsWithValues(10, 10.1)

	d := chart.EstimateDomain(points, []string{"0"}, chart.ModeLine)

	if d.Max < 11.1 {
		t.Errorf("expected top padding floored at 1 (max >= 11.1), got %v", d.Max)
	}
	if d.Min > 9 {
		t.Errorf("expected bottom padding floored at 1 (min <= 9), got %v", d.Min)
	}
}

func TestEstimateDomain_MinLessOrEqualMax(t *testing.T) {
	cases := [][]float64{{0}, {100}, {1, 2, 3}, {0, 0}, {99.99, 100.01}}

	for _, vals := range cases {
		for _, mode := range []chart.LineMode{chart.ModeLine, chart.ModeSmooth, chart.ModeArea} {
			d := chart.EstimateDomain(pointsWithValues(vals...), []string{"0"}, mode)
			if d.Min > d.Max {
				t.Errorf("mode %s values %v: min %v > max %v", mode, vals, d.Min, d.Max)
			}
			if math.IsNaN(d.Min) || math.IsNaN(d.Max) || math.IsInf(d.Min, 0) || math.IsInf(d.Max, 0) {
				t.Errorf("mode %s values %v: non-finite domain {%v, %v}", mode, vals, d.Min, d.Max)
			}
		}
	}
}
