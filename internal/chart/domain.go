package chart

import "math"

// defaultDomain is the axis range when there is nothing to plot.
var defaultDomain = Domain{Min: 0, Max: 100}

// EstimateDomain computes value-axis bounds over the visible points with
// mode-specific padding. Smooth mode pads more generously on top and lets
// the lower bound dip below zero (down to -5) so curve overshoot has room;
// other modes never go negative. With no finite values the default
// percentage range {0, 100} is returned.
func EstimateDomain(visible []Point, keys []string, mode LineMode) Domain {
	var vals []float64
	for _, p := range visible {
		for _, k := range keys {
			if v, ok := p.Values[k]; ok && isFinite(v) {
				vals = append(vals, v)
			}
		}
	}
	if len(vals) == 0 {
		return defaultDomain
	}

	min, max := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if !isFinite(min) || !isFinite(max) {
		return defaultDomain
	}

	topMul := 0.1
	if mode == ModeSmooth {
		topMul = 0.2
	}

	var padTop, padBottom float64
	span := max - min
	switch {
	case span > 0:
		padTop = span * topMul
		padBottom = span * 0.1
	case max > 0:
		padTop = max * topMul
		padBottom = max * 0.1
	default:
		// All visible values are exactly zero: a fixed 1-unit margin
		// keeps the flat line off the chart edges.
		padTop = 1
		padBottom = 1
	}

	// Floor paddings so tiny spans still get a visible margin.
	if padTop < 1 {
		padTop = 1
	}
	if padBottom < 1 {
		padBottom = 1
	}

	maxDomain := max + padTop
	var minDomain float64
	if mode == ModeSmooth {
		minDomain = math.Max(-5, min-padBottom-5)
	} else {
		minDomain = math.Max(0, min-padBottom)
	}

	if !isFinite(maxDomain) {
		maxDomain = math.Max(max*1.2, 100)
	}
	if !isFinite(minDomain) {
		if mode == ModeSmooth {
			minDomain = -5
		} else {
			minDomain = 0
		}
	}

	return Domain{Min: minDomain, Max: maxDomain}
}
