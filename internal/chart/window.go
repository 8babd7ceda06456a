package chart

import "math"

// Zoom bounds accepted from consumers. A zoom of 1 shows the whole series.
const (
	MinZoom = 1.0
	MaxZoom = 5.0
)

// VisibleRange computes the inclusive index window of a series under a zoom
// factor and pan offset. The second return is true when no windowing applies
// (zoom at or below 1) and the caller should use the whole series.
//
// Pan is an unconstrained real (pixel-derived upstream); it is clamped here,
// saturating at either edge rather than wrapping. For any seriesLength > 0
// the returned range satisfies 0 <= Start <= End <= seriesLength-1. An empty
// series is degenerate: callers must handle it before estimating a domain.
func VisibleRange(seriesLength int, zoom, pan float64) (Range, bool) {
	if zoom <= MinZoom {
		return Range{Start: 0, End: seriesLength - 1}, true
	}

	visible := int(math.Floor(float64(seriesLength) / zoom))
	if visible < 1 {
		visible = 1
	}

	maxOffset := seriesLength - visible
	if maxOffset < 0 {
		maxOffset = 0
	}

	offset := math.Min(math.Max(pan, 0), float64(maxOffset))
	start := int(math.Floor(offset))

	end := start + visible - 1
	if end > seriesLength-1 {
		end = seriesLength - 1
	}

	return Range{Start: start, End: end}, false
}
