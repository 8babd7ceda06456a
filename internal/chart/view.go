package chart

import "fmt"

// ViewState is an immutable snapshot of the interaction state a consumer is
// rendering with. Passing it by value keeps the pipeline pure: the same
// records and state always produce the same view.
type ViewState struct {
	Keys        []string
	Granularity Granularity
	Zoom        float64
	Pan         float64
	Mode        LineMode
}

// View is the complete output handed to a rendering consumer: the visible
// points, the window they came from, and the value-axis domain over them.
type View struct {
	Points []Point
	Window Range
	Full   bool
	Domain Domain
}

// BuildView runs the full pipeline: series processing, windowing, and
// domain estimation. An empty series yields an empty view with the default
// domain and an empty window (End == -1).
func BuildView(records []RawRecord, state ViewState) View {
	points := BuildSeries(records, state.Keys, state.Granularity)
	if len(points) == 0 {
		return View{
			Points: []Point{},
			Window: Range{Start: 0, End: -1},
			Full:   true,
			Domain: EstimateDomain(nil, state.Keys, state.Mode),
		}
	}

	window, full := VisibleRange(len(points), state.Zoom, state.Pan)
	visible := points
	if !full {
		visible = points[window.Start : window.End+1]
	}

	return View{
		Points: visible,
		Window: window,
		Full:   full,
		Domain: EstimateDomain(visible, state.Keys, state.Mode),
	}
}

// ClampZoom saturates a zoom factor into the accepted [MinZoom, MaxZoom]
// range.
func ClampZoom(zoom float64) float64 {
	if !isFinite(zoom) || zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}

// ParseGranularity validates a user-supplied granularity string. An empty
// string defaults to day.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityDay, GranularityWeek:
		return Granularity(s), nil
	case "":
		return GranularityDay, nil
	}
	return "", fmt.Errorf("invalid granularity: %q (want day or week)", s)
}

// ParseLineMode validates a user-supplied line mode string. An empty string
// defaults to line.
func ParseLineMode(s string) (LineMode, error) {
	switch LineMode(s) {
	case ModeLine, ModeSmooth, ModeArea:
		return LineMode(s), nil
	case "":
		return ModeLine, nil
	}
	return "", fmt.Errorf("invalid mode: %q (want line, smooth or area)", s)
}
