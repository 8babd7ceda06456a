// Package termchart renders conversion-rate series as block-character
// panels for terminal output.
package termchart

import (
	"fmt"
	"strings"

	"github.com/trend-goat/trend-goat/internal/chart"
)

// blocks are block characters from empty to full, used for rendering the
// chart area. Index 0 is empty (space), index 8 is full block.
var blocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

const labelWidth = 9 // e.g. " 12.34% "

// Render draws one panel per series key. All panels share the given axis
// domain so their bars are directly comparable. names maps a key to its
// display name; a missing entry falls back to the key itself.
func Render(points []chart.Point, keys []string, names map[string]string, domain chart.Domain, width, height int) string {
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	var panels []string
	for _, key := range keys {
		name := names[key]
		if name == "" {
			name = key
		}
		panels = append(panels, renderPanel(points, key, name, domain, width, height))
	}
	return strings.Join(panels, "\n\n")
}

func renderPanel(points []chart.Point, key, title string, domain chart.Domain, width, height int) string {
	chartWidth := width - labelWidth
	if chartWidth < 2 {
		chartWidth = 2
	}

	var lines []string
	lines = append(lines, title)

	if len(points) == 0 {
		for i := 0; i < height; i++ {
			lines = append(lines, strings.Repeat(" ", width))
		}
		return strings.Join(lines, "\n")
	}

	// Trim to the most recent columns that fit
	if len(points) > chartWidth {
		points = points[len(points)-chartWidth:]
	}

	span := domain.Max - domain.Min
	if span <= 0 {
		span = 1
	}

	// Per-column fill level in eighths of a row
	levels := make([]int, len(points))
	for i, p := range points {
		v := p.Values[key]
		frac := (v - domain.Min) / span
		if frac < 0 {
			frac = 0
		}
		if frac > 1 {
			frac = 1
		}
		levels[i] = int(frac * float64(height*8))
	}

	for row := height - 1; row >= 0; row-- {
		label := strings.Repeat(" ", labelWidth)
		switch row {
		case height - 1:
			label = fmt.Sprintf("%7.2f%% ", domain.Max)
		case 0:
			label = fmt.Sprintf("%7.2f%% ", domain.Min)
		}

		var b strings.Builder
		b.WriteString(label)
		for _, level := range levels {
			fill := level - row*8
			if fill < 0 {
				fill = 0
			}
			if fill > 8 {
				fill = 8
			}
			b.WriteRune(blocks[fill])
		}
		lines = append(lines, b.String())
	}

	// Date footer: first and last visible labels
	first := points[0].Date
	last := points[len(points)-1].Date
	gap := chartWidth - len(first) - len(last)
	footer := strings.Repeat(" ", labelWidth) + first
	if gap > 0 && first != last {
		footer += strings.Repeat(" ", gap) + last
	}
	lines = append(lines, footer)

	return strings.Join(lines, "\n")
}
