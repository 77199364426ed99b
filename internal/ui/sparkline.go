package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline block characters representing 8 vertical levels (lowest to highest).
const sparklineBlocks = "▁▂▃▄▅▆▇█"

// sparklineBlockRunes provides indexed access to block characters.
var sparklineBlockRunes = []rune(sparklineBlocks)

// TrendMarker overwrites one cell of a trend strip to show animation phase.
const TrendMarker = '•'

// percentBlock maps a 0-100 value onto a block rune.
func percentBlock(v float64) rune {
	if math.IsNaN(v) {
		v = 0
	}
	idx := int(math.Round(v / 100 * 7))
	idx = max(0, min(idx, len(sparklineBlockRunes)-1))
	return sparklineBlockRunes[idx]
}

// RenderSparkline draws the most recent width values on a fixed 0-100 scale
// in the given color. Data shorter than width is left-padded with spaces so
// the newest sample is always in the rightmost column.
func RenderSparkline(data []float64, width int, color lipgloss.Color) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}

	var sb strings.Builder
	sb.Grow(width * 3)
	sb.WriteString(strings.Repeat(" ", width-len(data)))
	for _, v := range data {
		sb.WriteRune(percentBlock(v))
	}

	return lipgloss.NewStyle().Foreground(color).Render(sb.String())
}

// TrendStrip is an uncolored sparkline with a moving marker. The last width
// values are drawn right-aligned, and the cell at phase modulo width is
// replaced with TrendMarker.
func TrendStrip(values []float64, width, phase int) string {
	if width <= 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	cells := make([]rune, 0, width)
	for i := len(values); i < width; i++ {
		cells = append(cells, ' ')
	}
	for _, v := range values {
		cells = append(cells, percentBlock(v))
	}
	cells[phase%len(cells)] = TrendMarker
	return string(cells)
}

// CoreMeter renders per-core utilization as one block per core, padded
// with spaces when there are fewer cores than columns. When there are more
// cores than columns, cores are sampled evenly.
func CoreMeter(cores []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(cores) == 0 {
		return "n/a"
	}

	step := math.Max(float64(len(cores))/float64(width), 1)
	out := make([]rune, 0, width)
	for idx := 0.0; len(out) < width; idx += step {
		i := int(idx)
		if i >= len(cores) {
			out = append(out, ' ')
			continue
		}
		out = append(out, percentBlock(math.Min(math.Max(cores[i], 0), 100)))
	}
	return string(out)
}

// RollingAvg is the mean of the last tail values, 0 for no values.
func RollingAvg(values []float64, tail int) float64 {
	n := min(len(values), tail)
	if n <= 0 {
		return 0
	}
	var sum float64
	for _, v := range values[len(values)-n:] {
		sum += v
	}
	return sum / float64(n)
}
