package monitor

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/devdash/devdash/internal/app"
	"github.com/devdash/devdash/internal/ui"
)

// Gauge glyphs.
const (
	gaugeFilled = "━"
	gaugeEmpty  = "·"
)

// SpinnerGlyphs animate the header status.
var SpinnerGlyphs = []string{"[|]", "[/]", "[-]", "[\\]"}

// PulseGlyphs animate the system pane's leading marker.
var PulseGlyphs = []string{"◜", "◠", "◝", "◞", "◡", "◟", "◜", "◠"}

// Text styles
var (
	mutedStyle  = ui.Fg(ui.ColorMuted)
	dimStyle    = ui.Fg(ui.ColorTextDim)
	textStyle   = ui.Fg(ui.ColorText)
	accentStyle = ui.Bold(ui.ColorAccentBright)
	borderStyle = ui.Fg(ui.ColorBorder)
	glowStyle   = ui.Fg(ui.ColorGlow)
	errorStyle  = ui.Fg(ui.ColorBad)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(ui.ColorText).
				Background(ui.ColorHighlightBg)
)

// LevelColor is the bright foreground for an alert level.
func LevelColor(l app.AlertLevel) lipgloss.Color {
	switch l {
	case app.AlertCritical:
		return ui.ColorBadBright
	case app.AlertWarn:
		return ui.ColorWarnBright
	default:
		return ui.ColorGoodBright
	}
}

// BadgeColor is the plain foreground for an alert level, used by badges
// and the freshness readout.
func BadgeColor(l app.AlertLevel) lipgloss.Color {
	switch l {
	case app.AlertCritical:
		return ui.ColorBad
	case app.AlertWarn:
		return ui.ColorWarn
	default:
		return ui.ColorGood
	}
}

// PulseColor brightens c on even phases while the refresh flash is active.
func PulseColor(c lipgloss.Color, flash bool, phase int) lipgloss.Color {
	if !flash || phase%2 != 0 {
		return c
	}
	return ui.Brighten(c, 25, 25, 15)
}

// DeltaColor colors a change: muted when negligible, warn when rising,
// good when falling.
func DeltaColor(v float64) lipgloss.Color {
	switch {
	case math.Abs(v) < 0.2:
		return ui.ColorMuted
	case v > 0:
		return ui.ColorWarn
	default:
		return ui.ColorGood
	}
}

// FormatDelta renders a signed one-decimal change with a unit.
func FormatDelta(v float64, unit string) string {
	if v >= 0 {
		return fmt.Sprintf("+%.1f%s", v, unit)
	}
	return fmt.Sprintf("%.1f%s", v, unit)
}

// DiskColor grades disk usage with fixed thresholds.
func DiskColor(pct float64) lipgloss.Color {
	switch {
	case pct > 90:
		return ui.ColorBadBright
	case pct > 75:
		return ui.ColorWarnBright
	default:
		return ui.ColorGoodBright
	}
}

// Gauge renders a horizontal meter of width cells filled to pct percent,
// followed by label.
func Gauge(pct float64, width int, color lipgloss.Color, label string) string {
	if width < 1 {
		width = 1
	}
	if math.IsNaN(pct) {
		pct = 0
	}
	pct = math.Min(math.Max(pct, 0), 100)

	filled := int(math.Round(pct / 100 * float64(width)))
	bar := ui.Fg(color).Render(strings.Repeat(gaugeFilled, filled)) +
		mutedStyle.Render(strings.Repeat(gaugeEmpty, width-filled))
	if label == "" {
		return bar
	}
	return bar + " " + ui.Fg(color).Render(label)
}

// spinnerGlyph maps a spinner index onto SpinnerGlyphs.
func spinnerGlyph(idx int) string {
	return SpinnerGlyphs[idx%len(SpinnerGlyphs)]
}
