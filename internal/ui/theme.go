package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Dashboard palette. Dark panels, blue accents, traffic-light semantics.
const (
	// Backgrounds
	ColorBg            = lipgloss.Color("#0D1117")
	ColorPanelBg       = lipgloss.Color("#161B22")
	ColorPanelBgActive = lipgloss.Color("#1F2630")
	ColorHighlightBg   = lipgloss.Color("#30363D")

	// Text
	ColorText    = lipgloss.Color("#E6EDF3")
	ColorTextDim = lipgloss.Color("#8B949E")
	ColorMuted   = lipgloss.Color("#57606A")

	// Accents
	ColorAccent       = lipgloss.Color("#58A6FF")
	ColorAccentBright = lipgloss.Color("#79C0FF")
	ColorSecondary    = lipgloss.Color("#A37AFF")
	ColorTertiary     = lipgloss.Color("#F269FF")
	ColorGlow         = lipgloss.Color("#A3FFD1")

	// Semantic
	ColorGood       = lipgloss.Color("#3FB950")
	ColorGoodBright = lipgloss.Color("#56D969")
	ColorWarn       = lipgloss.Color("#FFB800")
	ColorWarnBright = lipgloss.Color("#FFD65B")
	ColorBad        = lipgloss.Color("#FF5555")
	ColorBadBright  = lipgloss.Color("#FF7878")

	// Borders
	ColorBorder        = lipgloss.Color("#30363D")
	ColorBorderActive  = ColorAccent
	ColorBorderFocused = ColorSecondary
)

// Brighten lifts a #RRGGBB color by the given per-channel amounts, saturating
// at 255. Colors that are not in hex form come back as ColorAccentBright.
func Brighten(c lipgloss.Color, dr, dg, db int) lipgloss.Color {
	s := string(c)
	if len(s) != 7 || s[0] != '#' {
		return ColorAccentBright
	}
	rgb, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return ColorAccentBright
	}
	r := min(int(rgb>>16&0xFF)+dr, 255)
	g := min(int(rgb>>8&0xFF)+dg, 255)
	b := min(int(rgb&0xFF)+db, 255)
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, b))
}

// Fg is a shorthand for a plain foreground style.
func Fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// Bold is Fg plus bold.
func Bold(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}
