package monitor

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/devdash/devdash/internal/app"
	"github.com/devdash/devdash/internal/ui"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLevelColor(t *testing.T) {
	assert.Equal(t, ui.ColorGoodBright, LevelColor(app.AlertOK))
	assert.Equal(t, ui.ColorWarnBright, LevelColor(app.AlertWarn))
	assert.Equal(t, ui.ColorBadBright, LevelColor(app.AlertCritical))
}

func TestBadgeColor(t *testing.T) {
	assert.Equal(t, ui.ColorGood, BadgeColor(app.AlertOK))
	assert.Equal(t, ui.ColorWarn, BadgeColor(app.AlertWarn))
	assert.Equal(t, ui.ColorBad, BadgeColor(app.AlertCritical))
}

func TestPulseColor(t *testing.T) {
	base := ui.ColorGood

	assert.Equal(t, base, PulseColor(base, false, 0), "no flash keeps the color")
	assert.Equal(t, base, PulseColor(base, true, 1), "odd phase keeps the color")
	assert.Equal(t, ui.Brighten(base, 25, 25, 15), PulseColor(base, true, 2))
}

func TestDeltaColor(t *testing.T) {
	tests := []struct {
		v    float64
		want lipgloss.Color
	}{
		{0, ui.ColorMuted},
		{0.19, ui.ColorMuted},
		{-0.19, ui.ColorMuted},
		{0.2, ui.ColorWarn},
		{5, ui.ColorWarn},
		{-0.2, ui.ColorGood},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DeltaColor(tt.v), "%v", tt.v)
	}
}

func TestFormatDelta(t *testing.T) {
	assert.Equal(t, "+0.0%", FormatDelta(0, "%"))
	assert.Equal(t, "+2.5%", FormatDelta(2.46, "%"))
	assert.Equal(t, "-1.2%", FormatDelta(-1.24, "%"))
}

func TestDiskColor(t *testing.T) {
	assert.Equal(t, ui.ColorGoodBright, DiskColor(75))
	assert.Equal(t, ui.ColorWarnBright, DiskColor(75.1))
	assert.Equal(t, ui.ColorWarnBright, DiskColor(90))
	assert.Equal(t, ui.ColorBadBright, DiskColor(90.5))
}

func TestGauge(t *testing.T) {
	tests := []struct {
		name   string
		pct    float64
		width  int
		filled int
	}{
		{"empty", 0, 10, 0},
		{"half", 50, 10, 5},
		{"full", 100, 10, 10},
		{"over", 180, 10, 10},
		{"negative", -4, 10, 0},
		{"nan", math.NaN(), 10, 0},
		{"rounds", 44, 10, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := ansi.Strip(Gauge(tt.pct, tt.width, ui.ColorGood, ""))
			assert.Equal(t, tt.filled, strings.Count(bar, gaugeFilled))
			assert.Equal(t, tt.width-tt.filled, strings.Count(bar, gaugeEmpty))
		})
	}
}

func TestGauge_Label(t *testing.T) {
	out := ansi.Strip(Gauge(50, 4, ui.ColorGood, "CPU 50%"))
	assert.Equal(t, "━━·· CPU 50%", out)
}

func TestSpinnerGlyph(t *testing.T) {
	assert.Equal(t, "[|]", spinnerGlyph(0))
	assert.Equal(t, "[\\]", spinnerGlyph(3))
	assert.Equal(t, "[|]", spinnerGlyph(4))
}
