package monitor

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/devdash/devdash/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSystemLayout(t *testing.T) {
	tests := []struct {
		name string
		mode app.LayoutMode
		w, h int
		want app.LayoutMode
	}{
		{"auto roomy", app.LayoutAuto, 86, 13, app.LayoutCockpit},
		{"auto narrow", app.LayoutAuto, 85, 30, app.LayoutCompact},
		{"auto short", app.LayoutAuto, 120, 12, app.LayoutCompact},
		{"forced compact", app.LayoutCompact, 200, 60, app.LayoutCompact},
		{"forced cockpit", app.LayoutCockpit, 20, 5, app.LayoutCockpit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveSystemLayout(tt.mode, tt.w, tt.h))
		})
	}
}

func TestSystemTitle(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, "SYSTEM // METRICS", m.systemTitle())

	m = withSnapshot(t, m)
	assert.Equal(t, "SYSTEM // LIVE", m.systemTitle())
}

func TestSystemLines_Cockpit(t *testing.T) {
	m, _ := newTestModel(t)
	m = withSnapshot(t, m)

	lines := m.systemLines(app.Rect{W: 100, H: 20})
	plain := ansi.Strip(strings.Join(lines, "\n"))

	require.GreaterOrEqual(t, len(lines), 14)
	assert.Contains(t, plain, "CPU  42.5%")
	assert.Contains(t, plain, "CPU UTIL   42.5%")
	assert.Contains(t, plain, "MEM USE    6.0/16.0 GB")
	assert.Contains(t, plain, "LOAD 1.20 0.90 0.70")
	assert.Contains(t, plain, "PROCS 321")
	assert.Contains(t, plain, "UP 1d 02h")
	assert.Contains(t, plain, "Refresh: 2.0s")
	assert.Contains(t, plain, "[CALM]")
	assert.Contains(t, plain, "cores ")
	assert.Contains(t, plain, "1.postgres")
}

func TestSystemLines_Compact(t *testing.T) {
	m, _ := newTestModel(t)
	m = withSnapshot(t, m)

	lines := m.systemLines(app.Rect{W: 60, H: 20})
	plain := ansi.Strip(strings.Join(lines, "\n"))

	assert.Len(t, lines, 6)
	assert.Contains(t, plain, "fr  2.0s")
	assert.Contains(t, plain, "L 1.20/0.90")
	assert.Contains(t, plain, "CPU  42.5%")
	assert.Contains(t, plain, "p 321")
	assert.NotContains(t, plain, "CPU UTIL")
}

func TestSystemLines_NoData(t *testing.T) {
	m, _ := newTestModel(t)

	plain := ansi.Strip(strings.Join(m.systemLines(app.Rect{W: 60, H: 20}), "\n"))

	assert.Contains(t, plain, "fr 999.0s")
	assert.Contains(t, plain, "top "+app.NotAvailable)
}

func TestSystemLines_Error(t *testing.T) {
	m, _ := newTestModel(t)
	snap := sampleSnapshot()
	snap.System.Error = "sampling failed"
	m.State().UpdateData(snap)

	plain := ansi.Strip(strings.Join(m.systemLines(app.Rect{W: 60, H: 20}), "\n"))

	assert.Contains(t, plain, "error: sampling failed")
}

func TestProcessLine_MarksCursorWhenFocused(t *testing.T) {
	m, _ := newTestModel(t)
	m = withSnapshot(t, m)

	assert.NotContains(t, ansi.Strip(m.processLine(100)), "▶")

	m.State().Focus(app.PaneSystem)
	m.State().MoveListCursor(1)
	line := ansi.Strip(m.processLine(100))

	assert.Contains(t, line, "1.postgres")
	assert.Contains(t, line, "▶2.node")
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "postgres", truncateName("postgres", 8))
	assert.Equal(t, "post…", truncateName("postgres", 5))
	assert.Equal(t, "po", truncateName("postgres", 2))
	assert.Empty(t, truncateName("postgres", 0))
}

func TestAuroraWave(t *testing.T) {
	w := auroraWave(12, 0)
	assert.Equal(t, 12, utf8.RuneCountInString(w))
	assert.NotEqual(t, w, auroraWave(12, 3), "wave moves with phase")
	assert.Empty(t, auroraWave(0, 1))
}

func TestOrbitDots(t *testing.T) {
	assert.Equal(t, "O...o...", orbitDots(8, 0))
	assert.Equal(t, "..o...O.", orbitDots(8, 6))
	assert.Equal(t, "o", orbitDots(1, 0))
	assert.Empty(t, orbitDots(0, 0))
}

func TestMegabytes(t *testing.T) {
	assert.Equal(t, "0 B", megabytes(0))
	assert.Equal(t, "12 MB", megabytes(12.3))
	assert.Equal(t, "1.5 GB", megabytes(1500))
}
