package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/devdash/devdash/internal/ui"
)

// Detail modal geometry, as percentages of the terminal.
const (
	detailWidthPct  = 70
	detailHeightPct = 50

	// MaxDetailLines caps how many record lines the modal holds.
	MaxDetailLines = 25
)

const detailHint = "[Esc] Close  [Enter] Confirm"

// detailBoxSize is the outer size of the detail modal.
func detailBoxSize(width, height int) (int, int) {
	return max(width*detailWidthPct/100, 8), max(height*detailHeightPct/100, 6)
}

// detailBodySize is the scrollable area inside the modal: the box minus
// borders, indent, padding rows and the hint row.
func detailBodySize(width, height int) (int, int) {
	w, h := detailBoxSize(width, height)
	return max(w-4, 1), max(h-5, 1)
}

// loadDetailViewport fills the viewport with the open record.
func (m *Model) loadDetailViewport() {
	d := m.state.Detail()
	if d == nil {
		return
	}
	if !m.viewportReady {
		w, h := detailBodySize(m.width, m.height)
		m.detailViewport = viewport.New(w, h)
		m.viewportReady = true
	}

	lines := d.Lines
	if len(lines) > MaxDetailLines {
		lines = lines[:MaxDetailLines]
	}
	m.detailViewport.SetContent(strings.Join(lines, "\n"))
	m.detailViewport.GotoTop()
}

// renderDetailOverlay draws the detail modal centered over base.
func (m Model) renderDetailOverlay(base string) string {
	d := m.state.Detail()
	if d == nil {
		return base
	}
	w, h := detailBoxSize(m.width, m.height)

	lines := []string{""}
	for _, l := range strings.Split(m.detailViewport.View(), "\n") {
		lines = append(lines, "  "+textStyle.Render(l))
	}
	lines = append(lines, "")
	for len(lines) < h-3 {
		lines = append(lines, "")
	}
	lines = append(lines[:h-3], "  "+mutedStyle.Render(detailHint))
	if m.detailViewport.TotalLineCount() > m.detailViewport.Height {
		pct := int(m.detailViewport.ScrollPercent() * 100)
		lines[len(lines)-1] += ui.Fg(ui.ColorAccent).Render(fmt.Sprintf("  %3d%%", pct))
	}

	box := renderBox(d.Title, lines, w, h, boxFocused)
	x, y := centered(m.width, m.height, w, h)
	return overlay(base, box, x, y)
}
