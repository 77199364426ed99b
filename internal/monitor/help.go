package monitor

import (
	"fmt"

	"github.com/devdash/devdash/internal/ui"
)

// helpBinding is one row of the help overlay.
type helpBinding struct {
	keys string
	desc string
}

var helpBindings = []helpBinding{
	{"Tab / Shift+Tab", "Cycle panes"},
	{"Arrows / hjkl", "Navigate panes, scroll lists"},
	{"1-6", "Jump to pane"},
	{"Enter", "Open details"},
	{"+ / -", "Resize focused column"},
	{"Ctrl+Arrows", "Resize columns and rows"},
	{"r / F5", "Refresh now"},
	{":", "Command palette"},
	{"?", "Toggle this help"},
	{"q / Esc / F10", "Quit"},
}

// helpKeyWidth aligns the description column.
const helpKeyWidth = 18

// renderHelpOverlay draws the key reference centered over base.
func (m Model) renderHelpOverlay(base string) string {
	lines := []string{""}
	for _, b := range helpBindings {
		lines = append(lines, "  "+ui.Fg(ui.ColorAccentBright).Render(fmt.Sprintf("%-*s", helpKeyWidth, b.keys))+dimStyle.Render(b.desc))
	}
	lines = append(lines, "", "  "+mutedStyle.Render("palette: ")+textStyle.Render("refresh reload compact focus <pane> help quit"))

	w := min(max(m.width*60/100, 52), m.width)
	h := min(len(lines)+3, m.height)
	lines = append(lines, "")

	box := renderBox("HELP", lines, w, h, boxActive)
	x, y := centered(m.width, m.height, w, h)
	return overlay(base, box, x, y)
}
