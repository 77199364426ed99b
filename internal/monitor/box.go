package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/devdash/devdash/internal/ui"
)

// boxStyle selects the border treatment of a box.
type boxStyle int

const (
	boxPlain boxStyle = iota
	boxFocused
	boxActive
)

// renderBox draws a rounded w x h box with an optional centered title in
// the top border. Body lines are clipped to the inner width and missing
// lines are blank, so the result is exactly w cells wide and h rows tall.
func renderBox(title string, lines []string, w, h int, style boxStyle) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	if w < 2 || h < 2 {
		return blankBlock(w, h)
	}

	border := lipgloss.RoundedBorder()
	edge := borderStyle
	titleStyle := ui.Bold(ui.ColorTextDim)
	switch style {
	case boxFocused:
		edge = ui.Bold(ui.ColorBorderFocused)
		titleStyle = accentStyle
	case boxActive:
		edge = ui.Fg(ui.ColorBorderActive)
		titleStyle = accentStyle
	}

	inner := w - 2
	rows := make([]string, 0, h)
	rows = append(rows, edge.Render(border.TopLeft)+titledRule(title, inner, border.Top, edge, titleStyle)+edge.Render(border.TopRight))
	for i := 0; i < h-2; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		rows = append(rows, edge.Render(border.Left)+fit(line, inner)+edge.Render(border.Right))
	}
	rows = append(rows, edge.Render(border.BottomLeft+strings.Repeat(border.Bottom, inner)+border.BottomRight))
	return strings.Join(rows, "\n")
}

// titledRule is a horizontal rule of width cells with " [[ title ]] "
// centered in it.
func titledRule(title string, width int, fill string, edge, titleStyle lipgloss.Style) string {
	if title == "" {
		return edge.Render(strings.Repeat(fill, width))
	}
	label := ansi.Truncate(" [[ "+title+" ]] ", width, "")
	lw := ansi.StringWidth(label)
	left := (width - lw) / 2
	right := width - lw - left
	return edge.Render(strings.Repeat(fill, left)) + titleStyle.Render(label) + edge.Render(strings.Repeat(fill, right))
}

// fit clips or pads s to exactly width cells. Tabs become two spaces.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\t", "  ")
	s = ansi.Truncate(s, width, "…")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// blankBlock is w x h of spaces.
func blankBlock(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	row := strings.Repeat(" ", w)
	rows := make([]string, h)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

// overlay paints top over base with its top-left corner at (x, y). Cells of
// base outside the overlay are kept.
func overlay(base, top string, x, y int) string {
	baseLines := strings.Split(base, "\n")
	for i, line := range strings.Split(top, "\n") {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		under := baseLines[row]
		if gap := x - ansi.StringWidth(under); gap > 0 {
			under += strings.Repeat(" ", gap)
		}
		left := ansi.Truncate(under, x, "")
		right := ansi.TruncateLeft(under, x+ansi.StringWidth(line), "")
		baseLines[row] = left + line + right
	}
	return strings.Join(baseLines, "\n")
}

// centered returns the top-left corner that centers a w x h block in a
// width x height area.
func centered(width, height, w, h int) (int, int) {
	return max((width-w)/2, 0), max((height-h)/2, 0)
}
