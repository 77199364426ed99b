package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/devdash/devdash/internal/app"
	"github.com/devdash/devdash/internal/ui"
)

// placeholderTime stands in for the last-update clock before any data.
const placeholderTime = "──:──:──"

// paneIcons are the chip markers in the header, indexed by pane.
var paneIcons = [...]string{"[G]", "[S]", "[P]", "[D]", "[A]", "[X]"}

// renderDashboard renders header, panes and footer into exactly
// width x height cells.
func (m Model) renderDashboard() string {
	f := app.ComputeLayout(m.width, m.height, m.state.Layout)

	parts := []string{
		m.renderHeader(f.Header),
		m.renderRow(f, app.PaneGit, app.PaneSystem, app.PanePRs),
		m.renderRow(f, app.PaneDocker, app.PaneAWS, app.PanePlugins),
		m.renderFooter(f.Footer),
	}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}

	shell := lipgloss.JoinVertical(lipgloss.Left, nonEmpty...)
	return lipgloss.NewStyle().
		Margin(app.ShellInset).
		MarginBackground(ui.ColorBg).
		Render(shell)
}

// renderRow renders three panes side by side.
func (m Model) renderRow(f app.Frame, panes ...app.Pane) string {
	cells := make([]string, 0, len(panes))
	for _, p := range panes {
		if cell := m.renderPane(p, f.Pane(p)); cell != "" {
			cells = append(cells, cell)
		}
	}
	if len(cells) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// renderPane dispatches to the pane renderers.
func (m Model) renderPane(p app.Pane, r app.Rect) string {
	if r.Empty() {
		return ""
	}
	style := boxPlain
	if m.state.Selected == p {
		style = boxFocused
	}

	switch p {
	case app.PaneGit:
		return renderBox("GIT", m.gitLines(), r.W, r.H, style)
	case app.PaneSystem:
		return renderBox(m.systemTitle(), m.systemLines(r), r.W, r.H, style)
	case app.PanePRs:
		return renderBox("OPEN PRS", m.prLines(r.H-2), r.W, r.H, style)
	case app.PaneDocker:
		return renderBox("DOCKER", m.dockerLines(r.H-2), r.W, r.H, style)
	case app.PaneAWS:
		return renderBox("AWS EC2", m.awsLines(r.H-2), r.W, r.H, style)
	case app.PanePlugins:
		return renderBox("PLUGINS", m.pluginLines(r.H-2), r.W, r.H, style)
	}
	return blankBlock(r.W, r.H)
}

// renderHeader draws the status line, the pane chips when there is room,
// and a closing rule.
func (m Model) renderHeader(r app.Rect) string {
	if r.Empty() {
		return ""
	}

	lines := []string{m.statusLine()}
	if r.H >= app.HeaderRows {
		lines = append(lines, m.paneChips())
	}
	for len(lines) < r.H-1 {
		lines = append(lines, "")
	}

	rows := make([]string, 0, r.H)
	for _, l := range lines[:min(len(lines), r.H-1)] {
		rows = append(rows, fit(l, r.W))
	}
	rows = append(rows, ui.Fg(ui.ColorBorderActive).Render(strings.Repeat("─", r.W)))
	return strings.Join(rows, "\n")
}

// statusLine is the first header row.
func (m Model) statusLine() string {
	s := m.state

	statusColor := ui.ColorGoodBright
	statusMark := ui.SymbolOK
	statusText := "Ready"
	if s.Loading {
		statusColor = ui.ColorWarnBright
		statusMark = ui.SymbolBusy
		statusText = "Refreshing..."
	}

	mode := "normal"
	if s.Compact {
		mode = "compact"
	}

	updated := placeholderTime
	if s.HasData {
		updated = s.Data.CompletedAt.Local().Format("15:04:05")
	}

	sep := borderStyle.Render("  / ")
	var b strings.Builder
	b.WriteString(accentStyle.Render(" [#] DEVDASH [#]"))
	b.WriteString("  ")
	b.WriteString(ui.Bold(statusColor).Render(statusMark))
	b.WriteString(ui.Fg(statusColor).Render(" " + spinnerGlyph(s.Spinner) + " "))
	b.WriteString(ui.Bold(statusColor).Render(statusText))
	b.WriteString(sep)
	b.WriteString(dimStyle.Render("Focus: "))
	b.WriteString(ui.Bold(ui.ColorSecondary).Render(s.Selected.Title()))
	b.WriteString(sep)
	b.WriteString(dimStyle.Render("Mode: "))
	b.WriteString(ui.Bold(ui.ColorTertiary).Render(mode))
	b.WriteString(sep)
	b.WriteString(dimStyle.Render("[T] "))
	b.WriteString(ui.Bold(ui.ColorGlow).Render(updated))

	if age, ok := s.DataAge(m.now()); ok {
		level := s.StaleAlert(m.now())
		b.WriteString(sep)
		b.WriteString(dimStyle.Render("Age: "))
		b.WriteString(ui.Fg(BadgeColor(level)).Render(fmt.Sprintf("%.1fs", age.Seconds())))
	}
	return b.String()
}

// paneChips lists every pane with its icon, the focused one highlighted.
func (m Model) paneChips() string {
	var b strings.Builder
	b.WriteString(" ")
	b.WriteString(ui.Fg(ui.ColorAccentBright).Render("["))
	b.WriteString(dimStyle.Render(" Panes "))
	b.WriteString(ui.Fg(ui.ColorAccentBright).Render("]"))
	for _, p := range app.Panes {
		b.WriteString(borderStyle.Render(" / "))
		name := fmt.Sprintf(" %d:%s", p.Index(), p.Title())
		if p == m.state.Selected {
			b.WriteString(accentStyle.Render(paneIcons[p]))
			b.WriteString(ui.Bold(ui.ColorText).Render(name))
		} else {
			b.WriteString(mutedStyle.Render(paneIcons[p]))
			b.WriteString(dimStyle.Render(name))
		}
	}
	return b.String()
}

// renderFooter shows the palette input, or key hints plus the last error
// or status message.
func (m Model) renderFooter(r app.Rect) string {
	if r.Empty() {
		return ""
	}
	s := m.state

	if s.Mode() == app.ModeCommandPalette {
		line := accentStyle.Render("> ") + textStyle.Render(s.CommandInput()) + ui.Fg(ui.ColorAccentBright).Render("|")
		return renderBox("", []string{line}, r.W, r.H, boxFocused)
	}

	var b strings.Builder
	if s.Compact {
		b.WriteString(ui.Fg(ui.ColorAccent).Render("> "))
		b.WriteString(dimStyle.Render("Commands  "))
		b.WriteString(ui.Fg(ui.ColorAccentBright).Render("[Enter] "))
		b.WriteString(dimStyle.Render("Details  "))
		b.WriteString(ui.Fg(ui.ColorBad).Render("F10 "))
		b.WriteString(dimStyle.Render("Quit"))
	} else {
		b.WriteString(accentStyle.Render(" :"))
		b.WriteString(dimStyle.Render(" Palette  "))
		b.WriteString(ui.Fg(ui.ColorSecondary).Render("[Tab] "))
		b.WriteString(dimStyle.Render("Cycle  "))
		b.WriteString(ui.Fg(ui.ColorTertiary).Render("[Arrows] "))
		b.WriteString(dimStyle.Render("Navigate  "))
		b.WriteString(ui.Fg(ui.ColorAccentBright).Render("[Enter] "))
		b.WriteString(dimStyle.Render("Details  "))
		b.WriteString(ui.Fg(ui.ColorGood).Render("[+/-]"))
		b.WriteString(dimStyle.Render(" Resize  "))
		b.WriteString(ui.Fg(ui.ColorBad).Render("F10 "))
		b.WriteString(dimStyle.Render("Exit"))
	}

	switch {
	case s.LastError != "":
		b.WriteString(borderStyle.Render("    //  "))
		b.WriteString(ui.Bold(ui.ColorBadBright).Render(ui.SymbolWarn + " "))
		b.WriteString(ui.Fg(ui.ColorWarnBright).Render(s.LastError))
	case s.Status != "":
		b.WriteString(borderStyle.Render("    //  "))
		b.WriteString(ui.Fg(ui.ColorGoodBright).Render(ui.SymbolOK + " "))
		b.WriteString(glowStyle.Render(s.Status))
	}

	return renderBox("", []string{b.String()}, r.W, r.H, boxPlain)
}
