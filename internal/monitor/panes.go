package monitor

import (
	"fmt"
	"strings"

	"github.com/devdash/devdash/internal/app"
	"github.com/devdash/devdash/internal/ui"
)

// gitLines is the repository pane body.
func (m Model) gitLines() []string {
	git := m.state.Data.Git
	tracking := git.AheadBehind
	if strings.TrimSpace(tracking) == "" {
		tracking = app.NotAvailable
	}

	lines := []string{
		accentStyle.Render("[G] ") + dimStyle.Render("Branch: ") + ui.Bold(ui.ColorSecondary).Render(git.Branch),
		"",
		ui.Fg(ui.ColorTertiary).Render(ui.SymbolTrack+" ") + dimStyle.Render("Tracking: ") + textStyle.Render(tracking),
		"",
		"  " + ui.Bold(ui.ColorGoodBright).Render(ui.SymbolOK+" ") + dimStyle.Render("Staged ") +
			ui.Bold(ui.ColorGood).Render(fmt.Sprintf("%3d", git.Staged)) + "    " +
			ui.Bold(ui.ColorWarnBright).Render(ui.SymbolBusy+" ") + dimStyle.Render("Unstaged ") +
			ui.Bold(ui.ColorWarn).Render(fmt.Sprintf("%3d", git.Unstaged)),
		"  " + ui.Bold(ui.ColorBadBright).Render(ui.SymbolUnknown+" ") + dimStyle.Render("Untracked ") +
			ui.Bold(ui.ColorBad).Render(fmt.Sprintf("%3d", git.Untracked)),
	}
	if git.Error != "" {
		lines = append(lines, "", errorStyle.Render("error: "+git.Error))
	}
	return lines
}

// prLines is the review queue body.
func (m Model) prLines(height int) []string {
	prs := m.state.Data.PRs
	rows := prs.Open
	if len(prs.Items) > 0 {
		rows = make([]string, len(prs.Items))
		for i, it := range prs.Items {
			rows[i] = it.Line()
		}
	}
	return m.statusList(app.PanePRs, rows, prs.Error, prs.Source, true, height)
}

// dockerLines is the container pane body.
func (m Model) dockerLines(height int) []string {
	d := m.state.Data.Docker
	rows := d.Running
	if len(d.Items) > 0 {
		rows = make([]string, len(d.Items))
		for i, c := range d.Items {
			rows[i] = c.Line()
		}
	}
	return m.statusList(app.PaneDocker, rows, d.Error, "", false, height)
}

// awsLines is the cloud inventory body.
func (m Model) awsLines(height int) []string {
	a := m.state.Data.AWS
	rows := a.Instances
	if len(a.Items) > 0 {
		rows = make([]string, len(a.Items))
		for i, inst := range a.Items {
			rows[i] = inst.Line()
		}
	}
	return m.statusList(app.PaneAWS, rows, a.Error, a.Source, true, height)
}

// statusList renders an optional source line, an optional error line and
// the rows, scrolled so the cursor row stays visible.
func (m Model) statusList(p app.Pane, rows []string, errMsg, source string, withSource bool, height int) []string {
	var lines []string
	if withSource {
		lines = append(lines, mutedStyle.Render("source: ")+textStyle.Render(source))
	}
	if errMsg != "" {
		lines = append(lines, errorStyle.Render("error: "+errMsg))
	}

	cur, hasCursor := m.state.ListCursor(p)
	visible := max(height-len(lines), 1)
	start := 0
	if hasCursor && cur >= visible {
		start = cur - visible + 1
	}

	focused := m.state.Selected == p
	for i := start; i < len(rows) && i < start+visible; i++ {
		text := strings.ReplaceAll(rows[i], "\t", "  ")
		lines = append(lines, listRow(text, hasCursor && i == cur, focused))
	}
	return lines
}

// listRow renders one list entry, marking the cursor row.
func listRow(text string, selected, focused bool) string {
	if !selected {
		return ui.Fg(ui.ColorAccent).Render(ui.SymbolBullet) + textStyle.Render(text)
	}
	if focused {
		return selectedRowStyle.Render(ui.SymbolSelected + text)
	}
	return textStyle.Render(ui.SymbolSelected + text)
}

// pluginLines is the plugin pane body: two lines per probe, name and first
// output line.
func (m Model) pluginLines(height int) []string {
	plugins := m.state.Data.Plugins
	if len(plugins) == 0 {
		return []string{
			"",
			accentStyle.Render("  "+ui.SymbolFail+"  ") + dimStyle.Render("No plugins configured"),
			"",
			"  " + mutedStyle.Render("-> ") + dimStyle.Render("Add plugins entries in ") + ui.Fg(ui.ColorSecondary).Render(".devdash.yaml"),
		}
	}

	cur, hasCursor := m.state.ListCursor(app.PanePlugins)
	visible := max(height/2, 1)
	start := 0
	if hasCursor && cur >= visible {
		start = cur - visible + 1
	}

	focused := m.state.Selected == app.PanePlugins
	lines := make([]string, 0, 2*visible)
	for i := start; i < len(plugins) && i < start+visible; i++ {
		pl := plugins[i]
		icon, color := ui.SymbolOK, ui.ColorGoodBright
		if pl.Failed() {
			icon, color = ui.SymbolFail, ui.ColorBadBright
		}
		sample := ""
		switch {
		case pl.Failed():
			sample = pl.Error
		case len(pl.Lines) > 0:
			sample = pl.Lines[0]
		}

		name := ui.Fg(color).Render(icon+" ") + accentStyle.Render(pl.Name)
		if hasCursor && i == cur {
			if focused {
				name = selectedRowStyle.Render(ui.SymbolSelected+icon+" "+pl.Name)
			} else {
				name = textStyle.Render(ui.SymbolSelected) + name
			}
		}
		lines = append(lines, name, "  "+dimStyle.Render(sample))
	}
	return lines
}
