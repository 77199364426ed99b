package monitor

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/devdash/devdash/internal/app"
	"github.com/devdash/devdash/internal/collect"
	"github.com/devdash/devdash/internal/ui"
	"github.com/dustin/go-humanize"
)

// Auto layout switches to compact below these pane dimensions.
const (
	CockpitMinWidth  = 86
	CockpitMinHeight = 13
)

// RollingWindow is the number of recent samples averaged in the cockpit cards.
const RollingWindow = 12

// noDataAge is shown as freshness before the first snapshot.
const noDataAge = 999.0

// wave glyphs from flat to peak.
var waveGlyphs = []rune{' ', '.', '·', '˙', '°', '•', '◦', '◌'}

// ResolveSystemLayout picks compact or cockpit for a w x h pane.
func ResolveSystemLayout(mode app.LayoutMode, w, h int) app.LayoutMode {
	if mode != app.LayoutAuto {
		return mode
	}
	if w < CockpitMinWidth || h < CockpitMinHeight {
		return app.LayoutCompact
	}
	return app.LayoutCockpit
}

func (m Model) systemTitle() string {
	if m.state.Flash > 0 {
		return "SYSTEM // LIVE"
	}
	return "SYSTEM // METRICS"
}

// systemView gathers the derived values both system layouts draw from.
type systemView struct {
	sys        collect.SystemStatus
	cpu        float64
	mem        float64
	disk       float64
	pulse      int
	cpuColor   lipgloss.Color
	memColor   lipgloss.Color
	diskColor  lipgloss.Color
	fresh      float64
	freshColor lipgloss.Color
	health     string
	healthCol  lipgloss.Color
}

func (m Model) newSystemView() systemView {
	s := m.state
	sys := s.Data.System
	flash := s.Flash > 0
	pulse := s.Spinner % len(PulseGlyphs)

	v := systemView{
		sys:   sys,
		cpu:   clampPct(sys.CPUUsage),
		mem:   clampPct(sys.MemPercent()),
		disk:  clampPct(sys.DiskPercent()),
		pulse: pulse,
		fresh: noDataAge,
	}
	v.cpuColor = PulseColor(LevelColor(s.CPUAlert()), flash, pulse)
	v.memColor = PulseColor(LevelColor(s.MemAlert()), flash, (pulse+3)%len(PulseGlyphs))
	v.diskColor = DiskColor(v.disk)

	now := m.now()
	if age, ok := s.DataAge(now); ok {
		v.fresh = age.Seconds()
	}
	v.freshColor = BadgeColor(s.StaleAlert(now))

	label, level := app.HealthLabel(s.HealthScore())
	v.health = label
	v.healthCol = BadgeColor(level)
	return v
}

// systemLines is the system pane body for the rectangle r.
func (m Model) systemLines(r app.Rect) []string {
	v := m.newSystemView()
	iw := max(r.W-2, 0)
	if ResolveSystemLayout(m.state.LayoutMode, r.W, r.H) == app.LayoutCompact {
		return m.systemCompact(v, iw)
	}
	return m.systemCockpit(v, iw)
}

func (m Model) systemCockpit(v systemView, iw int) []string {
	s := m.state
	sys := v.sys
	glyph := PulseGlyphs[v.pulse]

	top := ui.Bold(v.cpuColor).Render(glyph+glyph+" ") +
		mutedStyle.Render("CPU ") + ui.Fg(v.cpuColor).Render(fmt.Sprintf("%5.1f%%", v.cpu)) + " " +
		ui.Fg(DeltaColor(s.CPUDelta)).Render(fmt.Sprintf("%6s", FormatDelta(s.CPUDelta, "%"))) +
		mutedStyle.Render("  MEM ") + ui.Fg(v.memColor).Render(fmt.Sprintf("%5.1f%%", v.mem)) + " " +
		ui.Fg(DeltaColor(s.MemDelta)).Render(fmt.Sprintf("%6s", FormatDelta(s.MemDelta, "%"))) +
		mutedStyle.Render("  [") + ui.Bold(v.healthCol).Render(v.health) + mutedStyle.Render("]") +
		mutedStyle.Render("  Refresh: ") + ui.Fg(v.freshColor).Render(fmt.Sprintf("%.1fs", v.fresh))

	leftW := iw * 60 / 100
	rightW := iw - leftW
	gaugeW := max(leftW-20, 4)
	left := []string{
		Gauge(v.cpu, gaugeW, v.cpuColor, fmt.Sprintf("CPU UTIL  %5.1f%%", v.cpu)),
		"",
		Gauge(v.mem, gaugeW, v.memColor, fmt.Sprintf("MEM USE   %4.1f/%4.1f GB", sys.MemUsedGB, sys.MemTotalGB)),
		"",
		Gauge(v.disk, gaugeW, v.diskColor, fmt.Sprintf("DISK USE  %4.1f/%4.1f GB", sys.DiskUsedGB, sys.DiskTotalGB)),
		"",
		ui.Fg(ui.ColorTertiary).Render("wave "+auroraWave(12, s.Spinner)) +
			ui.Fg(v.healthCol).Render("  orbit "+orbitDots(8, s.Spinner)),
	}

	cpuAvg := ui.RollingAvg(s.History.CPU(), RollingWindow)
	memAvg := ui.RollingAvg(s.History.Mem(), RollingWindow)
	right := []string{
		mutedStyle.Render("LOAD ") + ui.Bold(ui.ColorSecondary).Render(fmt.Sprintf("%4.2f %4.2f %4.2f", sys.LoadAvg[0], sys.LoadAvg[1], sys.LoadAvg[2])),
		mutedStyle.Render("CPU ") + ui.Bold(v.cpuColor).Render(fmt.Sprintf("%5.1f%%", cpuAvg)) +
			mutedStyle.Render("  pk ") + ui.Fg(v.cpuColor).Render(fmt.Sprintf("%5.1f%%", s.CPUPeak)),
		mutedStyle.Render("MEM ") + ui.Bold(v.memColor).Render(fmt.Sprintf("%5.1f%%", memAvg)) +
			mutedStyle.Render(" avl ") + ui.Fg(ui.ColorAccentBright).Render(fmt.Sprintf("%4.1fG", sys.MemAvailableGB)),
		mutedStyle.Render("DISK ") + ui.Bold(v.diskColor).Render(fmt.Sprintf("%5.1f%%", v.disk)) +
			mutedStyle.Render("  pk ") + ui.Fg(v.diskColor).Render(fmt.Sprintf("%5.1f%%", s.DiskPeak)),
		mutedStyle.Render("CORES ") + ui.Bold(ui.ColorText).Render(fmt.Sprintf("%2d", len(sys.CPUCores))) +
			mutedStyle.Render("  PROCS ") + ui.Bold(ui.ColorText).Render(humanize.Comma(int64(sys.ProcessCount))),
		mutedStyle.Render("NET RX ") + ui.Bold(ui.ColorAccentBright).Render(megabytes(sys.NetworkRxMB)) +
			mutedStyle.Render("  TX ") + ui.Bold(ui.ColorAccentBright).Render(megabytes(sys.NetworkTxMB)),
		mutedStyle.Render("UP ") + ui.Bold(ui.ColorGlow).Render(app.FormatDurationShort(sys.UptimeSecs)) +
			mutedStyle.Render("  [") + ui.Bold(v.healthCol).Render(v.health) + mutedStyle.Render("]"),
	}

	lines := []string{top}
	for i := range left {
		lines = append(lines, fit(left[i], leftW)+fit(right[i], rightW))
	}

	lines = append(lines,
		ui.RenderSparkline(s.History.CPU(), iw, v.cpuColor),
		ui.RenderSparkline(s.History.Mem(), iw, v.memColor),
		ui.RenderSparkline(s.History.Disk(), iw, v.diskColor),
		mutedStyle.Render("cores ")+ui.Fg(v.cpuColor).Render(ui.CoreMeter(sys.CPUCores, 22))+
			mutedStyle.Render("  swap ")+ui.Fg(ui.ColorSecondary).Render(fmt.Sprintf("%.1f/%.1f GB", sys.SwapUsedGB, sys.SwapTotalGB)),
		ui.Fg(v.cpuColor).Render("C "+ui.TrendStrip(s.History.CPU(), 28, v.pulse))+
			ui.Fg(v.memColor).Render("  M "+ui.TrendStrip(s.History.Mem(), 28, (v.pulse+4)%8))+
			ui.Fg(v.diskColor).Render("  D "+ui.TrendStrip(s.History.Disk(), 19, (v.pulse+2)%8)),
		m.processLine(iw),
	)
	if sys.Error != "" {
		lines = append(lines, errorStyle.Render("error: "+sys.Error))
	}
	return lines
}

func (m Model) systemCompact(v systemView, iw int) []string {
	s := m.state
	sys := v.sys
	gaugeW := max(iw-20, 4)

	lines := []string{
		ui.Bold(v.cpuColor).Render(PulseGlyphs[v.pulse]+" ") +
			ui.Fg(v.healthCol).Render("["+v.health+"]") +
			mutedStyle.Render("  fr ") + ui.Fg(v.freshColor).Render(fmt.Sprintf("%4.1fs", v.fresh)) +
			mutedStyle.Render("  L ") + ui.Fg(ui.ColorSecondary).Render(fmt.Sprintf("%.2f/%.2f", sys.LoadAvg[0], sys.LoadAvg[1])),
		Gauge(v.cpu, gaugeW, v.cpuColor, fmt.Sprintf("CPU %5.1f%% %6s", v.cpu, FormatDelta(s.CPUDelta, "%"))),
		Gauge(v.mem, gaugeW, v.memColor, fmt.Sprintf("MEM %5.1f%% %6s", v.mem, FormatDelta(s.MemDelta, "%"))),
		mutedStyle.Render("up ") + textStyle.Render(app.FormatDurationShort(sys.UptimeSecs)) +
			mutedStyle.Render("  p ") + textStyle.Render(fmt.Sprintf("%d", sys.ProcessCount)) +
			mutedStyle.Render("  sw ") + ui.Fg(ui.ColorSecondary).Render(fmt.Sprintf("%.1f/%.1fG", sys.SwapUsedGB, sys.SwapTotalGB)),
		ui.Fg(v.cpuColor).Render("C "+ui.TrendStrip(s.History.CPU(), 14, s.Spinner)) +
			ui.Fg(v.memColor).Render("  M "+ui.TrendStrip(s.History.Mem(), 14, s.Spinner+3)),
		m.processLine(iw),
	}
	if sys.Error != "" {
		lines = append(lines, errorStyle.Render("error: "+sys.Error))
	}
	return lines
}

// processLine lists the top processes on one line, marking the cursor when
// the system pane is focused.
func (m Model) processLine(width int) string {
	s := m.state
	procs := s.Data.System.TopProcesses

	var b strings.Builder
	b.WriteString(mutedStyle.Render("top "))
	if len(procs) == 0 {
		b.WriteString(textStyle.Render(app.NotAvailable))
		return b.String()
	}

	cur, ok := s.ListCursor(app.PaneSystem)
	focused := s.Selected == app.PaneSystem
	for i, p := range procs {
		if i > 0 {
			b.WriteString(mutedStyle.Render("  "))
		}
		sel := focused && ok && i == cur
		idxColor, textColor := ui.ColorWarn, ui.ColorText
		prefix := fmt.Sprintf("%d.", i+1)
		if sel {
			idxColor, textColor = ui.ColorAccent, ui.ColorAccent
			prefix = "▶" + prefix
		}
		b.WriteString(ui.Fg(idxColor).Render(prefix))
		b.WriteString(ui.Fg(textColor).Render(fmt.Sprintf("%s %4.1f%% %4.0fM", truncateName(p.Name, width/5), p.CPUPct, p.MemMB)))
	}
	return b.String()
}

// truncateName shortens name to n runes, ending in an ellipsis when cut.
func truncateName(name string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(name)
	if len(r) <= n {
		return name
	}
	if n <= 2 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// auroraWave is a decorative wave that shifts with phase.
func auroraWave(width, phase int) string {
	if width <= 0 {
		return ""
	}
	out := make([]rune, width)
	p := float64(phase) * 0.45
	for x := range out {
		t := float64(x)*0.55 + p
		y := math.Min(math.Max((math.Sin(t)+math.Cos(t*0.5))*0.5+0.5, 0), 1)
		idx := int(math.Round(y * float64(len(waveGlyphs)-1)))
		out[x] = waveGlyphs[min(idx, len(waveGlyphs)-1)]
	}
	return string(out)
}

// orbitDots is a row of dots with two orbiting markers half a turn apart.
func orbitDots(width, phase int) string {
	if width <= 0 {
		return ""
	}
	out := []rune(strings.Repeat(".", width))
	out[phase%width] = 'O'
	out[(phase+max(width/2, 1))%width] = 'o'
	return string(out)
}

// megabytes formats a megabyte count with SI units.
func megabytes(mb float64) string {
	if mb <= 0 || math.IsNaN(mb) {
		return "0 B"
	}
	return humanize.Bytes(uint64(mb * 1e6))
}

func clampPct(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(math.Max(v, 0), 100)
}
