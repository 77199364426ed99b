package app

import (
	"math"

	"github.com/devdash/devdash/internal/collect"
	"github.com/devdash/devdash/internal/config"
)

const (
	// SpinnerFrames is the spinner period in ticks.
	SpinnerFrames = 8
	// FlashTicks is how long the system pane stays highlighted after new data.
	FlashTicks = 7
	// PeakHoldTicks is how long a peak marker holds before it starts to decay.
	PeakHoldTicks = 24
	// CPUPeakDecay and MemPeakDecay are the per-tick peak decay rates in
	// percentage points.
	CPUPeakDecay = 0.4
	MemPeakDecay = 0.25
)

// State is the dashboard view model. It is owned by the UI goroutine; nothing
// else reads or writes it.
//
// Exported fields are read by the renderer. Mode, palette input, cursors and
// the detail modal change only through methods so their invariants hold.
type State struct {
	Selected  Pane
	Data      collect.Snapshot
	HasData   bool
	LastError string
	Status    string

	History *History
	Layout  LayoutState
	Compact bool
	Loading bool

	// Spinner cycles through [0, SpinnerFrames).
	Spinner int
	// Flash counts down from FlashTicks after each snapshot.
	Flash int

	CPUDelta  float64
	MemDelta  float64
	DiskDelta float64

	CPUPeak  float64
	MemPeak  float64
	DiskPeak float64
	PeakHold int

	LayoutMode LayoutMode
	Alerts     config.AlertsConfig

	mode    Mode
	input   []rune
	cursors [len(Panes)]int
	detail  *DetailModal
}

// New returns the start-up state: Git focused, loading, default layout and
// alert thresholds, empty trends.
func New() *State {
	return &State{
		Selected:   PaneGit,
		Data:       collect.Snapshot{Git: collect.DefaultGitStatus()},
		History:    NewHistory(HistorySize),
		Layout:     DefaultLayout(),
		Loading:    true,
		LayoutMode: LayoutAuto,
		Alerts:     config.DefaultAlerts(),
	}
}

// ApplyConfig takes the UI-facing parts of cfg: the system layout hint and
// the alert thresholds.
func (s *State) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	s.LayoutMode = ParseLayoutMode(cfg.SystemUI.LayoutMode)
	s.Alerts = cfg.Alerts
}

// Mode reports the current input mode.
func (s *State) Mode() Mode {
	return s.mode
}

// UpdateData replaces the held snapshot and refreshes everything derived
// from it: deltas, trends, peaks, the refresh flash and list cursors. It also
// clears LastError and Loading.
func (s *State) UpdateData(snap collect.Snapshot) {
	prev := s.Data.System
	prevCPU := prev.CPUUsage
	prevMem := prev.MemPercent()
	prevDisk := prev.DiskPercent()

	cpu := wholePercent(snap.System.CPUUsage)
	mem := wholePercent(snap.System.MemPercent())
	disk := wholePercent(snap.System.DiskPercent())
	s.History.Push(cpu, mem, disk)

	s.Data = snap
	s.HasData = true
	s.normalizeCursors()
	s.LastError = ""
	s.Loading = false

	s.CPUDelta = snap.System.CPUUsage - prevCPU
	s.MemDelta = mem - prevMem
	s.DiskDelta = disk - prevDisk
	s.Flash = FlashTicks

	s.CPUPeak = math.Max(s.CPUPeak, snap.System.CPUUsage)
	s.MemPeak = math.Max(s.MemPeak, mem)
	s.DiskPeak = math.Max(s.DiskPeak, disk)
	s.PeakHold = PeakHoldTicks
}

// Tick advances the spinner and the flash and peak countdowns. Once the hold
// expires CPU and memory peaks sink toward zero; the disk peak only moves on
// new data.
func (s *State) Tick() {
	s.Spinner = (s.Spinner + 1) % SpinnerFrames
	if s.Flash > 0 {
		s.Flash--
	}
	if s.PeakHold > 0 {
		s.PeakHold--
		return
	}
	s.CPUPeak = math.Max(s.CPUPeak-CPUPeakDecay, 0)
	s.MemPeak = math.Max(s.MemPeak-MemPeakDecay, 0)
}

// SetError records a user-facing failure for the footer.
func (s *State) SetError(msg string) {
	s.LastError = msg
}

// SetStatus records a transient informational message for the footer.
func (s *State) SetStatus(msg string) {
	s.Status = msg
}

// ToggleCompact flips compact mode and reports the new value.
func (s *State) ToggleCompact() bool {
	s.Compact = !s.Compact
	return s.Compact
}

// Focus selects a pane directly.
func (s *State) Focus(p Pane) {
	s.Selected = p
}

// wholePercent clamps v to [0, 100] and drops the fraction.
func wholePercent(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Trunc(math.Min(math.Max(v, 0), 100))
}
