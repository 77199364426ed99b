package app

import "strings"

// Pane identifies one of the six dashboard panes.
type Pane int

const (
	PaneGit Pane = iota
	PaneSystem
	PanePRs
	PaneDocker
	PaneAWS
	PanePlugins
)

// Panes lists every pane in focus-cycle order.
var Panes = [...]Pane{PaneGit, PaneSystem, PanePRs, PaneDocker, PaneAWS, PanePlugins}

// String returns the pane's short name, as accepted by ParsePane.
func (p Pane) String() string {
	switch p {
	case PaneGit:
		return "git"
	case PaneSystem:
		return "system"
	case PanePRs:
		return "prs"
	case PaneDocker:
		return "docker"
	case PaneAWS:
		return "aws"
	case PanePlugins:
		return "plugins"
	default:
		return "unknown"
	}
}

// Title is the pane's display heading.
func (p Pane) Title() string {
	switch p {
	case PaneGit:
		return "Git"
	case PaneSystem:
		return "System"
	case PanePRs:
		return "Pull Requests"
	case PaneDocker:
		return "Docker"
	case PaneAWS:
		return "AWS"
	case PanePlugins:
		return "Plugins"
	default:
		return "?"
	}
}

// Index is the pane's 1-based jump key.
func (p Pane) Index() int {
	return int(p) + 1
}

// ParsePane resolves a pane name or 1-based index. Input is expected to be
// lowercase already.
func ParsePane(s string) (Pane, bool) {
	switch s {
	case "1", "git":
		return PaneGit, true
	case "2", "system":
		return PaneSystem, true
	case "3", "prs", "pr":
		return PanePRs, true
	case "4", "docker":
		return PaneDocker, true
	case "5", "aws":
		return PaneAWS, true
	case "6", "plugins", "plugin":
		return PanePlugins, true
	default:
		return 0, false
	}
}

// NavDir is a directional navigation key.
type NavDir int

const (
	NavLeft NavDir = iota
	NavRight
	NavUp
	NavDown
)

// Mode is the input mode. The palette and the detail modal both replace
// normal key handling and are never open together.
type Mode int

const (
	ModeNormal Mode = iota
	ModeCommandPalette
	ModeDetailModal
)

// String returns a human-readable mode label.
func (m Mode) String() string {
	switch m {
	case ModeCommandPalette:
		return "palette"
	case ModeDetailModal:
		return "detail"
	default:
		return "normal"
	}
}

// LayoutMode is the system pane's rendering hint from config.
type LayoutMode int

const (
	LayoutAuto LayoutMode = iota
	LayoutCompact
	LayoutCockpit
)

// String returns the config spelling of the mode.
func (m LayoutMode) String() string {
	switch m {
	case LayoutCompact:
		return "compact"
	case LayoutCockpit:
		return "cockpit"
	default:
		return "auto"
	}
}

// ParseLayoutMode reads system_ui.layout_mode. Matching ignores case and
// surrounding space; unrecognised values mean auto.
func ParseLayoutMode(raw string) LayoutMode {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "compact":
		return LayoutCompact
	case "cockpit":
		return LayoutCockpit
	default:
		return LayoutAuto
	}
}

// AlertLevel grades a reading against a warn/critical pair.
type AlertLevel int

const (
	AlertOK AlertLevel = iota
	AlertWarn
	AlertCritical
)

// String returns a human-readable alert label.
func (a AlertLevel) String() string {
	switch a {
	case AlertWarn:
		return "warn"
	case AlertCritical:
		return "critical"
	default:
		return "ok"
	}
}

// DetailModal is the read-only popup opened with enter on a list item.
type DetailModal struct {
	Title string
	Lines []string
}
