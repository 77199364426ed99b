package monitor

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/devdash/devdash/internal/app"
	"github.com/devdash/devdash/internal/collect"
	"github.com/devdash/devdash/internal/errors"
	"github.com/devdash/devdash/internal/plugin"
)

// Palette outcome messages shown in the footer.
const (
	StatusConfigReloaded = "config reloaded"
	StatusCompactOn      = "compact mode on"
	StatusCompactOff     = "compact mode off"
	StatusFocusChanged   = "focus changed"
	ErrReloadClosed      = "reload channel closed"
	ErrNoConfigSource    = "reload failed: no config source"
)

// executeCommand runs a parsed palette command.
func (m *Model) executeCommand(cmd app.PaletteCommand) tea.Cmd {
	s := m.state
	m.log.Debug("palette command: %s", cmd.Kind)

	switch cmd.Kind {
	case app.CmdRefresh:
		if m.requestRefresh() {
			s.SetStatus(StatusRefreshQueued)
		}
	case app.CmdReload:
		m.reload()
	case app.CmdToggleCompact:
		if s.ToggleCompact() {
			s.SetStatus(StatusCompactOn)
		} else {
			s.SetStatus(StatusCompactOff)
		}
	case app.CmdFocus:
		s.Focus(cmd.Pane)
		s.SetStatus(StatusFocusChanged)
	case app.CmdHelp:
		s.SetStatus(app.PaletteHelp)
	case app.CmdQuit:
		m.quitting = true
		return tea.Quit
	}
	return nil
}

// reload re-reads the config, applies its UI settings and hands the new
// config and plugin set to the loop.
func (m *Model) reload() {
	s := m.state
	if m.loader == nil {
		s.SetError(ErrNoConfigSource)
		return
	}

	cfg, err := m.loader()
	if err != nil {
		m.log.Warn("config reload failed: %v", err)
		s.SetError("reload failed: " + errors.Summary(err))
		return
	}

	s.ApplyConfig(cfg)
	msg := collect.ReloadRuntime{Config: cfg, Plugins: plugin.NewRunner(cfg.Plugins)}
	if !m.loop.TrySend(msg) {
		s.SetError(ErrReloadClosed)
		return
	}
	s.SetStatus(StatusConfigReloaded)
}
