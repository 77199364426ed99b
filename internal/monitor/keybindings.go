package monitor

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/devdash/devdash/internal/app"
	"github.com/devdash/devdash/internal/collect"
	"github.com/devdash/devdash/internal/errors"
)

// Key bindings as constants for consistency.
const (
	KeyQuit        = "q"
	KeyQuitEsc     = "esc"
	KeyQuitF10     = "f10"
	KeyQuitCtrlC   = "ctrl+c"
	KeyPalette     = ":"
	KeyNextPane    = "tab"
	KeyPrevPane    = "shift+tab"
	KeyLeft        = "left"
	KeyRight       = "right"
	KeyUp          = "up"
	KeyDown        = "down"
	KeyLeftH       = "h"
	KeyRightL      = "l"
	KeyUpK         = "k"
	KeyDownJ       = "j"
	KeyShrinkCol   = "ctrl+left"
	KeyGrowCol     = "ctrl+right"
	KeyGrowTop     = "ctrl+up"
	KeyShrinkTop   = "ctrl+down"
	KeyGrow        = "+"
	KeyGrowAlt     = "="
	KeyShrink      = "-"
	KeyDetails     = "enter"
	KeyRefresh     = "r"
	KeyRefreshF5   = "f5"
	KeyToggleHelp  = "?"
	KeyCloseDetail = "esc"
)

// Status and error texts set from key handling.
const (
	StatusRefreshQueued = "refresh triggered"
	ErrRefreshClosed    = "refresh channel closed"
)

// HandleKeyMsg dispatches a key press according to the current mode and
// returns the command to run, if any.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if key == KeyQuitCtrlC {
		m.quitting = true
		return tea.Quit
	}

	switch m.state.Mode() {
	case app.ModeDetailModal:
		return m.handleDetailKey(msg)
	case app.ModeCommandPalette:
		return m.handlePaletteKey(msg)
	}

	// Help overlay: ? toggles, esc and q close, everything else is ignored.
	if m.showHelp {
		switch key {
		case KeyToggleHelp, KeyQuitEsc, KeyQuit:
			m.showHelp = false
		}
		return nil
	}

	return m.handleNormalKey(key)
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case KeyCloseDetail, KeyDetails, KeyQuit:
		m.state.CloseDetails()
		return nil
	}
	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return cmd
}

func (m *Model) handlePaletteKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.state.ExitCommandMode()
		return nil
	case tea.KeyBackspace:
		m.state.BackspaceCommandInput()
		return nil
	case tea.KeyEnter:
		cmd, err := m.state.SubmitCommand()
		if err != nil {
			m.state.SetError(errors.Summary(err))
			return nil
		}
		return m.executeCommand(cmd)
	case tea.KeySpace:
		m.state.AppendCommandInput(' ')
		return nil
	case tea.KeyRunes:
		if msg.Paste {
			for _, r := range strings.ReplaceAll(string(msg.Runes), "\n", " ") {
				m.state.AppendCommandInput(r)
			}
			return nil
		}
		for _, r := range msg.Runes {
			m.state.AppendCommandInput(r)
		}
	}
	return nil
}

func (m *Model) handleNormalKey(key string) tea.Cmd {
	s := m.state

	switch key {
	case KeyQuit, KeyQuitEsc, KeyQuitF10:
		m.quitting = true
		return tea.Quit

	case KeyPalette:
		s.EnterCommandMode()

	case KeyNextPane:
		s.SelectNext()
	case KeyPrevPane:
		s.SelectPrev()

	case KeyLeft, KeyLeftH:
		s.SelectDirectional(app.NavLeft)
	case KeyRight, KeyRightL:
		s.SelectDirectional(app.NavRight)
	case KeyUp, KeyUpK:
		m.scrollOrMove(-1, app.NavUp)
	case KeyDown, KeyDownJ:
		m.scrollOrMove(1, app.NavDown)

	case KeyShrinkCol, KeyShrink:
		s.ResizeFocused(-1)
	case KeyGrowCol, KeyGrow, KeyGrowAlt:
		s.ResizeFocused(1)
	case KeyGrowTop:
		s.ResizeRows(1)
	case KeyShrinkTop:
		s.ResizeRows(-1)

	case KeyDetails:
		s.OpenDetails()
		m.loadDetailViewport()

	case KeyRefresh, KeyRefreshF5:
		m.requestRefresh()

	case KeyToggleHelp:
		m.showHelp = true

	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '6' {
			if p, ok := app.ParsePane(key); ok {
				s.Focus(p)
			}
		}
	}
	return nil
}

// scrollOrMove moves the list cursor when the focused pane has a list and
// changes pane otherwise.
func (m *Model) scrollOrMove(delta int, dir app.NavDir) {
	if m.state.CanScrollList() {
		m.state.MoveListCursor(delta)
		return
	}
	m.state.SelectDirectional(dir)
}

// requestRefresh asks the loop for an immediate cycle without blocking.
func (m *Model) requestRefresh() bool {
	if !m.loop.TrySend(collect.RefreshNow{}) {
		m.state.SetError(ErrRefreshClosed)
		return false
	}
	m.state.Loading = true
	return true
}
