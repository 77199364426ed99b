package monitor

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/devdash/devdash/internal/app"
	"github.com/devdash/devdash/internal/collect"
	"github.com/devdash/devdash/internal/config"
	"github.com/devdash/devdash/internal/logger"
)

// spinnerInterval is the animation frame rate.
const spinnerInterval = 120 * time.Millisecond

// ConfigLoader re-reads the configuration for the reload command.
type ConfigLoader func() (*config.Config, error)

// Options configures a Model.
type Options struct {
	// Config is the configuration the loop was started with.
	Config *config.Config
	// Loop is the running collection loop. Its channels are the only link
	// between the UI and collection.
	Loop *collect.Loop
	// Loader re-reads the config for `reload` and file-change events. When
	// nil, reload reports a failure.
	Loader ConfigLoader
	// ConfigChanged, when non-nil, delivers a value each time the config
	// file changes on disk.
	ConfigChanged <-chan struct{}
	// Logger receives debug output. Defaults to logger.Noop().
	Logger logger.Logger
	// Now is the clock used for the header and freshness readouts.
	Now func() time.Time
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	state   *app.State
	loop    *collect.Loop
	loader  ConfigLoader
	changed <-chan struct{}
	log     logger.Logger
	now     func() time.Time

	width    int
	height   int
	showHelp bool
	quitting bool

	// Detail modal viewport for long records
	detailViewport viewport.Model
	viewportReady  bool
}

// loadingMsg mirrors the loop's loading flag.
type loadingMsg bool

// snapshotMsg carries one completed collection cycle.
type snapshotMsg collect.Snapshot

// spinnerTickMsg signals an animation frame.
type spinnerTickMsg time.Time

// configChangedMsg signals that the config file changed on disk.
type configChangedMsg struct{}

// NewModel creates the dashboard model.
func NewModel(opts Options) Model {
	state := app.New()
	state.ApplyConfig(opts.Config)

	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return Model{
		state:   state,
		loop:    opts.Loop,
		loader:  opts.Loader,
		changed: opts.ConfigChanged,
		log:     log,
		now:     now,
	}
}

// State exposes the underlying state, mainly for tests.
func (m Model) State() *app.State {
	return m.state
}

// Init starts the spinner, arms the loop channel waits and requests the
// first collection cycle.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		spinnerTickCmd(),
		waitForLoading(m.loop.Loading),
		waitForSnapshot(m.loop.Snapshots),
		waitForConfigChange(m.changed),
		m.initialRefreshCmd(),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd := m.HandleKeyMsg(msg)
		return m, cmd

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()
		return m, nil

	case spinnerTickMsg:
		m.state.Tick()
		return m, spinnerTickCmd()

	case loadingMsg:
		m.state.Loading = bool(msg)
		return m, waitForLoading(m.loop.Loading)

	case snapshotMsg:
		snap := collect.Snapshot(msg)
		m.state.UpdateData(snap)
		m.log.Debug("snapshot %s applied (%d errors)", snap.CycleID, len(snap.Errors()))
		return m, waitForSnapshot(m.loop.Snapshots)

	case configChangedMsg:
		m.reload()
		return m, waitForConfigChange(m.changed)
	}

	return m, nil
}

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}

	base := m.renderDashboard()
	switch {
	case m.state.Detail() != nil:
		return m.renderDetailOverlay(base)
	case m.showHelp:
		return m.renderHelpOverlay(base)
	}
	return base
}

// handleMouse focuses the pane under a left click and scrolls the focused
// list with the wheel. Overlays swallow mouse input.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.state.Mode() != app.ModeNormal || m.showHelp {
		return
	}
	if msg.Action != tea.MouseActionPress {
		return
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		if p, ok := app.PaneAt(m.width, m.height, m.state.Layout, msg.X, msg.Y); ok {
			m.state.Focus(p)
		}
	case tea.MouseButtonWheelUp:
		m.state.MoveListCursor(-1)
	case tea.MouseButtonWheelDown:
		m.state.MoveListCursor(1)
	}
}

// resizeViewport sizes the detail viewport to the modal's body area.
func (m *Model) resizeViewport() {
	w, h := detailBodySize(m.width, m.height)
	if !m.viewportReady {
		m.detailViewport = viewport.New(w, h)
		m.viewportReady = true
		return
	}
	m.detailViewport.Width = w
	m.detailViewport.Height = h
}

// spinnerTickCmd schedules the next animation frame.
func spinnerTickCmd() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

// waitForLoading blocks on the loop's loading channel.
func waitForLoading(ch <-chan bool) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return nil
		}
		return loadingMsg(v)
	}
}

// waitForSnapshot blocks on the loop's snapshot channel.
func waitForSnapshot(ch <-chan collect.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg(snap)
	}
}

// waitForConfigChange blocks on the file watcher, if there is one.
func waitForConfigChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return configChangedMsg{}
	}
}

// initialRefreshCmd asks the loop for a cycle straight away instead of
// waiting for the first tick.
func (m Model) initialRefreshCmd() tea.Cmd {
	loop := m.loop
	return func() tea.Msg {
		loop.TrySend(collect.RefreshNow{})
		return nil
	}
}
