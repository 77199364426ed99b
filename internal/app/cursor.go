package app

// listLen is the number of selectable records in a pane. Placeholder lines
// such as "No running containers" are not selectable. Git has no list.
func (s *State) listLen(p Pane) int {
	switch p {
	case PaneSystem:
		return len(s.Data.System.TopProcesses)
	case PanePRs:
		return len(s.Data.PRs.Items)
	case PaneDocker:
		return len(s.Data.Docker.Items)
	case PaneAWS:
		return len(s.Data.AWS.Items)
	case PanePlugins:
		return len(s.Data.Plugins)
	default:
		return 0
	}
}

// CanScrollList reports whether the focused pane has a list to move through.
// Vertical keys scroll when it does and change panes when it does not.
func (s *State) CanScrollList() bool {
	return s.listLen(s.Selected) > 0
}

// MoveListCursor moves the focused pane's cursor by delta, clamped to the
// list. It does nothing on an empty list.
func (s *State) MoveListCursor(delta int) {
	n := s.listLen(s.Selected)
	if n == 0 {
		return
	}
	s.cursors[s.Selected] = clampInt(s.cursors[s.Selected]+delta, 0, n-1)
}

// ListCursor returns the cursor for p, or false when p has nothing to select.
func (s *State) ListCursor(p Pane) (int, bool) {
	n := s.listLen(p)
	if n == 0 || p < PaneGit || p > PanePlugins {
		return 0, false
	}
	return min(s.cursors[p], n-1), true
}

func (s *State) normalizeCursors() {
	for _, p := range Panes {
		s.cursors[p] = clampCursor(s.cursors[p], s.listLen(p))
	}
}

func clampCursor(cur, n int) int {
	if n == 0 {
		return 0
	}
	return min(cur, n-1)
}
