package app

// neighbours maps each pane to its destination for each direction. Blocked
// moves map a pane to itself.
var neighbours = map[Pane][4]Pane{
	//           Left        Right        Up         Down
	PaneGit:     {PaneGit, PaneSystem, PaneGit, PaneDocker},
	PaneSystem:  {PaneGit, PanePRs, PaneSystem, PaneAWS},
	PanePRs:     {PaneSystem, PanePRs, PanePRs, PanePlugins},
	PaneDocker:  {PaneDocker, PaneAWS, PaneGit, PaneDocker},
	PaneAWS:     {PaneDocker, PanePlugins, PaneSystem, PaneAWS},
	PanePlugins: {PaneAWS, PanePlugins, PanePRs, PanePlugins},
}

// SelectNext focuses the next pane in cycle order, wrapping around.
func (s *State) SelectNext() {
	s.Selected = Panes[(s.paneIndex()+1)%len(Panes)]
}

// SelectPrev focuses the previous pane in cycle order, wrapping around.
func (s *State) SelectPrev() {
	s.Selected = Panes[(s.paneIndex()+len(Panes)-1)%len(Panes)]
}

// SelectDirectional moves focus across the two-row grid.
func (s *State) SelectDirectional(dir NavDir) {
	next, ok := neighbours[s.Selected]
	if !ok || dir < NavLeft || dir > NavDown {
		return
	}
	s.Selected = next[dir]
}

func (s *State) paneIndex() int {
	for i, p := range Panes {
		if p == s.Selected {
			return i
		}
	}
	return 0
}
