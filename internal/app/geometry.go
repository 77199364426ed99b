package app

// Chrome sizes in terminal cells.
const (
	ShellInset        = 1
	HeaderRows        = 3
	HeaderRowsCompact = 2
	FooterRows        = 3
	// ShortTerminal is the shell height below which the header loses its
	// pane-chip row.
	ShortTerminal = 22
)

// Rect is a cell rectangle. X and Y are the top-left corner.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Frame is the screen split into chrome and panes.
type Frame struct {
	Shell  Rect
	Header Rect
	Body   Rect
	Footer Rect
	Panes  [len(Panes)]Rect
}

// Pane returns the rectangle for p.
func (f Frame) Pane(p Pane) Rect {
	if p < PaneGit || p > PanePlugins {
		return Rect{}
	}
	return f.Panes[p]
}

// ComputeLayout splits a width x height terminal. A one-cell margin surrounds
// everything; inside it sit the header, the body and the footer. The body is
// cut into two rows by TopHeightPct and each row into three columns by its
// percentages. Integer division rounds down and the last row or column takes
// the remainder, so the cells always tile the body exactly.
func ComputeLayout(width, height int, l LayoutState) Frame {
	shell := Rect{
		X: ShellInset,
		Y: ShellInset,
		W: max(width-2*ShellInset, 0),
		H: max(height-2*ShellInset, 0),
	}

	headerH := HeaderRows
	if shell.H < ShortTerminal {
		headerH = HeaderRowsCompact
	}
	headerH = min(headerH, shell.H)
	footerH := min(FooterRows, shell.H-headerH)
	bodyH := shell.H - headerH - footerH

	f := Frame{Shell: shell}
	f.Header = Rect{X: shell.X, Y: shell.Y, W: shell.W, H: headerH}
	f.Body = Rect{X: shell.X, Y: shell.Y + headerH, W: shell.W, H: bodyH}
	f.Footer = Rect{X: shell.X, Y: f.Body.Y + bodyH, W: shell.W, H: footerH}

	topH := bodyH * l.TopHeightPct / 100
	top := Rect{X: f.Body.X, Y: f.Body.Y, W: f.Body.W, H: topH}
	bottom := Rect{X: f.Body.X, Y: f.Body.Y + topH, W: f.Body.W, H: bodyH - topH}

	topCells := splitColumns(top, l.TopCols)
	bottomCells := splitColumns(bottom, l.BottomCols)
	copy(f.Panes[:3], topCells[:])
	copy(f.Panes[3:], bottomCells[:])
	return f
}

// PaneAt resolves a click at (x, y) to the pane under it.
func PaneAt(width, height int, l LayoutState, x, y int) (Pane, bool) {
	f := ComputeLayout(width, height, l)
	for _, p := range Panes {
		if f.Panes[p].Contains(x, y) {
			return p, true
		}
	}
	return 0, false
}

func splitColumns(row Rect, pct [3]int) [3]Rect {
	var cells [3]Rect
	x := row.X
	used := 0
	for i := range cells {
		w := row.W * pct[i] / 100
		if i == len(cells)-1 {
			w = row.W - used
		}
		cells[i] = Rect{X: x, Y: row.Y, W: w, H: row.H}
		x += w
		used += w
	}
	return cells
}
