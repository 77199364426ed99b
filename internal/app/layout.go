package app

// Layout bounds. Column percentages stay in [MinColPct, MaxColPct] and each
// row's three columns sum to 100; the top row's share of the body stays in
// [MinTopPct, MaxTopPct].
const (
	MinColPct  = 20
	MaxColPct  = 60
	MinTopPct  = 35
	MaxTopPct  = 75
	ResizeStep = 2
)

// LayoutState holds the user-adjustable pane proportions.
type LayoutState struct {
	TopHeightPct int
	TopCols      [3]int
	BottomCols   [3]int
}

// DefaultLayout is the start-up split.
func DefaultLayout() LayoutState {
	return LayoutState{
		TopHeightPct: 56,
		TopCols:      [3]int{33, 33, 34},
		BottomCols:   [3]int{34, 33, 33},
	}
}

// columnRule names, for the focused column, the column that gives up or
// takes the space and the column that absorbs any leftover so the row still
// sums to 100.
type columnRule struct {
	donor int
	pivot int
}

// columnRules is indexed by column. The last column trades with the middle
// one; the other two trade with the last.
var columnRules = [3]columnRule{
	{donor: 2, pivot: 1},
	{donor: 2, pivot: 1},
	{donor: 1, pivot: 0},
}

// column returns the grid column of p.
func column(p Pane) int {
	return int(p) % 3
}

// ResizeFocused widens (delta > 0) or narrows the focused pane's column by
// ResizeStep. Only the sign of delta matters. A resize that would push either
// the focused or the donor column out of bounds changes nothing.
func (s *State) ResizeFocused(delta int) {
	step := signedStep(delta)
	if s.Selected <= PanePRs {
		adjustThreeCols(&s.Layout.TopCols, column(s.Selected), step)
		return
	}
	adjustThreeCols(&s.Layout.BottomCols, column(s.Selected), step)
}

// ResizeRows grows (delta > 0) or shrinks the top row by ResizeStep, clamped
// to [MinTopPct, MaxTopPct].
func (s *State) ResizeRows(delta int) {
	s.Layout.TopHeightPct = clampInt(s.Layout.TopHeightPct+signedStep(delta), MinTopPct, MaxTopPct)
}

func adjustThreeCols(cols *[3]int, idx, step int) {
	rule := columnRules[idx]

	target := cols[idx] + step
	if !inColBounds(target) {
		return
	}
	donor := cols[rule.donor] - step
	if !inColBounds(donor) {
		return
	}

	cols[idx] = target
	cols[rule.donor] = donor

	if sum := cols[0] + cols[1] + cols[2]; sum != 100 {
		cols[rule.pivot] = clampInt(cols[rule.pivot]+100-sum, MinColPct, MaxColPct)
	}
}

func signedStep(delta int) int {
	if delta < 0 {
		return -ResizeStep
	}
	return ResizeStep
}

func inColBounds(v int) bool {
	return v >= MinColPct && v <= MaxColPct
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
