// Package app holds the dashboard's view model: which pane is focused, list
// cursors, layout proportions, the command palette, the detail modal, and the
// trend and peak trackers derived from each snapshot.
//
// State has no terminal or goroutine dependencies. The monitor package feeds
// it snapshots, ticks and key presses and renders whatever it holds, which
// keeps every transition testable without a TTY.
//
// Navigation grid:
//
//	┌──────────┬──────────┬──────────┐
//	│ 1 Git    │ 2 System │ 3 PRs    │
//	├──────────┼──────────┼──────────┤
//	│ 4 Docker │ 5 AWS    │ 6 Plugins│
//	└──────────┴──────────┴──────────┘
//
// Horizontal moves stop at the row edges and vertical moves swap rows within
// a column.
package app
