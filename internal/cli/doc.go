// Package cli implements the devdash command-line interface.
//
// The package is organized around Cobra commands, each delegating to a plain
// function that does the work so it can be tested without a terminal:
//
//	devdash               - Run the live dashboard
//	devdash snapshot      - Collect one cycle and print it (text or --json)
//	devdash init          - Create .devdash.yaml with defaults
//	devdash version       - Print build information
//	devdash completion    - Generate shell completion scripts
//
// # Flag Handling
//
// Global flags (--config, --no-color) are defined on the root command and
// available to all subcommands. Dashboard flags (--interval, --repo,
// --log-file, --no-watch) override the loaded config for this run only and
// are shared with snapshot where they make sense.
//
// # Dashboard Lifecycle
//
// The root command loads config, starts the collection loop in its own
// goroutine, optionally watches the config file for changes, and runs the
// Bubble Tea program. When the program exits the loop's context is
// cancelled and the watcher closed.
package cli
