package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/devdash/devdash/internal/errors"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile string
	noColor bool
)

// Dashboard flags, also read by snapshot.
var (
	intervalFlag string
	repoFlag     string
	logFileFlag  string
	noWatchFlag  bool
)

// rootCmd runs the dashboard when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "devdash",
	Short: "Terminal dashboard for your repo, host, containers, cloud and PRs",
	Long: `devdash is a full-screen terminal dashboard that shows, side by side:
the git status of a repository, live host metrics, running Docker containers,
EC2 instances, open pull requests and the output of your own plugin commands.

Data is collected in the background every few seconds; the UI never waits on it.

Keyboard shortcuts:
  Tab / Shift+Tab   Cycle panes
  Arrows / hjkl     Navigate panes, scroll lists
  1-6               Jump to pane
  Enter             Open details for the selected row
  + / -             Resize the focused column
  r / F5            Refresh now
  :                 Command palette (refresh, reload, compact, focus <pane>, quit)
  ?                 Help
  q / Esc / F10     Quit

Examples:
  devdash
  devdash --repo ~/src/api --interval 10s
  devdash --config ./team.devdash.yaml --no-watch`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupColor(noColor)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := dashboardOptionsFromFlags()
		if err != nil {
			return err
		}
		return dashboardCommand(opts)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .devdash.yaml, then ~/.config/devdash/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	addRuntimeFlags(rootCmd)
	rootCmd.Flags().StringVar(&logFileFlag, "log-file", "", "write debug logs to this file while the dashboard runs")
	rootCmd.Flags().BoolVar(&noWatchFlag, "no-watch", false, "do not reload when the config file changes")
}

// addRuntimeFlags registers the config overrides shared by the dashboard and
// snapshot.
func addRuntimeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&intervalFlag, "interval", "", "refresh interval, e.g. 5s or 1m (overrides refresh_seconds)")
	cmd.Flags().StringVar(&repoFlag, "repo", "", "repository to report on (overrides repo_path)")
}

// setupColor drops to plain text when asked to or when NO_COLOR is set.
func setupColor(disable bool) {
	if disable || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if isUnknownCommandError(err) {
			if name := extractUnknownCommand(err); name != "" {
				err = errors.New(errors.ErrInput,
					fmt.Sprintf("Unknown command %q", name),
					"Run 'devdash --help' to see available commands")
			}
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// isUnknownCommandError reports whether cobra rejected the command line
// itself rather than a command failing.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the quoted command name out of cobra's
// `unknown command "x" for "devdash"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
