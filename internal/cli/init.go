package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/devdash/devdash/internal/config"
	"github.com/devdash/devdash/internal/errors"
	"github.com/devdash/devdash/internal/ui"
	"github.com/spf13/cobra"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Dir            string // Directory to write .devdash.yaml into
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
}

var initForce bool

// initCmd creates a new .devdash.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .devdash.yaml configuration",
	Long: `Create a .devdash.yaml file in the current directory with sensible defaults.

When run in a terminal you are asked for the refresh interval, the system
pane layout and the GitHub repository to watch. Otherwise defaults are used.

Examples:
  devdash init
  devdash init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(cmd.OutOrStdout(), InitOptions{
			Dir:            ".",
			Overwrite:      initForce,
			NonInteractive: !ui.IsTerminal(os.Stdin) || os.Getenv("CI") != "",
		})
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	rootCmd.AddCommand(initCmd)
}

// Init writes a new config file, asking before it replaces an existing one.
func Init(w io.Writer, opts InitOptions) error {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	configPath := filepath.Join(dir, config.ConfigFileName)

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if !opts.NonInteractive {
		if err := promptConfig(cfg); err != nil {
			return err
		}
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := config.Write(configPath, cfg); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s Created %s\n\n", ui.SymbolOK, configPath)
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintln(w, "  devdash           - Open the dashboard")
	fmt.Fprintln(w, "  devdash snapshot  - Check what each source reports")
	return nil
}

// promptConfig asks for the handful of settings most people change.
func promptConfig(cfg *config.Config) error {
	refresh := strconv.Itoa(cfg.RefreshSeconds)
	layout := cfg.SystemUI.LayoutMode
	repo := cfg.GitHub.Repo

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Refresh interval (seconds)").
				Description("How often every source is collected").
				Value(&refresh).
				Validate(validateRefresh),
			huh.NewSelect[string]().
				Title("System pane layout").
				Options(layoutOptions()...).
				Value(&layout),
			huh.NewInput().
				Title("GitHub repository (optional)").
				Description("owner/name; leave empty to use the repo's gh default").
				Placeholder("octocat/hello-world").
				Value(&repo).
				Validate(validateRepoSlug),
		),
	)
	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or run without a TTY to accept defaults")
	}

	cfg.RefreshSeconds, _ = strconv.Atoi(strings.TrimSpace(refresh))
	cfg.SystemUI.LayoutMode = layout
	cfg.GitHub.Repo = strings.TrimSpace(repo)
	return nil
}

// layoutLabels describes each system_ui.layout_mode value in the init form.
var layoutLabels = map[string]string{
	"auto":    "Auto (pick by pane size)",
	"compact": "Compact",
	"cockpit": "Cockpit",
}

func layoutOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(config.ValidLayoutModes))
	for _, mode := range config.ValidLayoutModes {
		label, ok := layoutLabels[mode]
		if !ok {
			label = mode
		}
		opts = append(opts, huh.NewOption(label, mode))
	}
	return opts
}

func validateRefresh(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fmt.Errorf("enter a whole number of seconds, at least 1")
	}
	return nil
}

func validateRepoSlug(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("use the owner/name form")
	}
	return nil
}
