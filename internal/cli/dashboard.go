package cli

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/devdash/devdash/internal/collect"
	"github.com/devdash/devdash/internal/config"
	"github.com/devdash/devdash/internal/errors"
	"github.com/devdash/devdash/internal/logger"
	"github.com/devdash/devdash/internal/monitor"
	"github.com/devdash/devdash/internal/plugin"
	"github.com/devdash/devdash/internal/ui"
)

// MinInterval is the shortest refresh interval accepted on the command line.
const MinInterval = time.Second

// DashboardOptions holds the settings for one dashboard run.
type DashboardOptions struct {
	ConfigPath string        // Explicit config path; empty means discover
	Interval   time.Duration // Overrides refresh_seconds when non-zero
	Repo       string        // Overrides repo_path when non-empty
	LogFile    string        // Debug log destination
	NoWatch    bool          // Skip the config file watcher
}

// dashboardOptionsFromFlags turns the parsed flags into DashboardOptions.
func dashboardOptionsFromFlags() (DashboardOptions, error) {
	interval, err := parseInterval(intervalFlag)
	if err != nil {
		return DashboardOptions{}, err
	}
	return DashboardOptions{
		ConfigPath: cfgFile,
		Interval:   interval,
		Repo:       repoFlag,
		LogFile:    logFileFlag,
		NoWatch:    noWatchFlag,
	}, nil
}

// parseInterval accepts a Go duration ("5s", "1m") or a bare number of
// seconds. Empty means no override.
func parseInterval(flag string) (time.Duration, error) {
	flag = strings.TrimSpace(flag)
	if flag == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(flag)
	if err != nil {
		secs, convErr := strconv.Atoi(flag)
		if convErr != nil {
			return 0, errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
				"Try something like 5s, 30s or 1m")
		}
		d = time.Duration(secs) * time.Second
	}

	if d < MinInterval {
		return 0, errors.New(errors.ErrConfig,
			"Interval too short",
			"Minimum interval is 1s")
	}
	return d, nil
}

// applyOverrides folds command-line overrides into cfg.
func applyOverrides(cfg *config.Config, interval time.Duration, repo string) {
	if interval > 0 {
		cfg.RefreshSeconds = max(int(math.Ceil(interval.Seconds())), 1)
	}
	if repo != "" {
		cfg.RepoPath = repo
	}
}

// loadRuntimeConfig finds and loads the config, or defaults when none exists,
// and applies the overrides. The returned path is empty for defaults.
func loadRuntimeConfig(explicit string, interval time.Duration, repo string) (*config.Config, string, error) {
	cfg, path, err := config.LoadOrDefault(explicit)
	if err != nil {
		return nil, path, err
	}
	applyOverrides(cfg, interval, repo)
	return cfg, path, nil
}

// configLoader re-runs discovery and loading for the dashboard's reload
// command, keeping this run's overrides.
func configLoader(opts DashboardOptions) monitor.ConfigLoader {
	return func() (*config.Config, error) {
		cfg, _, err := loadRuntimeConfig(opts.ConfigPath, opts.Interval, opts.Repo)
		return cfg, err
	}
}

// dashboardCommand runs the full-screen dashboard until the user quits.
func dashboardCommand(opts DashboardOptions) error {
	if !ui.IsTerminal(os.Stdout) {
		return errors.New(errors.ErrInput,
			"devdash needs an interactive terminal",
			"Use 'devdash snapshot' or 'devdash snapshot --json' for scripted output")
	}

	cfg, path, err := loadRuntimeConfig(opts.ConfigPath, opts.Interval, opts.Repo)
	if err != nil {
		return err
	}

	// The dashboard owns the screen from here on; logs go to a file or nowhere.
	logCloser, err := logger.SetupFile(opts.LogFile)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot open log file "+opts.LogFile,
			"Check the path is writable")
	}
	defer logCloser.Close()

	log := logger.NewEnvLogger("[devdash]")
	if path != "" {
		log.Info("using config %s", path)
	} else {
		log.Info("no config file found, using defaults")
	}

	collector := collect.NewCollector()
	loop := collect.NewLoop(cfg, plugin.NewRunner(cfg.Plugins), collector.CollectAll)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	var changed <-chan struct{}
	if path != "" && !opts.NoWatch {
		w, err := config.NewWatcher(path, 0)
		if err != nil {
			log.Warn("config watch disabled: %v", err)
		} else {
			defer w.Close()
			changed = w.Events()
		}
	}

	model := monitor.NewModel(monitor.Options{
		Config:        cfg,
		Loop:          loop,
		Loader:        configLoader(opts),
		ConfigChanged: changed,
		Logger:        log,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()

	// Stop collection before the deferred watcher and log file close.
	cancel()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrExec,
			"Dashboard exited with an error",
			"Re-run with DEVDASH_DEBUG=1 --log-file devdash.log for details")
	}
	return nil
}
