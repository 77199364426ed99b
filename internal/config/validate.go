package config

import (
	"fmt"
	"strings"

	"github.com/devdash/devdash/internal/errors"
)

// ValidLayoutModes lists the accepted system_ui.layout_mode values.
// Unknown values are not an error; they fall back to auto.
var ValidLayoutModes = []string{"auto", "compact", "cockpit"}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but devdash only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade devdash or lower the version field.")
	}

	if cfg.RefreshSeconds < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("refresh_seconds can't be negative (got %d)", cfg.RefreshSeconds),
			"Use a value of 1 or more; 5 is the default.")
	}
	if cfg.CacheSeconds < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("cache_seconds can't be negative (got %d)", cfg.CacheSeconds),
			"Use a value of 1 or more; 120 is the default.")
	}

	if err := validateAlerts(cfg.Alerts); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'alerts' section in your .devdash.yaml.")
	}

	if err := validateGitHub(cfg.GitHub); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'github' section in your .devdash.yaml.")
	}

	return nil
}

// validateAlerts enforces warn < crit for every threshold pair.
func validateAlerts(a AlertsConfig) error {
	pairs := []struct {
		warnKey, critKey string
		warn, crit       float64
	}{
		{"cpu_warn_pct", "cpu_crit_pct", a.CPUWarnPct, a.CPUCritPct},
		{"mem_warn_pct", "mem_crit_pct", a.MemWarnPct, a.MemCritPct},
		{"stale_warn_secs", "stale_crit_secs", a.StaleWarnSecs, a.StaleCritSecs},
	}
	for _, p := range pairs {
		if p.warn >= p.crit {
			return fmt.Errorf("%s (%g) must be < %s (%g)", p.warnKey, p.warn, p.critKey, p.crit)
		}
	}
	return nil
}

func validateGitHub(g GitHubConfig) error {
	if g.Repo != "" {
		parts := strings.Split(g.Repo, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return fmt.Errorf("github.repo '%s' should look like 'owner/name'", g.Repo)
		}
	}
	if strings.ContainsAny(g.TokenEnv, " =$") {
		return fmt.Errorf("github.token_env '%s' should be an environment variable name, not a value", g.TokenEnv)
	}
	return nil
}
