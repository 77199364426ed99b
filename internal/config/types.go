package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Defaults used when the config file omits a key.
const (
	DefaultRefreshSeconds = 5
	DefaultCacheSeconds   = 120
	DefaultRepoPath       = "."
	DefaultLayoutMode     = "auto"
	DefaultTokenEnv       = "GITHUB_TOKEN"
	DefaultAPIBase        = "https://api.github.com"
	DefaultPluginName     = "plugin"
)

// Config represents the complete .devdash.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// RefreshSeconds is the collection interval. Values below 1 act as 1.
	RefreshSeconds int `yaml:"refresh_seconds" mapstructure:"refresh_seconds"`

	// RepoPath is the git working tree the repository pane reports on.
	RepoPath string `yaml:"repo_path" mapstructure:"repo_path"`

	// CacheSeconds is how long a successful AWS or PR result may stand in
	// for a failed one. Values below 1 act as 1.
	CacheSeconds int `yaml:"cache_seconds" mapstructure:"cache_seconds"`

	Alerts   AlertsConfig   `yaml:"alerts" mapstructure:"alerts"`
	SystemUI SystemUIConfig `yaml:"system_ui" mapstructure:"system_ui"`
	AWS      AWSConfig      `yaml:"aws" mapstructure:"aws"`
	GitHub   GitHubConfig   `yaml:"github" mapstructure:"github"`
	Plugins  []PluginConfig `yaml:"plugins" mapstructure:"plugins"`
}

// AlertsConfig holds warn/critical thresholds for the system pane.
// Each warn value must be strictly below its critical partner.
type AlertsConfig struct {
	CPUWarnPct    float64 `yaml:"cpu_warn_pct" mapstructure:"cpu_warn_pct"`
	CPUCritPct    float64 `yaml:"cpu_crit_pct" mapstructure:"cpu_crit_pct"`
	MemWarnPct    float64 `yaml:"mem_warn_pct" mapstructure:"mem_warn_pct"`
	MemCritPct    float64 `yaml:"mem_crit_pct" mapstructure:"mem_crit_pct"`
	StaleWarnSecs float64 `yaml:"stale_warn_secs" mapstructure:"stale_warn_secs"`
	StaleCritSecs float64 `yaml:"stale_crit_secs" mapstructure:"stale_crit_secs"`
}

// SystemUIConfig controls how the system pane lays itself out.
type SystemUIConfig struct {
	// LayoutMode is "auto", "compact" or "cockpit". Anything else means auto.
	LayoutMode string `yaml:"layout_mode" mapstructure:"layout_mode"`
}

// AWSConfig pins the region and profile used for the inventory pane.
// Empty values fall back to AWS_REGION / AWS_DEFAULT_REGION and AWS_PROFILE.
type AWSConfig struct {
	Region  string `yaml:"region,omitempty" mapstructure:"region"`
	Profile string `yaml:"profile,omitempty" mapstructure:"profile"`
}

// GitHubConfig controls the review-queue pane.
type GitHubConfig struct {
	// Repo is "owner/name". When empty the gh CLI is used directly.
	Repo string `yaml:"repo,omitempty" mapstructure:"repo"`

	// TokenEnv names the environment variable holding the API token.
	TokenEnv string `yaml:"token_env" mapstructure:"token_env"`

	// APIBase is the REST endpoint root, overridable for GitHub Enterprise.
	APIBase string `yaml:"api_base,omitempty" mapstructure:"api_base"`
}

// PluginConfig describes an external probe command.
type PluginConfig struct {
	Name    string   `yaml:"name" mapstructure:"name"`
	Command string   `yaml:"command" mapstructure:"command"`
	Args    []string `yaml:"args,omitempty" mapstructure:"args"`

	// Shell runs the command through `bash -lc` instead of exec'ing it directly.
	Shell bool `yaml:"shell,omitempty" mapstructure:"shell"`
}

// DefaultAlerts returns the stock alert thresholds.
func DefaultAlerts() AlertsConfig {
	return AlertsConfig{
		CPUWarnPct:    65,
		CPUCritPct:    85,
		MemWarnPct:    70,
		MemCritPct:    88,
		StaleWarnSecs: 2.5,
		StaleCritSecs: 5,
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:        CurrentConfigVersion,
		RefreshSeconds: DefaultRefreshSeconds,
		RepoPath:       DefaultRepoPath,
		CacheSeconds:   DefaultCacheSeconds,
		Alerts:         DefaultAlerts(),
		SystemUI:       SystemUIConfig{LayoutMode: DefaultLayoutMode},
		GitHub: GitHubConfig{
			TokenEnv: DefaultTokenEnv,
			APIBase:  DefaultAPIBase,
		},
		Plugins: []PluginConfig{},
	}
}

// RefreshInterval is the collection period, never shorter than one second.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(max(c.RefreshSeconds, 1)) * time.Second
}

// CacheWindow is the stale-data window, never shorter than one second.
func (c *Config) CacheWindow() time.Duration {
	return time.Duration(max(c.CacheSeconds, 1)) * time.Second
}

// Clone returns a deep copy so the collection loop and the UI never share slices.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.Plugins = make([]PluginConfig, len(c.Plugins))
	for i, p := range c.Plugins {
		p.Args = append([]string(nil), p.Args...)
		out.Plugins[i] = p
	}
	return &out
}
