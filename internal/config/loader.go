package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/devdash/devdash/internal/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".devdash.yaml"
	// GlobalConfigDir is the directory for global config, relative to home.
	GlobalConfigDir = ".config/devdash"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// Load reads and validates config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'devdash init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	cfg, err := parseConfig(v, path)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .devdash.yaml in current directory
// 3. .devdash.yaml in parent directories (stops at git root or home)
// 4. ~/.config/devdash/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	home, _ := os.UserHomeDir()
	if path := findUpward(cwd, home); path != "" {
		return path, nil
	}

	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// findUpward checks dir and its parents for ConfigFileName, stopping after a
// git root or before leaving home.
func findUpward(dir, home string) string {
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		if isGitRoot(dir) {
			return ""
		}
		parent := filepath.Dir(dir)
		if parent == dir || (home != "" && parent == home) {
			return ""
		}
		dir = parent
	}
}

// LoadOrDefault loads config from the found path, or returns defaults if there is none.
// The returned path is empty when defaults were used.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		return DefaultConfig(), "", nil
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Write serializes cfg as YAML to path, creating parent directories.
func Write(path string, cfg *Config) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to encode config",
			"This is a bug; please report it")
	}
	if err := enc.Close(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot create config directory "+dir,
				"Check directory permissions")
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot write "+path,
			"Check file permissions")
	}
	return nil
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	cfg.RepoPath = ExpandPath(cfg.RepoPath)
	if strings.TrimSpace(cfg.GitHub.TokenEnv) == "" {
		cfg.GitHub.TokenEnv = DefaultTokenEnv
	}
	if strings.TrimSpace(cfg.GitHub.APIBase) == "" {
		cfg.GitHub.APIBase = DefaultAPIBase
	}
	cfg.GitHub.APIBase = strings.TrimRight(cfg.GitHub.APIBase, "/")
	for i := range cfg.Plugins {
		if strings.TrimSpace(cfg.Plugins[i].Name) == "" {
			cfg.Plugins[i].Name = DefaultPluginName
		}
		cfg.Plugins[i] = expandPlugin(cfg.Plugins[i])
	}

	return cfg, nil
}

// setDefaults registers every default with viper so partially-specified
// nested sections (e.g. only alerts.cpu_warn_pct) keep the rest of their values.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("refresh_seconds", d.RefreshSeconds)
	v.SetDefault("repo_path", d.RepoPath)
	v.SetDefault("cache_seconds", d.CacheSeconds)
	v.SetDefault("alerts.cpu_warn_pct", d.Alerts.CPUWarnPct)
	v.SetDefault("alerts.cpu_crit_pct", d.Alerts.CPUCritPct)
	v.SetDefault("alerts.mem_warn_pct", d.Alerts.MemWarnPct)
	v.SetDefault("alerts.mem_crit_pct", d.Alerts.MemCritPct)
	v.SetDefault("alerts.stale_warn_secs", d.Alerts.StaleWarnSecs)
	v.SetDefault("alerts.stale_crit_secs", d.Alerts.StaleCritSecs)
	v.SetDefault("system_ui.layout_mode", d.SystemUI.LayoutMode)
	v.SetDefault("github.token_env", d.GitHub.TokenEnv)
	v.SetDefault("github.api_base", d.GitHub.APIBase)
}

// isGitRoot checks if a directory is a git repository root.
func isGitRoot(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}
