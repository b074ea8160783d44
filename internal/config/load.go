package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.checklist/checklist.toml)
// 3. Project config file (checklist.toml or .checklist.toml in the
//    current directory)
// 4. Environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if userFile := findUserConfigFile(); userFile != "" {
		if err := loadConfigFile(cfg, userFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userFile, err)
		}
	}

	if projectFile := findProjectConfigFile(); projectFile != "" {
		if err := loadConfigFile(cfg, projectFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectFile, err)
		}
	}

	loadFromEnv(cfg)

	finalize(cfg)
	return cfg, nil
}

// loadConfigFile merges TOML config from the given file into cfg.
func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// findUserConfigFile looks for the user-level config file.
func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, configDirName, "checklist.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// findProjectConfigFile looks for a config file in the current
// directory.
func findProjectConfigFile() string {
	for _, name := range []string{"checklist.toml", ".checklist.toml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// finalize expands and validates derived values.
func finalize(cfg *Config) {
	cfg.ChecklistFile = expandPath(cfg.ChecklistFile)
	cfg.SettingsFile = expandPath(cfg.SettingsFile)
	if cfg.ReminderIntervalSeconds <= 0 {
		cfg.ReminderIntervalSeconds = DefaultReminderIntervalSeconds
	}
	if cfg.HistoryDepth <= 0 {
		cfg.HistoryDepth = DefaultHistoryDepth
	}
}

// expandPath expands a leading ~ and environment variables in paths.
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		if p == "~" {
			return home
		}
		return filepath.Join(home, p[2:])
	}
	return p
}
