// Package config handles engine configuration loading and defaults.
package config

import (
	"os"
	"path/filepath"
)

// Default values.
const (
	DefaultChecklistFile           = "checklist.json"
	DefaultSettingsFile            = "settings.json"
	DefaultReminderIntervalSeconds = 30
	DefaultHistoryDepth            = 20
	DefaultLogLevel                = "info"
	DefaultLogFormat               = "text"
)

// configDirName is the per-user directory holding the default data
// files and the user config file.
const configDirName = ".checklist"

// Config holds the full engine configuration.
type Config struct {
	// Paths
	ChecklistFile string `toml:"checklist_file"`
	SettingsFile  string `toml:"settings_file"`

	// Reminder scheduler
	ReminderIntervalSeconds int `toml:"reminder_interval_seconds"`

	// Undo history
	HistoryDepth int `toml:"history_depth"`

	// Logging
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
}

// setDefaults fills cfg with default values. Data files default to the
// per-user config directory so the engine works with no config at all.
func setDefaults(cfg *Config) {
	dir := userDataDir()
	cfg.ChecklistFile = filepath.Join(dir, DefaultChecklistFile)
	cfg.SettingsFile = filepath.Join(dir, DefaultSettingsFile)
	cfg.ReminderIntervalSeconds = DefaultReminderIntervalSeconds
	cfg.HistoryDepth = DefaultHistoryDepth
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// userDataDir returns the per-user data directory, falling back to the
// working directory when the home directory is unknown.
func userDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, configDirName)
}
