package config

import (
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("CHECKLIST_FILE"); v != "" {
		cfg.ChecklistFile = v
	}
	if v := os.Getenv("CHECKLIST_SETTINGS"); v != "" {
		cfg.SettingsFile = v
	}
	if v := os.Getenv("CHECKLIST_REMINDER_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.ReminderIntervalSeconds = i
		}
	}
	if v := os.Getenv("CHECKLIST_HISTORY_DEPTH"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.HistoryDepth = i
		}
	}
	if v := os.Getenv("CHECKLIST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CHECKLIST_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("CHECKLIST_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
	}
}

// boolFromString interprets common truthy strings.
func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
