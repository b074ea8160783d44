// Package config tests configuration loading.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if !strings.HasSuffix(cfg.ChecklistFile, DefaultChecklistFile) {
		t.Errorf("ChecklistFile: got %q, want suffix %q", cfg.ChecklistFile, DefaultChecklistFile)
	}
	if !strings.HasSuffix(cfg.SettingsFile, DefaultSettingsFile) {
		t.Errorf("SettingsFile: got %q, want suffix %q", cfg.SettingsFile, DefaultSettingsFile)
	}
	if cfg.ReminderIntervalSeconds != DefaultReminderIntervalSeconds {
		t.Errorf("ReminderIntervalSeconds: got %d, want %d", cfg.ReminderIntervalSeconds, DefaultReminderIntervalSeconds)
	}
	if cfg.HistoryDepth != DefaultHistoryDepth {
		t.Errorf("HistoryDepth: got %d, want %d", cfg.HistoryDepth, DefaultHistoryDepth)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: got %q, want info", cfg.LogLevel)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checklist.toml")
	content := `
checklist_file = "/tmp/my-checklist.json"
reminder_interval_seconds = 60
history_depth = 50
log_level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{}
	setDefaults(cfg)
	if err := loadConfigFile(cfg, path); err != nil {
		t.Fatalf("loadConfigFile failed: %v", err)
	}

	if cfg.ChecklistFile != "/tmp/my-checklist.json" {
		t.Errorf("ChecklistFile: got %q", cfg.ChecklistFile)
	}
	if cfg.ReminderIntervalSeconds != 60 {
		t.Errorf("ReminderIntervalSeconds: got %d, want 60", cfg.ReminderIntervalSeconds)
	}
	if cfg.HistoryDepth != 50 {
		t.Errorf("HistoryDepth: got %d, want 50", cfg.HistoryDepth)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
	// Unset keys keep their defaults.
	if !strings.HasSuffix(cfg.SettingsFile, DefaultSettingsFile) {
		t.Errorf("SettingsFile should keep its default, got %q", cfg.SettingsFile)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CHECKLIST_FILE", "/tmp/env-checklist.json")
	t.Setenv("CHECKLIST_REMINDER_INTERVAL", "15")
	t.Setenv("CHECKLIST_HISTORY_DEPTH", "not-a-number")
	t.Setenv("CHECKLIST_LOG_TIMESTAMPS", "yes")

	cfg := &Config{}
	setDefaults(cfg)
	loadFromEnv(cfg)

	if cfg.ChecklistFile != "/tmp/env-checklist.json" {
		t.Errorf("ChecklistFile: got %q", cfg.ChecklistFile)
	}
	if cfg.ReminderIntervalSeconds != 15 {
		t.Errorf("ReminderIntervalSeconds: got %d, want 15", cfg.ReminderIntervalSeconds)
	}
	if cfg.HistoryDepth != DefaultHistoryDepth {
		t.Errorf("invalid env int should be ignored, got %d", cfg.HistoryDepth)
	}
	if !cfg.LogTimestamps {
		t.Errorf("LogTimestamps should be true")
	}
}

func TestFinalizeClampsValues(t *testing.T) {
	cfg := &Config{
		ChecklistFile:           "checklist.json",
		SettingsFile:            "settings.json",
		ReminderIntervalSeconds: -5,
		HistoryDepth:            0,
	}
	finalize(cfg)

	if cfg.ReminderIntervalSeconds != DefaultReminderIntervalSeconds {
		t.Errorf("ReminderIntervalSeconds: got %d, want %d", cfg.ReminderIntervalSeconds, DefaultReminderIntervalSeconds)
	}
	if cfg.HistoryDepth != DefaultHistoryDepth {
		t.Errorf("HistoryDepth: got %d, want %d", cfg.HistoryDepth, DefaultHistoryDepth)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tilde only", "~", home},
		{"tilde prefix", "~/data/checklist.json", filepath.Join(home, "data/checklist.json")},
		{"plain path", "/tmp/checklist.json", "/tmp/checklist.json"},
		{"relative path", "checklist.json", "checklist.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandPath(tt.in); got != tt.want {
				t.Errorf("expandPath(%q): got %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandPathEnvVar(t *testing.T) {
	t.Setenv("CHECKLIST_TEST_DIR", "/srv/data")
	if got := expandPath("$CHECKLIST_TEST_DIR/checklist.json"); got != "/srv/data/checklist.json" {
		t.Errorf("expandPath: got %q, want /srv/data/checklist.json", got)
	}
}

func TestBoolFromString(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1", true}, {"true", true}, {"YES", true}, {"on", true},
		{"0", false}, {"false", false}, {"", false}, {"maybe", false},
	}
	for _, tt := range tests {
		if got := boolFromString(tt.in); got != tt.want {
			t.Errorf("boolFromString(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}
