// Package settings persists user preferences. Loading is best-effort:
// a corrupt or unreadable settings file silently degrades to defaults
// and must never block startup.
package settings

import (
	"encoding/json"
	"os"
)

// DefaultInputBGColor is the default input box background color.
const DefaultInputBGColor = "white"

// MaxRecentFiles caps the recent-files list.
const MaxRecentFiles = 10

// Settings holds the persisted user preferences.
type Settings struct {
	InputBGColor string   `json:"input_bg_color"`
	RecentFiles  []string `json:"recent_files"`
}

// defaults returns the default settings.
func defaults() Settings {
	return Settings{
		InputBGColor: DefaultInputBGColor,
		RecentFiles:  []string{},
	}
}

// Manager loads, mutates, and saves settings at a fixed path.
type Manager struct {
	path     string
	settings Settings
}

// NewManager creates a settings manager and loads the file at path,
// merging it into defaults. Recent-file entries whose backing file no
// longer exists are pruned immediately and the pruned list is persisted
// back.
func NewManager(path string) *Manager {
	m := &Manager{path: path, settings: defaults()}
	m.load()
	m.CleanupRecentFiles()
	return m
}

// load merges the settings file into the defaults. Errors are ignored.
func (m *Manager) load() {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return
	}
	// Decoding over the defaults leaves absent fields at their
	// default values.
	loaded := defaults()
	if err := json.Unmarshal(data, &loaded); err != nil {
		return
	}
	if loaded.RecentFiles == nil {
		loaded.RecentFiles = []string{}
	}
	m.settings = loaded
}

// Save writes the settings file. Settings persistence is best-effort;
// the error is returned for logging but callers need not act on it.
func (m *Manager) Save() error {
	data, err := json.MarshalIndent(m.settings, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(m.path, data, 0644)
}

// InputBGColor returns the input box background color.
func (m *Manager) InputBGColor() string {
	return m.settings.InputBGColor
}

// SetInputBGColor updates the input box background color and saves.
func (m *Manager) SetInputBGColor(color string) {
	m.settings.InputBGColor = color
	_ = m.Save()
}

// RecentFiles returns the recent files, most recently used first.
func (m *Manager) RecentFiles() []string {
	files := make([]string, len(m.settings.RecentFiles))
	copy(files, m.settings.RecentFiles)
	return files
}

// AddRecentFile moves path to the front of the recent-files list,
// deduplicating and capping at MaxRecentFiles, then saves.
func (m *Manager) AddRecentFile(path string) {
	files := []string{path}
	for _, f := range m.settings.RecentFiles {
		if f == path {
			continue
		}
		files = append(files, f)
	}
	if len(files) > MaxRecentFiles {
		files = files[:MaxRecentFiles]
	}
	m.settings.RecentFiles = files
	_ = m.Save()
}

// RemoveRecentFile removes path from the recent-files list. It returns
// false if the path was not present.
func (m *Manager) RemoveRecentFile(path string) bool {
	for i, f := range m.settings.RecentFiles {
		if f == path {
			m.settings.RecentFiles = append(m.settings.RecentFiles[:i], m.settings.RecentFiles[i+1:]...)
			_ = m.Save()
			return true
		}
	}
	return false
}

// ClearRecentFiles empties the recent-files list and saves.
func (m *Manager) ClearRecentFiles() {
	m.settings.RecentFiles = []string{}
	_ = m.Save()
}

// ExistingRecentFiles returns the recent files that still exist on the
// filesystem, without mutating the stored list.
func (m *Manager) ExistingRecentFiles() []string {
	existing := []string{}
	for _, f := range m.settings.RecentFiles {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	return existing
}

// CleanupRecentFiles prunes entries whose backing file no longer
// exists, persisting the pruned list when anything was removed. It
// returns the number of entries removed.
func (m *Manager) CleanupRecentFiles() int {
	existing := m.ExistingRecentFiles()
	removed := len(m.settings.RecentFiles) - len(existing)
	if removed > 0 {
		m.settings.RecentFiles = existing
		_ = m.Save()
	}
	return removed
}

// ResetToDefaults restores all settings to their defaults and saves.
func (m *Manager) ResetToDefaults() {
	m.settings = defaults()
	_ = m.Save()
}
