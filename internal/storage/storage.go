// Package storage persists checklists to disk and recovers them from
// backups when the primary file is damaged.
package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nibzard/checklist-go/internal/checklist"
)

// BackupSuffix is appended to the checklist path for the automatic
// backup written before each load attempt.
const BackupSuffix = ".backup"

// DefaultCategories are the categories seeded into a brand-new
// checklist when no file exists yet.
var DefaultCategories = []string{"Slack", "Discord", "Twitter", "Telegram", "General"}

// LoadStatus describes how a checklist was obtained.
type LoadStatus int

const (
	// LoadedFile means the primary file loaded cleanly.
	LoadedFile LoadStatus = iota
	// LoadedDefault means no file existed and a default checklist was created.
	LoadedDefault
	// LoadedBackup means the primary file was unreadable and the
	// checklist was recovered from its backup sibling.
	LoadedBackup
)

// LoadResult is the outcome of a successful load.
type LoadResult struct {
	Checklist *checklist.Checklist
	Status    LoadStatus
	// Warning holds the primary-file error when Status is LoadedBackup.
	Warning error
}

// Storage manages the checklist file at a single path.
type Storage struct {
	path string
}

// New creates a storage manager for the given checklist file path.
func New(path string) *Storage {
	return &Storage{path: path}
}

// Path returns the current checklist file path.
func (s *Storage) Path() string {
	return s.path
}

// SetPath points the storage at a different checklist file.
func (s *Storage) SetPath(path string) {
	s.path = path
}

// FileExists reports whether the checklist file exists.
func (s *Storage) FileExists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// FileSize returns the size of the checklist file in bytes, or 0 if it
// does not exist.
func (s *Storage) FileSize() int64 {
	info, err := os.Stat(s.path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// LastModified returns the modification time of the checklist file, or
// the zero time if it does not exist.
func (s *Storage) LastModified() time.Time {
	info, err := os.Stat(s.path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// Load reads the checklist file. A missing file yields a default
// checklist. Before any load attempt the non-empty primary file is
// copied to its .backup sibling on a best-effort basis. When the
// primary file cannot be read, parsed, or validated, Load falls back to
// the backup sibling; if that is not loadable either, the original
// error is returned and the caller decides what state to keep.
func (s *Storage) Load() (*LoadResult, error) {
	info, err := os.Stat(s.path)
	if os.IsNotExist(err) {
		return &LoadResult{Checklist: s.CreateDefaultChecklist(), Status: LoadedDefault}, nil
	}

	// Backup failure must never block a load.
	if err == nil && info.Size() > 0 {
		_ = copyFile(s.path, s.path+BackupSuffix)
	}

	c, err := loadFile(s.path)
	if err != nil {
		if recovered, backupErr := loadFile(s.path + BackupSuffix); backupErr == nil {
			return &LoadResult{Checklist: recovered, Status: LoadedBackup, Warning: err}, nil
		}
		return nil, err
	}
	return &LoadResult{Checklist: c, Status: LoadedFile}, nil
}

// loadFile reads, validates, and decodes a single checklist file.
func loadFile(path string) (*checklist.Checklist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read checklist file: %w", err)
	}
	if _, err := decodeDocument(data); err != nil {
		return nil, err
	}

	var c checklist.Checklist
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode checklist file: %w", err)
	}
	normalize(&c)
	return &c, nil
}

// normalize repairs the loaded checklist: a missing or dangling current
// category id is re-pointed at the first category, or cleared when
// there are none.
func normalize(c *checklist.Checklist) {
	if c.Categories == nil {
		c.Categories = []*checklist.Category{}
	}
	if c.CurrentCategoryID != nil && c.Category(*c.CurrentCategoryID) != nil {
		return
	}
	if len(c.Categories) > 0 {
		id := c.Categories[0].ID
		c.CurrentCategoryID = &id
	} else {
		c.CurrentCategoryID = nil
	}
}

// Save serializes the checklist and overwrites the file. Failures are
// reported to the caller, never retried.
func (s *Storage) Save(c *checklist.Checklist) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal checklist: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write checklist file: %w", err)
	}
	return nil
}

// Backup copies the checklist file to a sibling with the given suffix.
// An empty suffix selects a timestamped "backup_YYYYMMDD_HHMMSS" name.
func (s *Storage) Backup(suffix string) (string, error) {
	if !s.FileExists() {
		return "", fmt.Errorf("checklist file does not exist: %s", s.path)
	}
	if suffix == "" {
		suffix = "backup_" + time.Now().Format("20060102_150405")
	}
	backupPath := s.path + "." + suffix
	if err := copyFile(s.path, backupPath); err != nil {
		return "", fmt.Errorf("create backup: %w", err)
	}
	return backupPath, nil
}

// CreateDefaultChecklist builds a checklist with the default categories
// and the first one selected.
func (s *Storage) CreateDefaultChecklist() *checklist.Checklist {
	c := checklist.New()
	for _, name := range DefaultCategories {
		c.AddCategory(name)
	}
	if c.CategoryCount() > 0 {
		c.SetCurrentCategory(c.Categories[0].ID)
	}
	return c
}

// copyFile copies src to dst as a plain byte copy.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
