// Package export renders checklists as Markdown. Export is one-way;
// the output is never read back.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nibzard/checklist-go/internal/checklist"
)

// timestampFormat is the human-readable export timestamp.
const timestampFormat = "2006-01-02 15:04:05"

// Exporter renders a checklist as Markdown.
type Exporter struct {
	checklist  *checklist.Checklist
	sourceFile string
	now        func() time.Time
}

// New creates an exporter. sourceFile names the checklist file in the
// header metadata and may be empty.
func New(c *checklist.Checklist, sourceFile string) *Exporter {
	return &Exporter{checklist: c, sourceFile: sourceFile, now: time.Now}
}

// String renders the full checklist, optionally with the metadata
// header.
func (e *Exporter) String(includeMetadata bool) string {
	var b strings.Builder
	if includeMetadata {
		e.writeHeader(&b)
	}
	for _, cat := range e.checklist.Categories {
		e.writeCategory(&b, cat, true)
	}
	return b.String()
}

// WriteFile renders the full checklist to path.
func (e *Exporter) WriteFile(path string, includeMetadata bool) error {
	if err := os.WriteFile(path, []byte(e.String(includeMetadata)), 0644); err != nil {
		return fmt.Errorf("write markdown export: %w", err)
	}
	return nil
}

// WriteCategory renders a single category to path.
func (e *Exporter) WriteCategory(categoryID int, path string) error {
	cat := e.checklist.Category(categoryID)
	if cat == nil {
		return fmt.Errorf("category %d not found", categoryID)
	}
	var b strings.Builder
	e.writeCategory(&b, cat, true)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write category export: %w", err)
	}
	return nil
}

// WriteCompletedOnly renders only the completed tasks, grouped by
// category, to path.
func (e *Exporter) WriteCompletedOnly(path string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Completed Tasks\n\n**Exported:** %s\n\n---\n\n", e.now().Format(timestampFormat))

	for _, cat := range e.checklist.Categories {
		completed := cat.CompletedTasks()
		if len(completed) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", cat.Name)
		for _, task := range completed {
			writeTask(&b, task)
		}
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write completed export: %w", err)
	}
	return nil
}

// writeHeader writes the export metadata and aggregate totals.
func (e *Exporter) writeHeader(b *strings.Builder) {
	fmt.Fprintf(b, "# Checklist Export\n\n")
	fmt.Fprintf(b, "**Exported:** %s\n", e.now().Format(timestampFormat))
	if e.sourceFile != "" {
		fmt.Fprintf(b, "**File:** %s\n", filepath.Base(e.sourceFile))
	}

	total := e.checklist.TotalTaskCount()
	completed := e.checklist.TotalCompletedCount()
	pct := 0.0
	if total > 0 {
		pct = float64(completed) / float64(total) * 100
	}
	fmt.Fprintf(b, "**Total Tasks:** %d\n", total)
	fmt.Fprintf(b, "**Completed:** %d (%.1f%%)\n", completed, pct)
	fmt.Fprintf(b, "**Categories:** %d\n", e.checklist.CategoryCount())
	b.WriteString("\n---\n\n")
}

// writeCategory writes one category section.
func (e *Exporter) writeCategory(b *strings.Builder, cat *checklist.Category, withProgress bool) {
	fmt.Fprintf(b, "## %s\n\n", cat.Name)

	if cat.TaskCount() == 0 {
		b.WriteString("_No tasks_\n\n")
		return
	}

	if withProgress {
		completed := len(cat.CompletedTasks())
		fmt.Fprintf(b, "**Progress:** %d/%d tasks (%.1f%% complete)\n\n",
			completed, cat.TaskCount(), cat.CompletionPercentage())
	}
	for _, task := range cat.Tasks {
		writeTask(b, task)
	}
	b.WriteString("\n")
}

// writeTask writes a task line with its subtasks (two-space indent) and
// notes (four-space indent).
func writeTask(b *strings.Builder, t *checklist.Task) {
	fmt.Fprintf(b, "- %s %s\n", checkbox(t.Completed), t.Text)
	for _, s := range t.Subtasks {
		fmt.Fprintf(b, "  - %s %s\n", checkbox(s.Completed), s.Text)
	}
	for _, note := range t.Notes {
		fmt.Fprintf(b, "    - %s\n", note)
	}
}

func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}
