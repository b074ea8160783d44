package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/checklist-go/internal/checklist"
)

var fixedNow = time.Date(2025, 6, 1, 12, 30, 0, 0, time.Local)

func fixture() *checklist.Checklist {
	c := checklist.New()

	work := c.AddCategory("Work")
	report := checklist.NewTask("Write report")
	report.Completed = true
	report.AddSubtask(checklist.Subtask{Text: "outline", Completed: true})
	report.AddSubtask(checklist.Subtask{Text: "polish"})
	report.AddNote("include charts")
	work.AddTask(report)
	work.AddTask(checklist.NewTask("Plan sprint"))

	c.AddCategory("Empty")
	return c
}

func newTestExporter(c *checklist.Checklist, sourceFile string) *Exporter {
	e := New(c, sourceFile)
	e.now = func() time.Time { return fixedNow }
	return e
}

func TestStringHeader(t *testing.T) {
	got := newTestExporter(fixture(), "/home/user/checklist.json").String(true)

	wantLines := []string{
		"# Checklist Export",
		"**Exported:** 2025-06-01 12:30:00",
		"**File:** checklist.json",
		"**Total Tasks:** 2",
		"**Completed:** 1 (50.0%)",
		"**Categories:** 2",
		"---",
	}
	for _, line := range wantLines {
		if !strings.Contains(got, line) {
			t.Errorf("output missing %q:\n%s", line, got)
		}
	}
}

func TestStringWithoutMetadata(t *testing.T) {
	got := newTestExporter(fixture(), "x.json").String(false)
	if strings.Contains(got, "# Checklist Export") {
		t.Errorf("metadata header should be omitted:\n%s", got)
	}
	if !strings.Contains(got, "## Work") {
		t.Errorf("category sections should still be written:\n%s", got)
	}
}

func TestStringTaskLayout(t *testing.T) {
	got := newTestExporter(fixture(), "").String(false)

	wantLines := []string{
		"- [x] Write report",
		"  - [x] outline",
		"  - [ ] polish",
		"    - include charts",
		"- [ ] Plan sprint",
	}
	for _, line := range wantLines {
		if !strings.Contains(got, line+"\n") {
			t.Errorf("output missing line %q:\n%s", line, got)
		}
	}
	if !strings.Contains(got, "**Progress:** 1/2 tasks (50.0% complete)") {
		t.Errorf("progress line missing:\n%s", got)
	}
}

func TestStringEmptyCategory(t *testing.T) {
	got := newTestExporter(fixture(), "").String(false)
	if !strings.Contains(got, "## Empty\n\n_No tasks_\n") {
		t.Errorf("empty category placeholder missing:\n%s", got)
	}
}

func TestStringOmitsFileLineWhenUnnamed(t *testing.T) {
	got := newTestExporter(fixture(), "").String(true)
	if strings.Contains(got, "**File:**") {
		t.Errorf("file line should be omitted for unnamed source:\n%s", got)
	}
}

func TestWriteCategory(t *testing.T) {
	c := fixture()
	path := filepath.Join(t.TempDir(), "work.md")

	e := newTestExporter(c, "")
	if err := e.WriteCategory(c.Categories[0].ID, path); err != nil {
		t.Fatalf("WriteCategory failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if !strings.Contains(got, "## Work") {
		t.Errorf("category heading missing:\n%s", got)
	}
	if strings.Contains(got, "## Empty") {
		t.Errorf("other categories should not be exported:\n%s", got)
	}

	if err := e.WriteCategory(999, path); err == nil {
		t.Errorf("unknown category should fail")
	}
}

func TestWriteCompletedOnly(t *testing.T) {
	c := fixture()
	path := filepath.Join(t.TempDir(), "done.md")

	if err := newTestExporter(c, "").WriteCompletedOnly(path); err != nil {
		t.Fatalf("WriteCompletedOnly failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if !strings.Contains(got, "# Completed Tasks") {
		t.Errorf("heading missing:\n%s", got)
	}
	if !strings.Contains(got, "- [x] Write report") {
		t.Errorf("completed task missing:\n%s", got)
	}
	if strings.Contains(got, "Plan sprint") {
		t.Errorf("pending task should be excluded:\n%s", got)
	}
	if strings.Contains(got, "## Empty") {
		t.Errorf("category with no completed tasks should be skipped:\n%s", got)
	}
}
