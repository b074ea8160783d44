package sorting

import (
	"reflect"
	"testing"

	"github.com/nibzard/checklist-go/internal/checklist"
)

// task builds a test task without going through NewTask so the created
// timestamp is deterministic.
func task(text, created string, completed bool, priority checklist.Priority, due string) *checklist.Task {
	return &checklist.Task{
		Text:      text,
		Created:   created,
		Completed: completed,
		Priority:  priority,
		DueDate:   due,
	}
}

func texts(tasks []*checklist.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Text
	}
	return out
}

func TestParseKey(t *testing.T) {
	for _, valid := range []string{"created", "due_date", "priority", "completion", "a-z"} {
		if _, err := ParseKey(valid); err != nil {
			t.Errorf("ParseKey(%q): unexpected error %v", valid, err)
		}
	}
	if _, err := ParseKey("size"); err == nil {
		t.Errorf("ParseKey(size) should fail")
	}
}

func TestSortByKey(t *testing.T) {
	tests := []struct {
		name    string
		key     Key
		reverse bool
		want    []string
	}{
		{"created", KeyCreated, false, []string{"oldest", "middle", "newest"}},
		{"created reversed", KeyCreated, true, []string{"newest", "middle", "oldest"}},
		{"due date missing last", KeyDueDate, false, []string{"middle", "newest", "oldest"}},
		{"priority high first", KeyPriority, false, []string{"newest", "oldest", "middle"}},
		{"completion pending first", KeyCompletion, false, []string{"oldest", "newest", "middle"}},
		{"alphabetical", KeyAlphabet, false, []string{"middle", "newest", "oldest"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := []*checklist.Task{
				// No due date, so it sorts last by due_date.
				task("oldest", "2025-01-01T00:00:00", false, checklist.PriorityMedium, ""),
				task("middle", "2025-02-01T00:00:00", true, checklist.PriorityLow, "2025-03-01"),
				task("newest", "2025-03-01T00:00:00", false, checklist.PriorityHigh, "2025-06-01"),
			}

			got := texts(Sorted(tasks, tt.key, tt.reverse))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("order: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortStability(t *testing.T) {
	// Equal keys keep their original relative order, reversed or not.
	tasks := []*checklist.Task{
		task("a", "2025-01-01T00:00:00", false, checklist.PriorityMedium, ""),
		task("b", "2025-01-01T00:00:00", false, checklist.PriorityMedium, ""),
		task("c", "2025-01-01T00:00:00", false, checklist.PriorityMedium, ""),
	}

	if got := texts(Sorted(tasks, KeyCreated, false)); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("ascending order: got %v, want [a b c]", got)
	}
	if got := texts(Sorted(tasks, KeyCreated, true)); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("reversed equal keys must keep original order: got %v, want [a b c]", got)
	}
}

func TestSortedLeavesInputUntouched(t *testing.T) {
	tasks := []*checklist.Task{
		task("b", "2025-02-01T00:00:00", false, checklist.PriorityMedium, ""),
		task("a", "2025-01-01T00:00:00", false, checklist.PriorityMedium, ""),
	}

	Sorted(tasks, KeyCreated, false)
	if got := texts(tasks); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("input mutated: got %v, want [b a]", got)
	}
}

func TestSmartSort(t *testing.T) {
	tasks := []*checklist.Task{
		task("done high", "", true, checklist.PriorityHigh, "2025-01-01"),
		task("pending low", "", false, checklist.PriorityLow, "2025-01-01"),
		task("pending high no due", "", false, checklist.PriorityHigh, ""),
		task("pending high due", "", false, checklist.PriorityHigh, "2025-02-01"),
		task("done low", "", true, checklist.PriorityLow, ""),
		task("pending medium", "", false, checklist.PriorityMedium, "2025-01-15"),
	}

	want := []string{
		// Pending before completed, then priority, then due date with
		// missing dates last.
		"pending high due",
		"pending high no due",
		"pending medium",
		"pending low",
		"done high",
		"done low",
	}
	if got := texts(SmartSorted(tasks)); !reflect.DeepEqual(got, want) {
		t.Errorf("smart order:\n got %v\nwant %v", got, want)
	}
}
