// Package sorting orders task collections by a single key or by the
// smart composite ordering.
package sorting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nibzard/checklist-go/internal/checklist"
)

// Key selects the task ordering criterion.
type Key string

const (
	KeyCreated    Key = "created"
	KeyDueDate    Key = "due_date"
	KeyPriority   Key = "priority"
	KeyCompletion Key = "completion"
	KeyAlphabet   Key = "a-z"
)

// missingDueDate sorts tasks without a due date last.
const missingDueDate = "9999-12-31"

// ParseKey validates a sort key name.
func ParseKey(s string) (Key, error) {
	switch Key(s) {
	case KeyCreated, KeyDueDate, KeyPriority, KeyCompletion, KeyAlphabet:
		return Key(s), nil
	default:
		return "", fmt.Errorf("unknown sort key %q, must be one of: created, due_date, priority, completion, a-z", s)
	}
}

// dueDate returns the task's due date with the missing-last sentinel.
func dueDate(t *checklist.Task) string {
	if t.DueDate == "" {
		return missingDueDate
	}
	return t.DueDate
}

// completionRank orders incomplete (0) before completed (1).
func completionRank(t *checklist.Task) int {
	if t.Completed {
		return 1
	}
	return 0
}

// compare returns a negative, zero, or positive value ordering a before
// b, equal, or after b for the given key.
func compare(a, b *checklist.Task, key Key) int {
	switch key {
	case KeyCreated:
		return strings.Compare(a.Created, b.Created)
	case KeyDueDate:
		return strings.Compare(dueDate(a), dueDate(b))
	case KeyPriority:
		return a.Priority.Rank() - b.Priority.Rank()
	case KeyCompletion:
		return completionRank(a) - completionRank(b)
	case KeyAlphabet:
		return strings.Compare(strings.ToLower(a.Text), strings.ToLower(b.Text))
	default:
		return 0
	}
}

// Sort orders tasks in place by the given key. Reversing flips the key
// comparison only; equal elements keep their original order either way.
func Sort(tasks []*checklist.Task, key Key, reverse bool) {
	sort.SliceStable(tasks, func(i, j int) bool {
		c := compare(tasks[i], tasks[j], key)
		if reverse {
			return c > 0
		}
		return c < 0
	})
}

// Sorted returns a sorted copy of tasks, leaving the input untouched.
func Sorted(tasks []*checklist.Task, key Key, reverse bool) []*checklist.Task {
	out := make([]*checklist.Task, len(tasks))
	copy(out, tasks)
	Sort(out, key, reverse)
	return out
}

// SmartSort orders tasks in place by the composite ordering: incomplete
// before completed, then by priority rank, then by due date with
// missing dates last. It is always ascending and not reversible.
func SmartSort(tasks []*checklist.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if ra, rb := completionRank(a), completionRank(b); ra != rb {
			return ra < rb
		}
		if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
			return ra < rb
		}
		return dueDate(a) < dueDate(b)
	})
}

// SmartSorted returns a smart-sorted copy of tasks.
func SmartSorted(tasks []*checklist.Task) []*checklist.Task {
	out := make([]*checklist.Task, len(tasks))
	copy(out, tasks)
	SmartSort(out)
	return out
}
