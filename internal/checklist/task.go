package checklist

import (
	"encoding/json"
	"time"
)

// Priority represents a task priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority returns the priority for s, defaulting to medium for
// missing or unrecognized values.
func ParsePriority(s string) Priority {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s)
	default:
		return PriorityMedium
	}
}

// Rank returns the sort rank of the priority: high(0) < medium(1) < low(2).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

// TimestampLayout is the layout used for created and reminder
// timestamps. It matches ISO-8601 without a zone offset.
const TimestampLayout = "2006-01-02T15:04:05"

// timestampLayouts are the accepted layouts when parsing timestamps,
// most specific first.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	TimestampLayout,
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp in any of the accepted
// layouts. It returns the zero time and false if s does not parse.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Subtask is a single-level sub-item of a task. It has no identity
// beyond its position in the parent task's list.
type Subtask struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// ToggleCompletion flips the completion state of the subtask.
func (s *Subtask) ToggleCompletion() {
	s.Completed = !s.Completed
}

// Task is a unit of work with optional notes, subtasks, priority,
// due date, and reminder.
type Task struct {
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Created   string    `json:"created"`
	Notes     []string  `json:"notes,omitempty"`
	Subtasks  []Subtask `json:"subtasks,omitempty"`
	Priority  Priority  `json:"priority,omitempty"`
	DueDate   string    `json:"due_date,omitempty"`
	Reminder  string    `json:"reminder,omitempty"`
}

// NewTask creates a task with the given text. The created timestamp is
// assigned here, exactly once; it is never recomputed on reload.
func NewTask(text string) *Task {
	return &Task{
		Text:     text,
		Created:  time.Now().Format(TimestampLayout),
		Priority: PriorityMedium,
	}
}

// MarshalJSON writes the task with default-valued optional fields
// omitted. A medium priority is treated as the default and dropped.
func (t Task) MarshalJSON() ([]byte, error) {
	type alias Task
	a := alias(t)
	if a.Priority == PriorityMedium {
		a.Priority = ""
	}
	return json.Marshal(a)
}

// UnmarshalJSON reads a task and normalizes absent or unrecognized
// optional fields to their defaults.
func (t *Task) UnmarshalJSON(data []byte) error {
	type alias Task
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*t = Task(a)
	t.Priority = ParsePriority(string(t.Priority))
	return nil
}

// ToggleCompletion flips the completion state of the task. It has no
// cascading effect on subtasks.
func (t *Task) ToggleCompletion() {
	t.Completed = !t.Completed
}

// AddSubtask appends a subtask.
func (t *Task) AddSubtask(s Subtask) {
	t.Subtasks = append(t.Subtasks, s)
}

// RemoveSubtask removes the subtask at index. It returns the removed
// subtask and false if the index is out of range.
func (t *Task) RemoveSubtask(index int) (Subtask, bool) {
	if index < 0 || index >= len(t.Subtasks) {
		return Subtask{}, false
	}
	removed := t.Subtasks[index]
	t.Subtasks = append(t.Subtasks[:index], t.Subtasks[index+1:]...)
	return removed, true
}

// AddNote appends a note.
func (t *Task) AddNote(note string) {
	t.Notes = append(t.Notes, note)
}

// SubtaskCount returns the number of subtasks.
func (t *Task) SubtaskCount() int {
	return len(t.Subtasks)
}

// CompletedSubtaskCount returns the number of completed subtasks.
func (t *Task) CompletedSubtaskCount() int {
	count := 0
	for _, s := range t.Subtasks {
		if s.Completed {
			count++
		}
	}
	return count
}

// IsFullyCompleted reports whether the task and all its subtasks are
// completed. This is a derived read; completing a task never completes
// its subtasks and vice versa.
func (t *Task) IsFullyCompleted() bool {
	if !t.Completed {
		return false
	}
	for _, s := range t.Subtasks {
		if !s.Completed {
			return false
		}
	}
	return true
}

// ClearReminder removes the reminder from the task.
func (t *Task) ClearReminder() {
	t.Reminder = ""
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	if t.Notes != nil {
		c.Notes = make([]string, len(t.Notes))
		copy(c.Notes, t.Notes)
	}
	if t.Subtasks != nil {
		c.Subtasks = make([]Subtask, len(t.Subtasks))
		copy(c.Subtasks, t.Subtasks)
	}
	return &c
}
