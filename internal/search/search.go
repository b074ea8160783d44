// Package search finds tasks by case-insensitive substring match and
// filters task collections.
package search

import (
	"strings"

	"github.com/nibzard/checklist-go/internal/checklist"
)

// MatchType identifies which part of a task matched the query.
type MatchType string

const (
	MatchTask    MatchType = "task"
	MatchSubtask MatchType = "subtask"
	MatchNote    MatchType = "note"
)

// Result is a single search hit. Tasks are addressed by category id and
// position; Task points into the live checklist.
type Result struct {
	CategoryID   int
	CategoryName string
	TaskIndex    int
	Task         *checklist.Task
	MatchType    MatchType
}

// Options restricts a search.
type Options struct {
	// CategoryID limits the search to a single category when set.
	CategoryID *int
	// ExcludeCompleted skips completed tasks.
	ExcludeCompleted bool
}

// Tasks searches all tasks for the query. The task text is checked
// first, then subtask texts, then notes; a task contributes at most one
// result, attributed to the first part that matched. An empty or
// whitespace query matches nothing.
func Tasks(c *checklist.Checklist, query string, opts Options) []Result {
	var results []Result
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return results
	}

	for _, cat := range c.Categories {
		if opts.CategoryID != nil && cat.ID != *opts.CategoryID {
			continue
		}
		for i, task := range cat.Tasks {
			if opts.ExcludeCompleted && task.Completed {
				continue
			}
			matchType, ok := matchTask(task, q)
			if !ok {
				continue
			}
			results = append(results, Result{
				CategoryID:   cat.ID,
				CategoryName: cat.Name,
				TaskIndex:    i,
				Task:         task,
				MatchType:    matchType,
			})
		}
	}
	return results
}

// matchTask reports the first part of the task containing the query,
// short-circuiting so one task never yields duplicate results.
func matchTask(t *checklist.Task, q string) (MatchType, bool) {
	if strings.Contains(strings.ToLower(t.Text), q) {
		return MatchTask, true
	}
	for _, s := range t.Subtasks {
		if strings.Contains(strings.ToLower(s.Text), q) {
			return MatchSubtask, true
		}
	}
	for _, note := range t.Notes {
		if strings.Contains(strings.ToLower(note), q) {
			return MatchNote, true
		}
	}
	return "", false
}

// FilterByStatus returns tasks matching the completion state. A nil
// completed keeps every task.
func FilterByStatus(tasks []*checklist.Task, completed *bool) []*checklist.Task {
	if completed == nil {
		return tasks
	}
	var out []*checklist.Task
	for _, t := range tasks {
		if t.Completed == *completed {
			out = append(out, t)
		}
	}
	return out
}

// FilterByReminder returns the tasks with a reminder set, or without
// one when hasReminder is false.
func FilterByReminder(tasks []*checklist.Task, hasReminder bool) []*checklist.Task {
	var out []*checklist.Task
	for _, t := range tasks {
		if (t.Reminder != "") == hasReminder {
			out = append(out, t)
		}
	}
	return out
}
