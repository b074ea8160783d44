// Package app is the caller layer around the checklist engine: it owns
// policy guards, history snapshots, and the save-after-mutation rule.
package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/checklist-go/internal/checklist"
	"github.com/nibzard/checklist-go/internal/history"
	"github.com/nibzard/checklist-go/internal/reminder"
	"github.com/nibzard/checklist-go/internal/settings"
	"github.com/nibzard/checklist-go/internal/storage"
)

// Policy errors. These reject invalid input before any mutation; they
// are input-validation guards, not engine failures.
var (
	ErrEmptyCategoryName = errors.New("category name must not be empty")
	ErrEmptyTaskText     = errors.New("task text must not be empty")
	ErrEmptySubtaskText  = errors.New("subtask text must not be empty")
	ErrLastCategory      = errors.New("cannot delete the last remaining category")
	ErrNothingToUndo     = errors.New("nothing to undo")
	ErrNothingToRedo     = errors.New("nothing to redo")
)

// App wires the engine components together for a host UI or CLI.
type App struct {
	Storage   *storage.Storage
	Settings  *settings.Manager
	History   *history.Manager
	Checklist *checklist.Checklist

	logger *log.Logger

	// LoadStatus and LoadWarning describe how the checklist was
	// obtained at startup. LoadWarning is set when the primary file
	// was unloadable: either recovery from backup succeeded, or the
	// app fell back to an empty checklist.
	LoadStatus  storage.LoadStatus
	LoadWarning error
}

// New loads the checklist from st and builds the app around it. A
// completely unloadable file degrades to an empty checklist with the
// error kept in LoadWarning; startup itself never fails on bad data.
func New(st *storage.Storage, sm *settings.Manager, historyDepth int, logger *log.Logger) *App {
	a := &App{
		Storage:  st,
		Settings: sm,
		History:  history.New(historyDepth),
		logger:   logger,
	}

	res, err := st.Load()
	if err != nil {
		logger.Error("checklist load failed, starting empty", "path", st.Path(), "err", err)
		a.Checklist = checklist.New()
		a.LoadStatus = storage.LoadedDefault
		a.LoadWarning = err
		return a
	}

	a.Checklist = res.Checklist
	a.LoadStatus = res.Status
	if res.Status == storage.LoadedBackup {
		logger.Warn("checklist recovered from backup", "path", st.Path(), "err", res.Warning)
		a.LoadWarning = res.Warning
	}
	return a
}

// Save persists the checklist. Failures are reported, not retried.
func (a *App) Save() error {
	if err := a.Storage.Save(a.Checklist); err != nil {
		a.logger.Error("save failed", "path", a.Storage.Path(), "err", err)
		return err
	}
	return nil
}

// mutate records a pre-mutation snapshot, applies fn, and saves. fn
// returning an error aborts before anything is recorded.
func (a *App) mutate(description string, fn func() error) error {
	before := a.Checklist.Clone()
	if err := fn(); err != nil {
		return err
	}
	a.History.RecordState(before, description)
	return a.Save()
}

// AddCategory creates a category and selects it.
func (a *App) AddCategory(name string) (*checklist.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyCategoryName
	}
	var cat *checklist.Category
	err := a.mutate("Add category "+name, func() error {
		cat = a.Checklist.AddCategory(name)
		a.Checklist.SetCurrentCategory(cat.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// RemoveCategory deletes a category and everything it owns. Deleting
// the last remaining category is rejected. When the removed category
// was current, selection moves to the first remaining category.
func (a *App) RemoveCategory(id int) (*checklist.Category, error) {
	if a.Checklist.CategoryCount() <= 1 {
		return nil, ErrLastCategory
	}
	if a.Checklist.Category(id) == nil {
		return nil, fmt.Errorf("category %d not found", id)
	}
	var removed *checklist.Category
	err := a.mutate(fmt.Sprintf("Remove category %d", id), func() error {
		removed, _ = a.Checklist.RemoveCategory(id)
		cur := a.Checklist.CurrentCategoryID
		if cur != nil && *cur == id {
			if a.Checklist.CategoryCount() > 0 {
				a.Checklist.SetCurrentCategory(a.Checklist.Categories[0].ID)
			} else {
				a.Checklist.ClearCurrentCategory()
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// ReorderCategories repositions a category. Out-of-range or equal
// indices are a no-op returning false, with nothing recorded or saved.
func (a *App) ReorderCategories(fromIndex, toIndex int) (bool, error) {
	before := a.Checklist.Clone()
	if !a.Checklist.ReorderCategories(fromIndex, toIndex) {
		return false, nil
	}
	a.History.RecordState(before, "Reorder categories")
	return true, a.Save()
}

// SetCurrentCategory selects a category. Selection is presentation
// state; it is persisted but not recorded in history.
func (a *App) SetCurrentCategory(id int) error {
	if !a.Checklist.SetCurrentCategory(id) {
		return fmt.Errorf("category %d not found", id)
	}
	return a.Save()
}

// category resolves a category id.
func (a *App) category(id int) (*checklist.Category, error) {
	cat := a.Checklist.Category(id)
	if cat == nil {
		return nil, fmt.Errorf("category %d not found", id)
	}
	return cat, nil
}

// task resolves a task position within a category.
func (a *App) task(categoryID, index int) (*checklist.Task, error) {
	cat, err := a.category(categoryID)
	if err != nil {
		return nil, err
	}
	t := cat.Task(index)
	if t == nil {
		return nil, fmt.Errorf("task index %d out of range in category %d", index, categoryID)
	}
	return t, nil
}

// AddTask appends a task to a category.
func (a *App) AddTask(categoryID int, text string) (*checklist.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyTaskText
	}
	cat, err := a.category(categoryID)
	if err != nil {
		return nil, err
	}
	var t *checklist.Task
	err = a.mutate("Add task "+text, func() error {
		t = checklist.NewTask(text)
		cat.AddTask(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ToggleTask flips the completion state of a task.
func (a *App) ToggleTask(categoryID, index int) error {
	t, err := a.task(categoryID, index)
	if err != nil {
		return err
	}
	return a.mutate("Toggle task "+t.Text, func() error {
		t.ToggleCompletion()
		return nil
	})
}

// DeleteTask removes a task from a category.
func (a *App) DeleteTask(categoryID, index int) (*checklist.Task, error) {
	cat, err := a.category(categoryID)
	if err != nil {
		return nil, err
	}
	if cat.Task(index) == nil {
		return nil, fmt.Errorf("task index %d out of range in category %d", index, categoryID)
	}
	var removed *checklist.Task
	err = a.mutate("Delete task", func() error {
		removed, _ = cat.RemoveTask(index)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// ClearCompleted removes all completed tasks from a category and
// returns the number removed. Nothing is recorded when the category had
// no completed tasks.
func (a *App) ClearCompleted(categoryID int) (int, error) {
	cat, err := a.category(categoryID)
	if err != nil {
		return 0, err
	}
	if len(cat.CompletedTasks()) == 0 {
		return 0, nil
	}
	var removed int
	err = a.mutate("Clear completed in "+cat.Name, func() error {
		removed = cat.ClearCompleted()
		return nil
	})
	return removed, err
}

// AddSubtask appends a subtask to a task.
func (a *App) AddSubtask(categoryID, taskIndex int, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptySubtaskText
	}
	t, err := a.task(categoryID, taskIndex)
	if err != nil {
		return err
	}
	return a.mutate("Add subtask "+text, func() error {
		t.AddSubtask(checklist.Subtask{Text: text})
		return nil
	})
}

// ToggleSubtask flips the completion state of a subtask.
func (a *App) ToggleSubtask(categoryID, taskIndex, subtaskIndex int) error {
	t, err := a.task(categoryID, taskIndex)
	if err != nil {
		return err
	}
	if subtaskIndex < 0 || subtaskIndex >= len(t.Subtasks) {
		return fmt.Errorf("subtask index %d out of range", subtaskIndex)
	}
	return a.mutate("Toggle subtask", func() error {
		t.Subtasks[subtaskIndex].ToggleCompletion()
		return nil
	})
}

// AddNote appends a note to a task.
func (a *App) AddNote(categoryID, taskIndex int, note string) error {
	t, err := a.task(categoryID, taskIndex)
	if err != nil {
		return err
	}
	return a.mutate("Add note", func() error {
		t.AddNote(note)
		return nil
	})
}

// SetPriority sets a task's priority. Unrecognized values fall back to
// medium.
func (a *App) SetPriority(categoryID, taskIndex int, priority string) error {
	t, err := a.task(categoryID, taskIndex)
	if err != nil {
		return err
	}
	return a.mutate("Set priority", func() error {
		t.Priority = checklist.ParsePriority(priority)
		return nil
	})
}

// SetDueDate sets or clears ("" clears) a task's due date.
func (a *App) SetDueDate(categoryID, taskIndex int, dueDate string) error {
	t, err := a.task(categoryID, taskIndex)
	if err != nil {
		return err
	}
	return a.mutate("Set due date", func() error {
		t.DueDate = dueDate
		return nil
	})
}

// SetReminder sets or clears ("" clears) a task's reminder timestamp.
func (a *App) SetReminder(categoryID, taskIndex int, reminderAt string) error {
	t, err := a.task(categoryID, taskIndex)
	if err != nil {
		return err
	}
	return a.mutate("Set reminder", func() error {
		t.Reminder = reminderAt
		return nil
	})
}

// Undo restores the most recent snapshot and persists it.
func (a *App) Undo() error {
	prev, ok := a.History.Undo(a.Checklist)
	if !ok {
		return ErrNothingToUndo
	}
	a.Checklist = prev
	return a.Save()
}

// Redo restores the most recently undone snapshot and persists it.
func (a *App) Redo() error {
	next, ok := a.History.Redo(a.Checklist)
	if !ok {
		return ErrNothingToRedo
	}
	a.Checklist = next
	return a.Save()
}

// OpenFile switches to another checklist file. The load is
// all-or-nothing: on any failure the currently open checklist stays
// untouched and the error is returned. On success history is cleared
// and the file moves to the front of the recent-files list.
func (a *App) OpenFile(path string) (*storage.LoadResult, error) {
	probe := storage.New(path)
	res, err := probe.Load()
	if err != nil {
		return nil, err
	}

	a.Storage.SetPath(path)
	a.Checklist = res.Checklist
	a.History.Clear()
	a.Settings.AddRecentFile(path)
	if res.Status == storage.LoadedBackup {
		a.logger.Warn("checklist recovered from backup", "path", path, "err", res.Warning)
	}
	return res, nil
}

// HandleReminderReport persists the checklist after a reminder scan
// mutated it. The host should also refresh its view.
func (a *App) HandleReminderReport(r reminder.ScanReport) {
	if !r.Changed() {
		return
	}
	a.logger.Info("reminders processed", "fired", r.Fired, "corrupted", r.Corrupted)
	if err := a.Save(); err != nil {
		a.logger.Error("save after reminder scan failed", "err", err)
	}
}
