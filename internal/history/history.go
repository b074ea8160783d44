// Package history implements stack-based undo/redo over deep snapshots
// of checklist state.
package history

import "github.com/nibzard/checklist-go/internal/checklist"

// DefaultMaxDepth is the undo stack cap; the oldest snapshot is
// discarded when it is exceeded.
const DefaultMaxDepth = 20

// snapshot pairs a deep copy of checklist state with a description of
// the action that produced it.
type snapshot struct {
	state       *checklist.Checklist
	description string
}

// Manager tracks undo and redo stacks of checklist snapshots. Snapshots
// are value copies: mutating the live checklist after recording never
// affects stored state.
type Manager struct {
	undoStack []snapshot
	redoStack []snapshot
	maxDepth  int
}

// New creates a history manager. A maxDepth of zero or less selects
// DefaultMaxDepth.
func New(maxDepth int) *Manager {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Manager{maxDepth: maxDepth}
}

// RecordState pushes a snapshot of state taken before a mutation. Any
// previously undone branch is invalidated: the redo stack is cleared.
func (m *Manager) RecordState(state *checklist.Checklist, description string) {
	m.undoStack = append(m.undoStack, snapshot{state: state.Clone(), description: description})
	m.redoStack = nil

	if len(m.undoStack) > m.maxDepth {
		m.undoStack = m.undoStack[1:]
	}
}

// Undo pushes current onto the redo stack and returns the most recent
// snapshot. It returns nil and false when there is nothing to undo.
func (m *Manager) Undo(current *checklist.Checklist) (*checklist.Checklist, bool) {
	if len(m.undoStack) == 0 {
		return nil, false
	}
	m.redoStack = append(m.redoStack, snapshot{state: current.Clone(), description: "Redo"})

	top := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	return top.state, true
}

// Redo pushes current onto the undo stack and returns the most recently
// undone snapshot. It returns nil and false when there is nothing to
// redo.
func (m *Manager) Redo(current *checklist.Checklist) (*checklist.Checklist, bool) {
	if len(m.redoStack) == 0 {
		return nil, false
	}
	m.undoStack = append(m.undoStack, snapshot{state: current.Clone(), description: "Undo"})

	top := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	return top.state, true
}

// CanUndo reports whether an undo is available.
func (m *Manager) CanUndo() bool {
	return len(m.undoStack) > 0
}

// CanRedo reports whether a redo is available.
func (m *Manager) CanRedo() bool {
	return len(m.redoStack) > 0
}

// UndoDescription returns the description of the action that would be
// undone, or "" when the undo stack is empty.
func (m *Manager) UndoDescription() string {
	if len(m.undoStack) == 0 {
		return ""
	}
	return m.undoStack[len(m.undoStack)-1].description
}

// RedoDescription returns the description of the action that would be
// redone, or "" when the redo stack is empty.
func (m *Manager) RedoDescription() string {
	if len(m.redoStack) == 0 {
		return ""
	}
	return m.redoStack[len(m.redoStack)-1].description
}

// Clear discards all history.
func (m *Manager) Clear() {
	m.undoStack = nil
	m.redoStack = nil
}
