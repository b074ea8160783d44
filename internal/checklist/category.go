package checklist

// Category is a named, ordered bucket of tasks. Its id is unique within
// the checklist and stable for the category's lifetime; tasks are
// addressed by position.
type Category struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Tasks []*Task `json:"tasks"`
}

// NewCategory creates an empty category with the given id and name.
func NewCategory(id int, name string) *Category {
	return &Category{ID: id, Name: name, Tasks: []*Task{}}
}

// AddTask appends a task to the category.
func (c *Category) AddTask(t *Task) {
	c.Tasks = append(c.Tasks, t)
}

// RemoveTask removes the task at index. It returns the removed task and
// false if the index is out of range.
func (c *Category) RemoveTask(index int) (*Task, bool) {
	if index < 0 || index >= len(c.Tasks) {
		return nil, false
	}
	removed := c.Tasks[index]
	c.Tasks = append(c.Tasks[:index], c.Tasks[index+1:]...)
	return removed, true
}

// Task returns the task at index, or nil if the index is out of range.
func (c *Category) Task(index int) *Task {
	if index < 0 || index >= len(c.Tasks) {
		return nil
	}
	return c.Tasks[index]
}

// TaskCount returns the total number of tasks.
func (c *Category) TaskCount() int {
	return len(c.Tasks)
}

// CompletedTasks returns all completed tasks in order.
func (c *Category) CompletedTasks() []*Task {
	var completed []*Task
	for _, t := range c.Tasks {
		if t.Completed {
			completed = append(completed, t)
		}
	}
	return completed
}

// PendingTasks returns all incomplete tasks in order.
func (c *Category) PendingTasks() []*Task {
	var pending []*Task
	for _, t := range c.Tasks {
		if !t.Completed {
			pending = append(pending, t)
		}
	}
	return pending
}

// ClearCompleted removes all completed tasks in place and returns the
// number removed.
func (c *Category) ClearCompleted() int {
	kept := c.Tasks[:0]
	removed := 0
	for _, t := range c.Tasks {
		if t.Completed {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	// Drop trailing pointers so removed tasks are not retained.
	for i := len(kept); i < len(c.Tasks); i++ {
		c.Tasks[i] = nil
	}
	c.Tasks = kept
	return removed
}

// CompletionPercentage returns the percentage of completed tasks in
// [0,100]. A category with no tasks reports 0.
func (c *Category) CompletionPercentage() float64 {
	if len(c.Tasks) == 0 {
		return 0
	}
	return float64(len(c.CompletedTasks())) / float64(len(c.Tasks)) * 100
}

// Clone returns a deep copy of the category.
func (c *Category) Clone() *Category {
	clone := &Category{ID: c.ID, Name: c.Name}
	if c.Tasks != nil {
		clone.Tasks = make([]*Task, len(c.Tasks))
		for i, t := range c.Tasks {
			clone.Tasks[i] = t.Clone()
		}
	}
	return clone
}
