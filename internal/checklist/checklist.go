package checklist

// Checklist is the root aggregate: an ordered list of categories plus
// the currently selected category, if any.
type Checklist struct {
	Categories        []*Category `json:"categories"`
	CurrentCategoryID *int        `json:"current_category"`
}

// New creates an empty checklist.
func New() *Checklist {
	return &Checklist{Categories: []*Category{}}
}

// AddCategory creates a category with the given name, assigns it the
// next available id, appends it, and returns it.
func (c *Checklist) AddCategory(name string) *Category {
	cat := NewCategory(c.NextCategoryID(), name)
	c.Categories = append(c.Categories, cat)
	return cat
}

// RemoveCategory removes the category with the given id. It returns the
// removed category and false if no category has that id. The caller is
// responsible for re-pointing CurrentCategoryID afterward.
func (c *Checklist) RemoveCategory(id int) (*Category, bool) {
	for i, cat := range c.Categories {
		if cat.ID == id {
			c.Categories = append(c.Categories[:i], c.Categories[i+1:]...)
			return cat, true
		}
	}
	return nil, false
}

// Category returns the category with the given id, or nil.
func (c *Checklist) Category(id int) *Category {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat
		}
	}
	return nil
}

// CategoryByIndex returns the category at the given position, or nil.
func (c *Checklist) CategoryByIndex(index int) *Category {
	if index < 0 || index >= len(c.Categories) {
		return nil
	}
	return c.Categories[index]
}

// CurrentCategory returns the currently selected category, or nil if
// none is selected.
func (c *Checklist) CurrentCategory() *Category {
	if c.CurrentCategoryID == nil {
		return nil
	}
	return c.Category(*c.CurrentCategoryID)
}

// SetCurrentCategory selects the category with the given id. It returns
// false if no category has that id.
func (c *Checklist) SetCurrentCategory(id int) bool {
	if c.Category(id) == nil {
		return false
	}
	c.CurrentCategoryID = &id
	return true
}

// ClearCurrentCategory deselects the current category.
func (c *Checklist) ClearCurrentCategory() {
	c.CurrentCategoryID = nil
}

// CategoryCount returns the number of categories.
func (c *Checklist) CategoryCount() int {
	return len(c.Categories)
}

// NextCategoryID returns max(existing ids)+1, or 1 for an empty list.
// Ids are never reused after deletion within a session.
func (c *Checklist) NextCategoryID() int {
	next := 1
	for _, cat := range c.Categories {
		if cat.ID >= next {
			next = cat.ID + 1
		}
	}
	return next
}

// ReorderCategories moves the category at fromIndex to toIndex. It is a
// no-op returning false when either index is out of range or the
// indices are equal.
func (c *Checklist) ReorderCategories(fromIndex, toIndex int) bool {
	n := len(c.Categories)
	if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n || fromIndex == toIndex {
		return false
	}
	cat := c.Categories[fromIndex]
	c.Categories = append(c.Categories[:fromIndex], c.Categories[fromIndex+1:]...)
	c.Categories = append(c.Categories[:toIndex], append([]*Category{cat}, c.Categories[toIndex:]...)...)
	return true
}

// TotalTaskCount returns the number of tasks across all categories.
func (c *Checklist) TotalTaskCount() int {
	total := 0
	for _, cat := range c.Categories {
		total += cat.TaskCount()
	}
	return total
}

// TotalCompletedCount returns the number of completed tasks across all
// categories.
func (c *Checklist) TotalCompletedCount() int {
	total := 0
	for _, cat := range c.Categories {
		total += len(cat.CompletedTasks())
	}
	return total
}

// Clone returns a deep copy of the checklist. Mutating the original
// after cloning never affects the copy; undo snapshots rely on this.
func (c *Checklist) Clone() *Checklist {
	clone := &Checklist{}
	if c.Categories != nil {
		clone.Categories = make([]*Category, len(c.Categories))
		for i, cat := range c.Categories {
			clone.Categories[i] = cat.Clone()
		}
	}
	if c.CurrentCategoryID != nil {
		id := *c.CurrentCategoryID
		clone.CurrentCategoryID = &id
	}
	return clone
}
