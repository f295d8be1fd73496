package model

import "encoding/json"

// DefaultCategoryColor is the indigo used when a category is created
// without an explicit color.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryName is the fallback category for tasks created
// without one.
const DefaultCategoryName = "Personal"

// Category groups tasks by area (work, shopping, health, ...).
// TaskCount is a cached count of tasks referencing the category by
// name; it is refreshed externally and may be briefly stale.
type Category struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	TaskCount int    `json:"taskCount"`
}

// Clone returns a copy of the category.
func (c Category) Clone() Category {
	return c
}

// CloneCategories copies a category slice.
func CloneCategories(categories []Category) []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

type categoryJSON struct {
	ID         int    `json:"id"`
	IDLegacy   int    `json:"Id"`
	Name       string `json:"name"`
	NameC      string `json:"name_c"`
	Color      string `json:"color"`
	ColorC     string `json:"color_c"`
	TaskCount  int    `json:"taskCount"`
	TaskCountC *int   `json:"task_count_c"`
}

// UnmarshalJSON accepts the canonical shape and the legacy suffixed
// shape written by the hosted backend variant.
func (c *Category) UnmarshalJSON(data []byte) error {
	var raw categoryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.ID = raw.ID
	if raw.IDLegacy != 0 {
		c.ID = raw.IDLegacy
	}
	c.Name = firstNonEmpty(raw.NameC, raw.Name)
	c.Color = firstNonEmpty(raw.ColorC, raw.Color)
	c.TaskCount = raw.TaskCount
	if raw.TaskCountC != nil {
		c.TaskCount = *raw.TaskCountC
	}
	return nil
}
