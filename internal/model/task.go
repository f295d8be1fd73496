package model

import (
	"encoding/json"
	"time"
)

// Priority classifies how urgent a task is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is assigned when a task is created without one.
const DefaultPriority = PriorityMedium

// Weight returns the sort weight of the priority. Unknown values sort last.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task represents a single item in the list.
// CompletedAt is nil exactly when Completed is false.
type Task struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Priority    Priority   `json:"priority"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Clone returns a deep copy of the task so callers can mutate the
// result without touching stored state.
func (t Task) Clone() Task {
	c := t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	return c
}

// CloneTasks deep-copies a task slice.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

// taskJSON carries the legacy field aliases produced by the hosted
// backend variant ("Id", "title_c", "CreatedOn", ...). Decoding maps
// them onto the canonical fields once, at the storage boundary.
type taskJSON struct {
	ID          int        `json:"id"`
	IDLegacy    int        `json:"Id"`
	Title       string     `json:"title"`
	TitleC      string     `json:"title_c"`
	Description string     `json:"description"`
	DescC       string     `json:"description_c"`
	Category    string     `json:"category"`
	CategoryC   string     `json:"category_c"`
	Priority    Priority   `json:"priority"`
	PriorityC   Priority   `json:"priority_c"`
	Completed   bool       `json:"completed"`
	CompletedC  *bool      `json:"completed_c"`
	CreatedAt   *time.Time `json:"createdAt"`
	CreatedOn   *time.Time `json:"CreatedOn"`
	CompletedAt *time.Time `json:"completedAt"`
}

// UnmarshalJSON accepts both the canonical record shape and the legacy
// suffixed shape, preferring the legacy field when both are present so
// records written by the hosted backend round-trip correctly.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw taskJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.ID = raw.ID
	if raw.IDLegacy != 0 {
		t.ID = raw.IDLegacy
	}
	t.Title = firstNonEmpty(raw.TitleC, raw.Title)
	t.Description = firstNonEmpty(raw.DescC, raw.Description)
	t.Category = firstNonEmpty(raw.CategoryC, raw.Category)
	t.Priority = Priority(firstNonEmpty(string(raw.PriorityC), string(raw.Priority)))
	t.Completed = raw.Completed
	if raw.CompletedC != nil {
		t.Completed = *raw.CompletedC
	}
	t.CreatedAt = time.Time{}
	if raw.CreatedOn != nil {
		t.CreatedAt = *raw.CreatedOn
	} else if raw.CreatedAt != nil {
		t.CreatedAt = *raw.CreatedAt
	}
	t.CompletedAt = raw.CompletedAt
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
