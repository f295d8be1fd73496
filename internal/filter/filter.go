// Package filter derives the display-ready task view from the full
// task set and the current filter configuration.
package filter

import (
	"sort"
	"strings"

	"flowlist/internal/model"
)

// All disables the category or priority filter.
const All = "all"

// Config is the filter state chosen by the user.
type Config struct {
	SearchQuery      string
	SelectedCategory string
	SelectedPriority string
	ShowCompleted    bool
}

// DefaultConfig matches the initial UI state: everything visible
// except completed tasks.
func DefaultConfig() Config {
	return Config{
		SelectedCategory: All,
		SelectedPriority: All,
	}
}

// View is the ordered, partitioned result of applying a Config.
type View struct {
	Active    []model.Task `json:"active"`
	Completed []model.Task `json:"completed"`
}

// VisibleTasks filters, sorts and partitions tasks according to cfg.
// It is pure: the input slice is never mutated, and identical inputs
// always produce identical output. Note that with ShowCompleted false
// the completed partition is empty by construction, since completed
// tasks are dropped before the split.
func VisibleTasks(tasks []model.Task, cfg Config) View {
	filtered := make([]model.Task, 0, len(tasks))
	filtered = append(filtered, tasks...)

	if query := strings.TrimSpace(cfg.SearchQuery); query != "" {
		q := strings.ToLower(query)
		filtered = keep(filtered, func(t model.Task) bool {
			return strings.Contains(strings.ToLower(t.Title), q) ||
				strings.Contains(strings.ToLower(t.Description), q)
		})
	}

	if cfg.SelectedCategory != All {
		filtered = keep(filtered, func(t model.Task) bool {
			return t.Category == cfg.SelectedCategory
		})
	}

	if cfg.SelectedPriority != All {
		filtered = keep(filtered, func(t model.Task) bool {
			return string(t.Priority) == cfg.SelectedPriority
		})
	}

	if !cfg.ShowCompleted {
		filtered = keep(filtered, func(t model.Task) bool {
			return !t.Completed
		})
	}

	// Incomplete first, then priority descending, then newest first.
	// The sort must be stable so that ties keep their original order.
	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if aw, bw := a.Priority.Weight(), b.Priority.Weight(); aw != bw {
			return aw > bw
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	view := View{Active: []model.Task{}, Completed: []model.Task{}}
	for _, t := range filtered {
		if t.Completed {
			view.Completed = append(view.Completed, t)
		} else {
			view.Active = append(view.Active, t)
		}
	}
	return view
}

func keep(tasks []model.Task, pred func(model.Task) bool) []model.Task {
	out := tasks[:0]
	for _, t := range tasks {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}
