package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowlist/internal/model"
)

func taskAt(id int, title, category string, priority model.Priority, completed bool, created time.Time) model.Task {
	t := model.Task{
		ID:        id,
		Title:     title,
		Category:  category,
		Priority:  priority,
		Completed: completed,
		CreatedAt: created,
	}
	if completed {
		at := created.Add(time.Hour)
		t.CompletedAt = &at
	}
	return t
}

func ids(tasks []model.Task) []int {
	out := make([]int, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestVisibleTasks_CategoryFilter(t *testing.T) {
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		taskAt(1, "Buy milk", "Shopping", model.PriorityLow, false, base),
		taskAt(2, "Write report", "Work", model.PriorityHigh, true, base.Add(time.Minute)),
	}

	view := VisibleTasks(tasks, Config{
		SelectedCategory: "Work",
		SelectedPriority: All,
		ShowCompleted:    true,
	})

	assert.Empty(t, view.Active)
	require.Len(t, view.Completed, 1)
	assert.Equal(t, 2, view.Completed[0].ID)
}

func TestVisibleTasks_SortByPriority(t *testing.T) {
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	// Created in priority order low, high, medium.
	tasks := []model.Task{
		taskAt(1, "low", "Personal", model.PriorityLow, false, base),
		taskAt(2, "high", "Personal", model.PriorityHigh, false, base.Add(time.Minute)),
		taskAt(3, "medium", "Personal", model.PriorityMedium, false, base.Add(2*time.Minute)),
	}

	for _, order := range [][]model.Task{
		tasks,
		{tasks[2], tasks[0], tasks[1]},
		{tasks[1], tasks[2], tasks[0]},
	} {
		view := VisibleTasks(order, DefaultConfig())
		assert.Equal(t, []int{2, 3, 1}, ids(view.Active))
	}
}

func TestVisibleTasks_IncompleteBeforeCompleted(t *testing.T) {
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		taskAt(1, "done", "Personal", model.PriorityHigh, true, base.Add(time.Hour)),
		taskAt(2, "open", "Personal", model.PriorityLow, false, base),
	}

	cfg := DefaultConfig()
	cfg.ShowCompleted = true
	view := VisibleTasks(tasks, cfg)

	assert.Equal(t, []int{2}, ids(view.Active))
	assert.Equal(t, []int{1}, ids(view.Completed))
}

func TestVisibleTasks_NewestFirstWithinPriority(t *testing.T) {
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		taskAt(1, "older", "Personal", model.PriorityMedium, false, base),
		taskAt(2, "newer", "Personal", model.PriorityMedium, false, base.Add(time.Hour)),
	}

	view := VisibleTasks(tasks, DefaultConfig())
	assert.Equal(t, []int{2, 1}, ids(view.Active))
}

func TestVisibleTasks_StableOnTies(t *testing.T) {
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	// Identical completion, priority and timestamp: input order must hold.
	tasks := []model.Task{
		taskAt(5, "a", "Personal", model.PriorityMedium, false, base),
		taskAt(3, "b", "Personal", model.PriorityMedium, false, base),
		taskAt(9, "c", "Personal", model.PriorityMedium, false, base),
	}

	view := VisibleTasks(tasks, DefaultConfig())
	assert.Equal(t, []int{5, 3, 9}, ids(view.Active))
}

func TestVisibleTasks_SearchIsCaseInsensitiveAndTrimmed(t *testing.T) {
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		taskAt(1, "Buy milk", "Shopping", model.PriorityLow, false, base),
		taskAt(2, "Clean desk", "Personal", model.PriorityLow, false, base),
		taskAt(3, "Misc", "Personal", model.PriorityLow, false, base),
	}
	tasks[2].Description = "remember the MILK coupons"

	cfg := DefaultConfig()
	cfg.SearchQuery = "  MILK  "
	view := VisibleTasks(tasks, cfg)

	assert.ElementsMatch(t, []int{1, 3}, ids(view.Active))

	cfg.SearchQuery = "   "
	view = VisibleTasks(tasks, cfg)
	assert.Len(t, view.Active, 3, "blank query should not filter")
}

func TestVisibleTasks_HideCompletedEmptiesPartition(t *testing.T) {
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		taskAt(1, "open", "Personal", model.PriorityLow, false, base),
		taskAt(2, "done", "Personal", model.PriorityHigh, true, base),
	}

	view := VisibleTasks(tasks, DefaultConfig())
	assert.Equal(t, []int{1}, ids(view.Active))
	assert.Empty(t, view.Completed, "completed partition must be empty when hidden")
}

func TestVisibleTasks_PriorityFilter(t *testing.T) {
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		taskAt(1, "a", "Personal", model.PriorityHigh, false, base),
		taskAt(2, "b", "Personal", model.PriorityLow, false, base),
	}

	cfg := DefaultConfig()
	cfg.SelectedPriority = "high"
	view := VisibleTasks(tasks, cfg)
	assert.Equal(t, []int{1}, ids(view.Active))
}

func TestVisibleTasks_Deterministic(t *testing.T) {
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		taskAt(1, "Buy milk", "Shopping", model.PriorityLow, false, base),
		taskAt(2, "Write report", "Work", model.PriorityHigh, true, base.Add(time.Minute)),
		taskAt(3, "Run", "Health", model.PriorityMedium, false, base.Add(2*time.Minute)),
	}
	cfg := Config{SearchQuery: "r", SelectedCategory: All, SelectedPriority: All, ShowCompleted: true}

	first := VisibleTasks(tasks, cfg)
	second := VisibleTasks(tasks, cfg)
	assert.Equal(t, first, second)
}

func TestVisibleTasks_DoesNotMutateInput(t *testing.T) {
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		taskAt(1, "low", "Personal", model.PriorityLow, false, base),
		taskAt(2, "high", "Personal", model.PriorityHigh, false, base),
	}

	VisibleTasks(tasks, DefaultConfig())

	assert.Equal(t, 1, tasks[0].ID, "input order must be preserved")
	assert.Equal(t, 2, tasks[1].ID)
}

func TestVisibleTasks_UnknownPrioritySortsLast(t *testing.T) {
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		taskAt(1, "odd", "Personal", model.Priority("urgent"), false, base),
		taskAt(2, "low", "Personal", model.PriorityLow, false, base),
	}

	view := VisibleTasks(tasks, DefaultConfig())
	assert.Equal(t, []int{2, 1}, ids(view.Active))
}
