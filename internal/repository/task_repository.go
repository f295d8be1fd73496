package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"flowlist/internal/model"
	"flowlist/internal/storage"
)

// TasksKey is the storage slot holding the task collection.
const TasksKey = "flowlist_tasks"

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Priority    model.Priority `json:"priority"`
}

// TaskPatch is a partial update. Nil fields are left untouched; the id
// of the target record can never be changed through a patch.
type TaskPatch struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Category    *string         `json:"category"`
	Priority    *model.Priority `json:"priority"`
	Completed   *bool           `json:"completed"`
}

// TaskRepository handles CRUD for tasks over an injected storage
// backend. Every read returns deep copies, and storage faults degrade
// to empty or absent results instead of failing the operation.
type TaskRepository struct {
	backend storage.Backend
	delay   func()
	now     func() time.Time
}

// NewTaskRepository creates a repository. delay simulates storage
// latency; pass NoLatency to disable it.
func NewTaskRepository(backend storage.Backend, delay func()) *TaskRepository {
	if delay == nil {
		delay = NoLatency
	}
	return &TaskRepository{backend: backend, delay: delay, now: time.Now}
}

// load reads the full collection, seeding it from the bundled dataset
// when the slot is empty or unparseable. ok is false only when the
// backend itself is unreachable.
func (r *TaskRepository) load(ctx context.Context) (tasks []model.Task, ok bool) {
	data, found, err := r.backend.Load(ctx, TasksKey)
	if err != nil {
		log.Printf("[warn] task store unavailable: %v", err)
		return nil, false
	}
	if found {
		if err := json.Unmarshal(data, &tasks); err == nil {
			return tasks, true
		} else {
			log.Printf("[error] parsing stored tasks: %v", err)
		}
	}
	tasks = seedTasks()
	r.save(ctx, tasks)
	return tasks, true
}

func (r *TaskRepository) save(ctx context.Context, tasks []model.Task) bool {
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		log.Printf("[error] encoding tasks: %v", err)
		return false
	}
	if err := r.backend.Save(ctx, TasksKey, data); err != nil {
		log.Printf("[warn] saving tasks: %v", err)
		return false
	}
	return true
}

// GetAll returns copies of every stored task.
func (r *TaskRepository) GetAll(ctx context.Context) ([]model.Task, error) {
	r.delay()
	tasks, _ := r.load(ctx)
	return model.CloneTasks(tasks), nil
}

// GetById returns a copy of the task with the given id, or nil if no
// such task exists.
func (r *TaskRepository) GetById(ctx context.Context, id int) (*model.Task, error) {
	r.delay()
	tasks, _ := r.load(ctx)
	for _, t := range tasks {
		if t.ID == id {
			c := t.Clone()
			return &c, nil
		}
	}
	return nil, nil
}

// Create allocates the next id, applies field defaults, appends the
// task and persists the collection.
func (r *TaskRepository) Create(ctx context.Context, input TaskInput) (*model.Task, error) {
	r.delay()
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	tasks, ok := r.load(ctx)
	if !ok {
		return nil, nil
	}

	task := model.Task{
		ID:          nextTaskID(tasks),
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Priority:    input.Priority,
		Completed:   false,
		CreatedAt:   r.now(),
	}
	if task.Category == "" {
		task.Category = model.DefaultCategoryName
	}
	if task.Priority == "" {
		task.Priority = model.DefaultPriority
	}

	tasks = append(tasks, task)
	if !r.save(ctx, tasks) {
		return nil, nil
	}
	c := task.Clone()
	return &c, nil
}

// Update merges the patch over the stored task and persists the
// collection. CompletedAt is re-derived whenever the patch carries
// Completed: a false-to-true transition stamps the current time, a
// switch back to false clears it. Returns nil if the id is unknown.
func (r *TaskRepository) Update(ctx context.Context, id int, patch TaskPatch) (*model.Task, error) {
	r.delay()
	tasks, ok := r.load(ctx)
	if !ok {
		return nil, nil
	}

	idx := -1
	for i, t := range tasks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, nil
	}

	task := tasks[idx]
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Category != nil {
		task.Category = *patch.Category
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
		if task.Completed {
			if task.CompletedAt == nil {
				at := r.now()
				task.CompletedAt = &at
			}
		} else {
			task.CompletedAt = nil
		}
	}

	tasks[idx] = task
	if !r.save(ctx, tasks) {
		return nil, nil
	}
	c := task.Clone()
	return &c, nil
}

// Delete removes the task with the given id and reports whether a
// record was found and removed.
func (r *TaskRepository) Delete(ctx context.Context, id int) (bool, error) {
	r.delay()
	tasks, ok := r.load(ctx)
	if !ok {
		return false, nil
	}

	idx := -1
	for i, t := range tasks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}

	tasks = append(tasks[:idx], tasks[idx+1:]...)
	if !r.save(ctx, tasks) {
		return false, nil
	}
	return true, nil
}

// GetByCategory returns copies of tasks with an exact category match.
func (r *TaskRepository) GetByCategory(ctx context.Context, category string) ([]model.Task, error) {
	r.delay()
	tasks, _ := r.load(ctx)
	return cloneMatching(tasks, func(t model.Task) bool { return t.Category == category }), nil
}

// GetByPriority returns copies of tasks with an exact priority match.
func (r *TaskRepository) GetByPriority(ctx context.Context, priority model.Priority) ([]model.Task, error) {
	r.delay()
	tasks, _ := r.load(ctx)
	return cloneMatching(tasks, func(t model.Task) bool { return t.Priority == priority }), nil
}

// Search returns copies of tasks whose title or description contains
// the query, case-insensitively.
func (r *TaskRepository) Search(ctx context.Context, query string) ([]model.Task, error) {
	r.delay()
	tasks, _ := r.load(ctx)
	q := strings.ToLower(query)
	return cloneMatching(tasks, func(t model.Task) bool {
		return strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q)
	}), nil
}

// GetCompleted returns copies of all completed tasks.
func (r *TaskRepository) GetCompleted(ctx context.Context) ([]model.Task, error) {
	r.delay()
	tasks, _ := r.load(ctx)
	return cloneMatching(tasks, func(t model.Task) bool { return t.Completed }), nil
}

// GetActive returns copies of all tasks that are not completed.
func (r *TaskRepository) GetActive(ctx context.Context) ([]model.Task, error) {
	r.delay()
	tasks, _ := r.load(ctx)
	return cloneMatching(tasks, func(t model.Task) bool { return !t.Completed }), nil
}

func cloneMatching(tasks []model.Task, keep func(model.Task) bool) []model.Task {
	out := []model.Task{}
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// nextTaskID allocates max(existing ids)+1, or 1 for an empty collection.
func nextTaskID(tasks []model.Task) int {
	max := 0
	for _, t := range tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}
