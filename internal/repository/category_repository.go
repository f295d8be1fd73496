package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"flowlist/internal/model"
	"flowlist/internal/storage"
)

// CategoriesKey is the storage slot holding the category collection.
const CategoriesKey = "flowlist_categories"

// CategoryInput represents data required to create a category.
type CategoryInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CategoryPatch is a partial update for a category.
type CategoryPatch struct {
	Name      *string `json:"name"`
	Color     *string `json:"color"`
	TaskCount *int    `json:"taskCount"`
}

// CategoryRepository manages task categories over an injected storage
// backend, with the same copy-out and degradation rules as tasks.
type CategoryRepository struct {
	backend storage.Backend
	delay   func()
}

// NewCategoryRepository creates a repository. delay simulates storage
// latency; pass NoLatency to disable it.
func NewCategoryRepository(backend storage.Backend, delay func()) *CategoryRepository {
	if delay == nil {
		delay = NoLatency
	}
	return &CategoryRepository{backend: backend, delay: delay}
}

func (r *CategoryRepository) load(ctx context.Context) (categories []model.Category, ok bool) {
	data, found, err := r.backend.Load(ctx, CategoriesKey)
	if err != nil {
		log.Printf("[warn] category store unavailable: %v", err)
		return nil, false
	}
	if found {
		if err := json.Unmarshal(data, &categories); err == nil {
			return categories, true
		} else {
			log.Printf("[error] parsing stored categories: %v", err)
		}
	}
	categories = seedCategories()
	r.save(ctx, categories)
	return categories, true
}

func (r *CategoryRepository) save(ctx context.Context, categories []model.Category) bool {
	data, err := json.MarshalIndent(categories, "", "  ")
	if err != nil {
		log.Printf("[error] encoding categories: %v", err)
		return false
	}
	if err := r.backend.Save(ctx, CategoriesKey, data); err != nil {
		log.Printf("[warn] saving categories: %v", err)
		return false
	}
	return true
}

// GetAll returns copies of every stored category.
func (r *CategoryRepository) GetAll(ctx context.Context) ([]model.Category, error) {
	r.delay()
	categories, _ := r.load(ctx)
	return model.CloneCategories(categories), nil
}

// GetById returns a copy of the category with the given id, or nil.
func (r *CategoryRepository) GetById(ctx context.Context, id int) (*model.Category, error) {
	r.delay()
	categories, _ := r.load(ctx)
	for _, c := range categories {
		if c.ID == id {
			clone := c.Clone()
			return &clone, nil
		}
	}
	return nil, nil
}

// Create allocates the next id, applies the default color and a zero
// task count, appends the category and persists the collection.
func (r *CategoryRepository) Create(ctx context.Context, input CategoryInput) (*model.Category, error) {
	r.delay()
	if input.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	categories, ok := r.load(ctx)
	if !ok {
		return nil, nil
	}

	category := model.Category{
		ID:        nextCategoryID(categories),
		Name:      input.Name,
		Color:     input.Color,
		TaskCount: 0,
	}
	if category.Color == "" {
		category.Color = model.DefaultCategoryColor
	}

	categories = append(categories, category)
	if !r.save(ctx, categories) {
		return nil, nil
	}
	clone := category.Clone()
	return &clone, nil
}

// Update merges the patch over the stored category. Returns nil if the
// id is unknown.
func (r *CategoryRepository) Update(ctx context.Context, id int, patch CategoryPatch) (*model.Category, error) {
	r.delay()
	categories, ok := r.load(ctx)
	if !ok {
		return nil, nil
	}

	idx := -1
	for i, c := range categories {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, nil
	}

	category := categories[idx]
	if patch.Name != nil {
		category.Name = *patch.Name
	}
	if patch.Color != nil {
		category.Color = *patch.Color
	}
	if patch.TaskCount != nil {
		category.TaskCount = *patch.TaskCount
	}

	categories[idx] = category
	if !r.save(ctx, categories) {
		return nil, nil
	}
	clone := category.Clone()
	return &clone, nil
}

// Delete removes the category with the given id and reports whether a
// record was found and removed.
func (r *CategoryRepository) Delete(ctx context.Context, id int) (bool, error) {
	r.delay()
	categories, ok := r.load(ctx)
	if !ok {
		return false, nil
	}

	idx := -1
	for i, c := range categories {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}

	categories = append(categories[:idx], categories[idx+1:]...)
	if !r.save(ctx, categories) {
		return false, nil
	}
	return true, nil
}

// UpdateTaskCount patches the cached task count of the first category
// with the given name. Returns nil if no category matches.
func (r *CategoryRepository) UpdateTaskCount(ctx context.Context, name string, count int) (*model.Category, error) {
	r.delay()
	categories, ok := r.load(ctx)
	if !ok {
		return nil, nil
	}

	for i, c := range categories {
		if c.Name == name {
			categories[i].TaskCount = count
			if !r.save(ctx, categories) {
				return nil, nil
			}
			clone := categories[i].Clone()
			return &clone, nil
		}
	}
	return nil, nil
}

// nextCategoryID allocates max(existing ids)+1, or 1 for an empty collection.
func nextCategoryID(categories []model.Category) int {
	max := 0
	for _, c := range categories {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}
