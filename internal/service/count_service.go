package service

import (
	"context"

	"flowlist/internal/model"
	"flowlist/internal/repository"
)

// CountService keeps the denormalized per-category task counts in
// sync with the task collection. Counts are cached on the category
// records and may be briefly stale between refreshes.
type CountService struct {
	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
}

func NewCountService(taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository) *CountService {
	return &CountService{taskRepo: taskRepo, categoryRepo: categoryRepo}
}

// Refresh recomputes every category's task count from the current
// task set and persists the new values. It returns the refreshed
// categories.
func (s *CountService) Refresh(ctx context.Context) ([]model.Category, error) {
	tasks, err := s.taskRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, t := range tasks {
		counts[t.Category]++
	}

	refreshed := make([]model.Category, 0, len(categories))
	for _, c := range categories {
		updated, err := s.categoryRepo.UpdateTaskCount(ctx, c.Name, counts[c.Name])
		if err != nil {
			return nil, err
		}
		if updated != nil {
			refreshed = append(refreshed, *updated)
			continue
		}
		refreshed = append(refreshed, c)
	}
	return refreshed, nil
}
