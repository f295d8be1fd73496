package repository

import (
	_ "embed"
	"encoding/json"
	"log"

	"flowlist/internal/model"
)

// Bundled default datasets, written to an empty or corrupt store slot
// on first use. Kept as plain JSON so the persisted files stay
// interchangeable with them.

//go:embed seed/tasks.json
var seedTasksJSON []byte

//go:embed seed/categories.json
var seedCategoriesJSON []byte

func seedTasks() []model.Task {
	var tasks []model.Task
	if err := json.Unmarshal(seedTasksJSON, &tasks); err != nil {
		log.Printf("[error] parsing bundled tasks: %v", err)
		return nil
	}
	return tasks
}

func seedCategories() []model.Category {
	var categories []model.Category
	if err := json.Unmarshal(seedCategoriesJSON, &categories); err != nil {
		log.Printf("[error] parsing bundled categories: %v", err)
		return nil
	}
	return categories
}
