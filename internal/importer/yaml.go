// Package importer creates tasks in bulk from a YAML document.
package importer

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"flowlist/internal/model"
	"flowlist/internal/repository"
)

// YAMLTask represents a single task in the YAML input.
type YAMLTask struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Category    string `yaml:"category,omitempty"`
	Priority    string `yaml:"priority,omitempty"`
}

// YAMLInput represents the root structure of the YAML input.
type YAMLInput struct {
	Tasks []YAMLTask `yaml:"tasks"`
}

// Import parses a YAML document and creates the tasks it describes,
// creating any categories named along the way. Returns the number of
// tasks created.
func Import(ctx context.Context, tasks *repository.TaskRepository, categories *repository.CategoryRepository, data []byte) (int, error) {
	var input YAMLInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return 0, fmt.Errorf("YAML parse error: %w", err)
	}

	if len(input.Tasks) == 0 {
		return 0, fmt.Errorf("no tasks found in YAML")
	}

	known, err := knownCategories(ctx, categories)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, yt := range input.Tasks {
		if yt.Title == "" {
			return count, fmt.Errorf("task title is required")
		}
		priority := model.Priority(yt.Priority)
		if yt.Priority != "" && !priority.Valid() {
			return count, fmt.Errorf("invalid priority %q for task %q", yt.Priority, yt.Title)
		}

		if yt.Category != "" && !known[yt.Category] {
			if _, err := categories.Create(ctx, repository.CategoryInput{Name: yt.Category}); err != nil {
				return count, fmt.Errorf("create category %q: %w", yt.Category, err)
			}
			known[yt.Category] = true
		}

		created, err := tasks.Create(ctx, repository.TaskInput{
			Title:       yt.Title,
			Description: yt.Description,
			Category:    yt.Category,
			Priority:    priority,
		})
		if err != nil {
			return count, fmt.Errorf("add task %q: %w", yt.Title, err)
		}
		if created == nil {
			return count, fmt.Errorf("add task %q: store unavailable", yt.Title)
		}
		count++
	}
	return count, nil
}

func knownCategories(ctx context.Context, categories *repository.CategoryRepository) (map[string]bool, error) {
	existing, err := categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(existing))
	for _, c := range existing {
		known[c.Name] = true
	}
	return known, nil
}
