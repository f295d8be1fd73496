package api

import (
	"encoding/json"
	"io"
	"net/http"

	"flowlist/internal/filter"
	"flowlist/internal/importer"
	"flowlist/internal/model"
	"flowlist/internal/repository"
)

// handleTaskList serves the derived queries. Exactly one filter
// parameter is honored, in this precedence: q, category, priority,
// completed. Without parameters the full collection is returned.
func (s *Server) handleTaskList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := r.URL.Query()

	switch {
	case params.Get("q") != "":
		tasks, err := s.tasks.Search(ctx, params.Get("q"))
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, tasks)
	case params.Get("category") != "":
		tasks, err := s.tasks.GetByCategory(ctx, params.Get("category"))
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, tasks)
	case params.Get("priority") != "":
		priority := model.Priority(params.Get("priority"))
		if !priority.Valid() {
			writeError(w, 400, "priority must be low, medium or high")
			return
		}
		tasks, err := s.tasks.GetByPriority(ctx, priority)
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, tasks)
	case params.Get("completed") == "true":
		tasks, err := s.tasks.GetCompleted(ctx)
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, tasks)
	case params.Get("completed") == "false":
		tasks, err := s.tasks.GetActive(ctx)
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, tasks)
	default:
		tasks, err := s.tasks.GetAll(ctx)
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		writeJSON(w, 200, tasks)
	}
}

// handleTaskView runs the filter/sort pipeline over the full task set
// and returns the partitioned view.
func (s *Server) handleTaskView(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	cfg := filter.DefaultConfig()
	cfg.SearchQuery = params.Get("q")
	if c := params.Get("category"); c != "" {
		cfg.SelectedCategory = c
	}
	if p := params.Get("priority"); p != "" {
		cfg.SelectedPriority = p
	}
	cfg.ShowCompleted = params.Get("showCompleted") == "true"

	tasks, err := s.tasks.GetAll(r.Context())
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	writeJSON(w, 200, filter.VisibleTasks(tasks, cfg))
}

func (s *Server) handleTaskGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, 400, "invalid task id")
		return
	}
	task, err := s.tasks.GetById(r.Context(), id)
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	if task == nil {
		writeError(w, 404, "task not found")
		return
	}
	writeJSON(w, 200, task)
}

func (s *Server) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	var input repository.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, 400, "invalid JSON: "+err.Error())
		return
	}
	if input.Title == "" {
		writeError(w, 400, "title is required")
		return
	}
	if input.Priority != "" && !input.Priority.Valid() {
		writeError(w, 400, "priority must be low, medium or high")
		return
	}
	task, err := s.tasks.Create(r.Context(), input)
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}
	if task == nil {
		writeError(w, 503, "store unavailable")
		return
	}
	writeJSON(w, 201, task)
}

func (s *Server) handleTaskUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, 400, "invalid task id")
		return
	}
	var patch repository.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, 400, "invalid JSON: "+err.Error())
		return
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		writeError(w, 400, "priority must be low, medium or high")
		return
	}
	task, err := s.tasks.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	if task == nil {
		writeError(w, 404, "task not found")
		return
	}
	writeJSON(w, 200, task)
}

func (s *Server) handleTaskDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, 400, "invalid task id")
		return
	}
	deleted, err := s.tasks.Delete(r.Context(), id)
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	if !deleted {
		writeError(w, 404, "task not found")
		return
	}
	w.WriteHeader(204)
}

func (s *Server) handleTaskImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, 400, "read body: "+err.Error())
		return
	}
	count, err := importer.Import(r.Context(), s.tasks, s.categories, data)
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}
	writeJSON(w, 201, map[string]int{"imported": count})
}
