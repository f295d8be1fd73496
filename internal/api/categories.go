package api

import (
	"encoding/json"
	"net/http"

	"flowlist/internal/repository"
)

func (s *Server) handleCategoryList(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categories.GetAll(r.Context())
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	writeJSON(w, 200, categories)
}

func (s *Server) handleCategoryGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, 400, "invalid category id")
		return
	}
	category, err := s.categories.GetById(r.Context(), id)
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	if category == nil {
		writeError(w, 404, "category not found")
		return
	}
	writeJSON(w, 200, category)
}

func (s *Server) handleCategoryCreate(w http.ResponseWriter, r *http.Request) {
	var input repository.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, 400, "invalid JSON: "+err.Error())
		return
	}
	if input.Name == "" {
		writeError(w, 400, "name is required")
		return
	}
	category, err := s.categories.Create(r.Context(), input)
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}
	if category == nil {
		writeError(w, 503, "store unavailable")
		return
	}
	writeJSON(w, 201, category)
}

func (s *Server) handleCategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, 400, "invalid category id")
		return
	}
	var patch repository.CategoryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, 400, "invalid JSON: "+err.Error())
		return
	}
	category, err := s.categories.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	if category == nil {
		writeError(w, 404, "category not found")
		return
	}
	writeJSON(w, 200, category)
}

func (s *Server) handleCategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, 400, "invalid category id")
		return
	}
	deleted, err := s.categories.Delete(r.Context(), id)
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	if !deleted {
		writeError(w, 404, "category not found")
		return
	}
	w.WriteHeader(204)
}

// handleCountRefresh recomputes the cached per-category task counts.
func (s *Server) handleCountRefresh(w http.ResponseWriter, r *http.Request) {
	categories, err := s.counts.Refresh(r.Context())
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	writeJSON(w, 200, categories)
}
