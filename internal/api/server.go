// Package api exposes the repository services and the filter pipeline
// over HTTP. Handlers pass plain record copies in and out; no
// framework types cross the service boundary.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"flowlist/internal/repository"
	"flowlist/internal/service"
)

// Server is the HTTP API server.
type Server struct {
	tasks      *repository.TaskRepository
	categories *repository.CategoryRepository
	counts     *service.CountService
	mux        *http.ServeMux
}

// New creates a new Server.
func New(tasks *repository.TaskRepository, categories *repository.CategoryRepository, counts *service.CountService) *Server {
	s := &Server{
		tasks:      tasks,
		categories: categories,
		counts:     counts,
		mux:        http.NewServeMux(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() {
	// Tasks
	s.mux.HandleFunc("GET /api/tasks", s.handleTaskList)
	s.mux.HandleFunc("POST /api/tasks", s.handleTaskCreate)
	s.mux.HandleFunc("GET /api/tasks/view", s.handleTaskView)
	s.mux.HandleFunc("POST /api/tasks/import", s.handleTaskImport)
	s.mux.HandleFunc("GET /api/tasks/{id}", s.handleTaskGet)
	s.mux.HandleFunc("PATCH /api/tasks/{id}", s.handleTaskUpdate)
	s.mux.HandleFunc("DELETE /api/tasks/{id}", s.handleTaskDelete)

	// Categories
	s.mux.HandleFunc("GET /api/categories", s.handleCategoryList)
	s.mux.HandleFunc("POST /api/categories", s.handleCategoryCreate)
	s.mux.HandleFunc("POST /api/categories/counts", s.handleCountRefresh)
	s.mux.HandleFunc("GET /api/categories/{id}", s.handleCategoryGet)
	s.mux.HandleFunc("PATCH /api/categories/{id}", s.handleCategoryUpdate)
	s.mux.HandleFunc("DELETE /api/categories/{id}", s.handleCategoryDelete)

	// System
	s.mux.HandleFunc("GET /health", s.handleHealth)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, 200, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[error] write json: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
