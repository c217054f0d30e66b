// internal/httpserver/routes_solutions.go
//
// Archive of past solves:
//   - GET    /solutions?limit=N  → newest first (default 20, max 100)
//   - GET    /solutions/{id}
//   - DELETE /solutions/{id}     → admin token required

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/pullblock/internal/store"
)

const maxListLimit = 100

func (s *Server) mountSolutions() {
	s.r.Route("/solutions", func(r chi.Router) {
		r.Get("/", s.handleListSolutions)
		r.Get("/{id}", s.handleGetSolution)
		r.With(s.requireAuth()).Delete("/{id}", s.handleDeleteSolution)
	})
}

func (s *Server) handleListSolutions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, `{"error":"bad_limit"}`, http.StatusBadRequest)
			return
		}
		limit = min(n, maxListLimit)
	}
	list, err := s.svc.Solutions(r.Context(), limit)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(list)
}

func (s *Server) handleGetSolution(w http.ResponseWriter, r *http.Request) {
	rec, err := s.svc.Solution(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(rec)
}

func (s *Server) handleDeleteSolution(w http.ResponseWriter, r *http.Request) {
	err := s.svc.DeleteSolution(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
