// internal/httpserver/routes_puzzles.go
//
// Puzzle and solving routes:
//   - GET  /puzzles       → library listing
//   - GET  /puzzles/{id}  → one puzzle with its dimensions and initial render
//   - POST /solve         → solve a library puzzle or raw puzzle text
//   - GET  /daily         → today's puzzle and its solution

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/pullblock/internal/grid"
	"github.com/robalobadob/pullblock/internal/library"
	"github.com/robalobadob/pullblock/internal/puzzle"
	"github.com/robalobadob/pullblock/internal/render"
	"github.com/robalobadob/pullblock/internal/service"
	"github.com/robalobadob/pullblock/internal/solver"
)

// mountPuzzles registers the puzzle, solve and daily routes.
func (s *Server) mountPuzzles() {
	s.r.Get("/puzzles", s.handleListPuzzles)
	s.r.Get("/puzzles/{id}", s.handleGetPuzzle)
	s.r.Post("/solve", s.handleSolve)
	s.r.Get("/daily", s.handleDaily)
}

// puzzleDetail is returned by GET /puzzles/{id}.
type puzzleDetail struct {
	library.Puzzle
	Width   int32         `json:"width"`
	Height  int32         `json:"height"`
	Pieces  int32         `json:"pieces"`
	Goal    grid.Position `json:"goal"`
	Initial string        `json:"initial"`
}

func (s *Server) handleListPuzzles(w http.ResponseWriter, r *http.Request) {
	out := []library.Puzzle{}
	if lib := s.svc.Library(); lib != nil {
		out = lib.List()
	}
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Puzzle(chi.URLParam(r, "id"))
	if err != nil {
		s.serviceError(w, err)
		return
	}
	m := p.Model
	_ = json.NewEncoder(w).Encode(puzzleDetail{
		Puzzle:  p,
		Width:   m.Width,
		Height:  m.Height,
		Pieces:  m.NumPieces(),
		Goal:    m.Goal,
		Initial: render.Render(m, solver.NewState(m)),
	})
}

// handleSolve decodes a service.Request and returns the service.Outcome.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req service.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	out, err := s.svc.Solve(r.Context(), req)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(out)
}

// dailyRes is returned by GET /daily.
type dailyRes struct {
	Date string `json:"date"`
	*service.Outcome
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	date, out, err := s.svc.Daily(r.Context(), r.URL.Query().Get("frames") == "true")
	if err != nil {
		s.serviceError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(dailyRes{Date: date, Outcome: out})
}

// serviceError maps service and parse errors onto HTTP statuses.
func (s *Server) serviceError(w http.ResponseWriter, err error) {
	var pe *puzzle.ParseError
	switch {
	case errors.As(err, &pe):
		writeError(w, http.StatusBadRequest, "parse_error", pe.Error())
	case errors.Is(err, service.ErrNoPuzzle):
		writeError(w, http.StatusBadRequest, "no_puzzle")
	case errors.Is(err, service.ErrDepth):
		writeError(w, http.StatusBadRequest, "bad_depth", err.Error())
	case errors.Is(err, service.ErrUnknownPuzzle), errors.Is(err, service.ErrNoLibrary):
		writeError(w, http.StatusNotFound, "not_found")
	default:
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}
