// internal/httpserver/server.go
//
// HTTP server wiring for the pull-block solver.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Puzzle endpoints: GET /puzzles, GET /puzzles/{id}, GET /daily.
//   - Solving: POST /solve.
//   - Archive: GET /solutions, GET /solutions/{id}, DELETE /solutions/{id} (admin).
//   - Admin token issuing: POST /auth/token.
//
// Notes:
//   - The request timeout also bounds the search: the solver polls the
//     request context and reports "canceled" when it expires.
//   - CORS is origin-aware and credentials-enabled.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pullblock/internal/library"
	"github.com/robalobadob/pullblock/internal/service"
)

// Options carries the settings main reads from the environment.
type Options struct {
	ClientOrigin   string        // CORS origin; default http://localhost:5173
	Timeout        time.Duration // per-request bound; default 10s
	JWTSecret      string        // HS256 key; default dev_secret_change_me
	JWTExpiresDays int           // default 14
	AdminKeyHash   string        // bcrypt hash of the admin key; empty disables /auth/token
}

// Server bundles the router and the solve service.
type Server struct {
	r    *chi.Mux
	svc  *service.Service
	opts Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(svc *service.Service, opts Options) *Server {
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.JWTSecret == "" {
		opts.JWTSecret = "dev_secret_change_me"
	}
	if opts.JWTExpiresDays <= 0 {
		opts.JWTExpiresDays = 14
	}
	s := &Server{r: chi.NewRouter(), svc: svc, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)             // add X-Request-ID
	s.r.Use(chimw.RealIP)                // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)             // recover from panics
	s.r.Use(chimw.Timeout(opts.Timeout)) // bound handler time
	s.r.Use(jsonContentType)             // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"pullblock","endpoints":["/health","/puzzles","POST /solve","/solutions","/daily","POST /auth/token"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "puzzles": s.puzzleCount()})
	})

	s.mountPuzzles()
	s.mountSolutions()
	s.mountAuth()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	log.Info().Str("addr", addr).Msg("listening")
	return http.ListenAndServe(addr, s.r)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) puzzleCount() int {
	if lib := s.svc.Library(); lib != nil {
		return lib.Len()
	}
	return library.Stats()
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------- small util --------------------------------

// writeError sends {"error":code} and, when given, a human-readable detail.
func writeError(w http.ResponseWriter, status int, code string, detail ...string) {
	body := map[string]string{"error": code}
	if len(detail) > 0 && detail[0] != "" {
		body["detail"] = detail[0]
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
