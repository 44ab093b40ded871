// Package server exposes the vocabulary engine over HTTP.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cognicore/tango/pkg/tango"
)

// Server wires the engine to its HTTP routes.
type Server struct {
	engine *tango.Tango
	logger *slog.Logger
	origin string
	router *chi.Mux
}

// New creates a server for the given engine. origin is the single
// origin granted CORS access; empty disables CORS headers.
func New(engine *tango.Tango, logger *slog.Logger, origin string) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		engine: engine,
		logger: logger,
		origin: origin,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if origin != "" {
		r.Use(s.cors)
	}

	r.Get("/health", s.handleHealth)
	r.Post("/upload-epub", s.handleUploadEPUB)
	r.Post("/upload-anki", s.handleUploadAnki)
	r.Get("/known-words", s.handleKnownWords)
	r.Post("/update-known", s.handleUpdateKnown)
	r.Post("/reset-known-words", s.handleResetKnown)
	r.Get("/generate-anki", s.handleGenerateAnki)
	r.Get("/generate-anki-known", s.handleGenerateAnkiKnown)

	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// cors grants the configured origin cross-origin access and answers
// preflight requests.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
