// Package server exposes the diagram engine over HTTP for browser
// clients. It is a thin adapter: every handler delegates to the core
// packages, holds no state of its own, and talks to persistence through
// the store interface.
package server

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/flowpad/flowpad/pkg/layout"
	"github.com/flowpad/flowpad/pkg/store"
)

// Server wires the HTTP routes to the diagram engine and a store.
type Server struct {
	store  store.Store
	engine layout.Engine
	logger *log.Logger
}

// New creates a server. A nil engine selects the default layered engine;
// a nil logger discards.
func New(st store.Store, engine layout.Engine, logger *log.Logger) *Server {
	if engine == nil {
		engine = layout.NewLayered()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{store: st, engine: engine, logger: logger}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Post("/layout", s.handleLayout)

		r.Route("/diagrams", func(r chi.Router) {
			r.Post("/", s.handleCreateDiagram)
			r.Get("/{id}", s.handleGetDiagram)
			r.Put("/{id}", s.handlePutDiagram)
			r.Delete("/{id}", s.handleDeleteDiagram)
			r.Get("/{id}/export", s.handleExportDiagram)
		})

		r.Post("/share", s.handleShareEncode)
		r.Get("/share/{token}", s.handleShareDecode)

		r.Get("/autosave", s.handleAutosaveGet)
		r.Put("/autosave", s.handleAutosavePut)
	})

	return r
}

// requestLogger logs method, path, and duration at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start).Round(time.Millisecond))
	})
}
