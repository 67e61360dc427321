package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router builds the chi router with all routes and middleware attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/page", s.handlePage)
		r.Get("/page/*", s.handlePage)
		r.Get("/collection", s.handleCollection)
		r.Get("/nav", s.handleNav)
	})

	if s.cfg.ContentRoot != "" {
		r.Get("/content/*", s.handleContent)
	}

	return r
}
