package server

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/chdigius/awake.fm-artist-server-sub000/pkg/content"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"nodes":  s.ops.Graph().NodeCount(),
	})
}

// handlePage serves the full payload for one node. The path comes from the
// URL (GET /api/page/artists/zol) or a ?path= query; bare GET /api/page
// serves the root node.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(chi.URLParam(r, "*"), "/")
	if path == "" {
		path = strings.Trim(r.URL.Query().Get("path"), "/")
	}

	payload := s.ops.Page(path)
	if payload == nil {
		s.writeError(w, http.StatusNotFound, "page not found")
		return
	}
	s.writeJSON(w, http.StatusOK, payload)
}

// handleCollection serves a standalone paged collection query, the endpoint
// behind "load more" and page-number flows.
func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	path := strings.Trim(q.Get("path"), "/")
	if path == "" {
		s.writeError(w, http.StatusBadRequest, "missing path parameter")
		return
	}

	query := content.Query{
		Source:   q.Get("source"),
		Path:     path,
		Page:     intParam(q.Get("page")),
		PageSize: intParam(q.Get("page_size")),
		Sort:     q.Get("sort"),
		Limit:    intParam(q.Get("limit")),
		Card:     q.Get("card"),
	}
	if mode := q.Get("mode"); mode != "" {
		query.Layout = map[string]any{"mode": mode}
	}

	payload := s.ops.Collection(query)
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.ops.Nav())
}

// handleContent serves media files from the content root. Paths are
// resolved inside the root only; anything escaping it is rejected.
func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	rel := chi.URLParam(r, "*")

	clean := filepath.Clean("/" + rel)
	if clean == "/" {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	http.ServeFile(w, r, filepath.Join(s.cfg.ContentRoot, clean))
}

func intParam(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]any{"error": msg})
}
