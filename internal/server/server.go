// Package server exposes the crawled agent directory over HTTP.
//
// The output directory of JSON files stays the source of truth: every
// request re-reads it, so a fresh crawl is visible immediately with no
// cache invalidation or restart.
package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/agentdex/agentdex/pkg/agent"
)

// Server serves the agent directory.
type Server struct {
	Dir    string
	Logger *log.Logger
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/agents", s.handleList)
	r.Get("/agents/{slug}", s.handleGet)
	r.Get("/stats", s.handleStats)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	agents, err := s.load()
	if err != nil {
		s.fail(w, err)
		return
	}

	q := r.URL.Query()
	filtered := agents[:0:0]
	for _, a := range agents {
		if !matchParam(q.Get("category"), a.Category) ||
			!matchParam(q.Get("language"), a.Language) ||
			!matchParam(q.Get("framework"), a.Framework) {
			continue
		}
		filtered = append(filtered, a)
	}
	if filtered == nil {
		filtered = []agent.Agent{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":  len(filtered),
		"agents": filtered,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	data, err := os.ReadFile(filepath.Join(s.Dir, filepath.Base(slug)+".json"))
	if os.IsNotExist(err) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "agent not found"})
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	agents, err := s.load()
	if err != nil {
		s.fail(w, err)
		return
	}

	stats := struct {
		Total      int            `json:"total"`
		Categories map[string]int `json:"categories"`
		Languages  map[string]int `json:"languages"`
		Frameworks map[string]int `json:"frameworks"`
	}{
		Total:      len(agents),
		Categories: map[string]int{},
		Languages:  map[string]int{},
		Frameworks: map[string]int{},
	}
	for _, a := range agents {
		stats.Categories[a.Category]++
		stats.Languages[a.Language]++
		stats.Frameworks[a.Framework]++
	}
	writeJSON(w, http.StatusOK, stats)
}

// load reads every agent file in the directory, sorted by stars descending
// to match the writer's ordering.
func (s *Server) load() ([]agent.Agent, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}

	var agents []agent.Agent
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.Dir, e.Name()))
		if err != nil {
			return nil, err
		}
		var a agent.Agent
		if err := json.Unmarshal(data, &a); err != nil {
			if s.Logger != nil {
				s.Logger.Warn("skipping unparsable agent file", "file", e.Name(), "err", err)
			}
			continue
		}
		agents = append(agents, a)
	}

	sort.Slice(agents, func(i, j int) bool {
		if agents[i].GitHubStars != agents[j].GitHubStars {
			return agents[i].GitHubStars > agents[j].GitHubStars
		}
		return agents[i].Slug < agents[j].Slug
	})
	return agents, nil
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	if s.Logger != nil {
		s.Logger.Error("request failed", "err", err)
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func matchParam(want, got string) bool {
	return want == "" || strings.EqualFold(want, got)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
