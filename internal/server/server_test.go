package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/agentdex/agentdex/pkg/agent"
)

func newTestServer(t *testing.T, agents ...agent.Agent) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	for _, a := range agents {
		data, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, a.Slug+".json"), append(data, '\n'), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	srv := httptest.NewServer((&Server{Dir: dir}).Router())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if v != nil {
		if err := json.NewDecoder(res.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return res.StatusCode
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	if status := getJSON(t, srv.URL+"/healthz", nil); status != http.StatusOK {
		t.Errorf("status = %d", status)
	}
}

func TestListAgents(t *testing.T) {
	srv := newTestServer(t,
		agent.Agent{Slug: "starred", Name: "Starred", Category: "search", Language: "go", GitHubStars: 50},
		agent.Agent{Slug: "plain", Name: "Plain", Category: "travel", Language: "python", GitHubStars: 5},
	)

	var body struct {
		Count  int           `json:"count"`
		Agents []agent.Agent `json:"agents"`
	}
	if status := getJSON(t, srv.URL+"/agents", &body); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if body.Count != 2 {
		t.Errorf("count = %d, want 2", body.Count)
	}
	if body.Agents[0].Slug != "starred" {
		t.Errorf("first agent = %q, want star-descending order", body.Agents[0].Slug)
	}
}

func TestListAgentsFiltered(t *testing.T) {
	srv := newTestServer(t,
		agent.Agent{Slug: "a", Name: "A", Category: "search", Language: "go", Framework: "custom"},
		agent.Agent{Slug: "b", Name: "B", Category: "travel", Language: "go", Framework: "langgraph"},
	)

	var body struct {
		Count  int           `json:"count"`
		Agents []agent.Agent `json:"agents"`
	}
	getJSON(t, srv.URL+"/agents?category=travel", &body)
	if body.Count != 1 || body.Agents[0].Slug != "b" {
		t.Errorf("category filter: %+v", body)
	}

	getJSON(t, srv.URL+"/agents?language=go&framework=langgraph", &body)
	if body.Count != 1 || body.Agents[0].Slug != "b" {
		t.Errorf("combined filter: %+v", body)
	}

	getJSON(t, srv.URL+"/agents?category=finance", &body)
	if body.Count != 0 || body.Agents == nil {
		t.Errorf("empty filter result must be an empty list: %+v", body)
	}
}

func TestGetAgent(t *testing.T) {
	srv := newTestServer(t, agent.Agent{Slug: "echo-agent", Name: "Echo Agent"})

	var a agent.Agent
	if status := getJSON(t, srv.URL+"/agents/echo-agent", &a); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if a.Name != "Echo Agent" {
		t.Errorf("Name = %q", a.Name)
	}
}

func TestGetAgentNotFound(t *testing.T) {
	srv := newTestServer(t)
	if status := getJSON(t, srv.URL+"/agents/nope", nil); status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
}

func TestStats(t *testing.T) {
	srv := newTestServer(t,
		agent.Agent{Slug: "a", Category: "search", Language: "go", Framework: "custom"},
		agent.Agent{Slug: "b", Category: "search", Language: "python", Framework: "custom"},
	)

	var stats struct {
		Total      int            `json:"total"`
		Categories map[string]int `json:"categories"`
		Languages  map[string]int `json:"languages"`
	}
	if status := getJSON(t, srv.URL+"/stats", &stats); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if stats.Total != 2 || stats.Categories["search"] != 2 || stats.Languages["go"] != 1 {
		t.Errorf("stats = %+v", stats)
	}
}
