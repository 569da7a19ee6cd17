package sources

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/agentdex/agentdex/pkg/agent"
	"github.com/agentdex/agentdex/pkg/config"
)

func samplesHandler(paths ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var b strings.Builder
		b.WriteString(`{"tree":[`)
		for i, p := range paths {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(`{"path":"` + p + `","type":"blob"}`)
		}
		b.WriteString(`]}`)
		w.Write([]byte(b.String()))
	})
}

func TestSamplesFetch(t *testing.T) {
	client := newTestGitHub(t, samplesHandler(
		"README.md",
		"samples/python/agents/airbnb_planner/main.py",
		"samples/python/agents/airbnb_planner/README.md",
		"samples/js/agents/movie-recommender/index.ts",
		"samples/python/hosts/cli/main.py",
	))
	src := &Samples{
		Client: client,
		Repo:   config.RepoRef{Owner: "a2aproject", Repo: "a2a-samples", Branch: "main"},
		Stars:  3200,
	}

	agents, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(agents) != 2 {
		t.Fatalf("got %d agents, want 2 (one per unique pair)", len(agents))
	}

	var planner agent.Agent
	for _, a := range agents {
		if strings.Contains(a.Slug, "airbnb") {
			planner = a
		}
	}
	if planner.Name != "Airbnb Planner (Python)" {
		t.Errorf("Name = %q", planner.Name)
	}
	if planner.Language != "python" {
		t.Errorf("Language = %q, want python", planner.Language)
	}
	if !planner.Official {
		t.Error("sample agents are official")
	}
	if planner.License != "Apache-2.0" {
		t.Errorf("License = %q", planner.License)
	}
	if planner.GitHubStars != 3200 {
		t.Errorf("GitHubStars = %d, want placeholder 3200", planner.GitHubStars)
	}
	if len(planner.Skills) != 0 || planner.Skills == nil {
		t.Errorf("Skills = %+v, want empty non-nil", planner.Skills)
	}
	if !strings.Contains(planner.Repository, "samples/python/agents/airbnb_planner") {
		t.Errorf("Repository = %q", planner.Repository)
	}
}

func TestSamplesLanguageDirMapping(t *testing.T) {
	client := newTestGitHub(t, samplesHandler(
		"samples/js/agents/coder/index.ts",
		"samples/dotnet/agents/coder/Program.cs",
		"samples/zig/agents/coder/main.zig",
	))
	src := &Samples{Client: client, Repo: config.RepoRef{Owner: "o", Repo: "r", Branch: "main"}}

	agents, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	got := map[string]string{}
	for _, a := range agents {
		got[a.Name] = a.Language
	}
	want := map[string]string{
		"Coder (Js)":     "typescript",
		"Coder (Dotnet)": "csharp",
		"Coder (Zig)":    agent.LanguageUnknown,
	}
	for name, lang := range want {
		if got[name] != lang {
			t.Errorf("language for %q = %q, want %q", name, got[name], lang)
		}
	}
}

func TestSamplesUnreachableTreeIsEmpty(t *testing.T) {
	client := newTestGitHub(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	src := &Samples{Client: client, Repo: config.RepoRef{Owner: "o", Repo: "r", Branch: "main"}}

	agents, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unreachable tree must not error, got %v", err)
	}
	if len(agents) != 0 {
		t.Errorf("got %d agents, want 0", len(agents))
	}
}

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"airbnb_planner-agent": "Airbnb Planner Agent",
		"echo":                 "Echo",
		"movie-recommender":    "Movie Recommender",
	}
	for in, want := range cases {
		if got := humanize(in); got != want {
			t.Errorf("humanize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDatePart(t *testing.T) {
	if got := datePart("2025-06-01T12:30:00Z"); got != "2025-06-01" {
		t.Errorf("datePart = %q", got)
	}
	if got := datePart("not a date"); got != today() {
		t.Errorf("malformed timestamp should fall back to today, got %q", got)
	}
	if got := datePart(""); got != today() {
		t.Errorf("empty timestamp should fall back to today, got %q", got)
	}
}
