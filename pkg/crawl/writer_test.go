package crawl

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentdex/agentdex/pkg/agent"
)

func writable(slug string, stars int) agent.Agent {
	return agent.Agent{
		Slug:        slug,
		Name:        "Agent " + slug,
		Description: "A record used by the writer tests.",
		Repository:  "https://github.com/acme/" + slug,
		GitHubStars: stars,
		Sources:     []string{agent.SourceSearch},
	}
}

func dirContents(t *testing.T, dir string) map[string][]byte {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	out := map[string][]byte{}
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			t.Fatal(err)
		}
		out[e.Name()] = data
	}
	return out
}

func TestSyncWritesPerAgentFiles(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{}

	written, removed, err := w.Sync(dir, []agent.Agent{writable("alpha", 5), writable("beta", 9)})
	if err != nil {
		t.Fatalf("Sync error: %v", err)
	}
	if written != 2 || removed != 0 {
		t.Errorf("written/removed = %d/%d, want 2/0", written, removed)
	}

	data, err := os.ReadFile(filepath.Join(dir, "alpha.json"))
	if err != nil {
		t.Fatalf("missing output file: %v", err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("output must end with a trailing newline")
	}
	if !strings.Contains(string(data), "\n  \"slug\"") {
		t.Error("output must be pretty-printed")
	}

	var round map[string]any
	if err := json.Unmarshal(data, &round); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if _, ok := round["sources"]; ok {
		t.Error("internal sources field must be stripped")
	}
}

func TestSyncIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{}
	agents := []agent.Agent{writable("alpha", 5), writable("beta", 9)}

	if _, _, err := w.Sync(dir, agents); err != nil {
		t.Fatal(err)
	}
	first := dirContents(t, dir)

	_, removed, err := w.Sync(dir, agents)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0 on identical rerun", removed)
	}
	second := dirContents(t, dir)

	if len(first) != len(second) {
		t.Fatalf("file count changed: %d -> %d", len(first), len(second))
	}
	for name, data := range first {
		if string(second[name]) != string(data) {
			t.Errorf("%s changed between identical runs", name)
		}
	}
}

func TestSyncDeletesStaleFiles(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{}

	if _, _, err := w.Sync(dir, []agent.Agent{writable("alpha", 5), writable("beta", 9), writable("gamma", 1)}); err != nil {
		t.Fatal(err)
	}

	written, removed, err := w.Sync(dir, []agent.Agent{writable("beta", 9)})
	if err != nil {
		t.Fatal(err)
	}
	if written != 1 || removed != 2 {
		t.Errorf("written/removed = %d/%d, want 1/2", written, removed)
	}

	contents := dirContents(t, dir)
	if len(contents) != 1 {
		t.Errorf("dir has %d files, want 1", len(contents))
	}
	if _, ok := contents["beta.json"]; !ok {
		t.Error("beta.json missing after sync")
	}
}

func TestSyncLeavesForeignFilesAlone(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("docs\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := &Writer{}
	if _, _, err := w.Sync(dir, []agent.Agent{writable("alpha", 1)}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "README.md")); err != nil {
		t.Error("non-JSON files must survive the sync")
	}
}
