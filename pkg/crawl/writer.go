package crawl

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agentdex/agentdex/pkg/agent"
)

// Writer syncs merged records to a directory of per-agent JSON files.
type Writer struct{}

// Sync writes one pretty-printed JSON file per record to dir and deletes any
// leftover .json file from a previous run. Records are written sorted by
// stars descending (slug ascending on ties) and with the internal sources
// field stripped. Returns the number of files written and removed.
//
// Sync is idempotent: the same input twice leaves dir byte-identical and
// removes nothing.
func (w *Writer) Sync(dir string, agents []agent.Agent) (written, removed int, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, 0, fmt.Errorf("create output dir: %w", err)
	}

	sorted := append([]agent.Agent(nil), agents...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].GitHubStars != sorted[j].GitHubStars {
			return sorted[i].GitHubStars > sorted[j].GitHubStars
		}
		return sorted[i].Slug < sorted[j].Slug
	})

	current := make(map[string]bool, len(sorted))
	for _, a := range sorted {
		a.Sources = nil

		data, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			return written, removed, fmt.Errorf("marshal %s: %w", a.Slug, err)
		}
		data = append(data, '\n')

		name := a.Slug + ".json"
		current[name] = true
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return written, removed, fmt.Errorf("write %s: %w", name, err)
		}
		written++
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return written, removed, fmt.Errorf("list output dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") || current[e.Name()] {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return written, removed, fmt.Errorf("remove stale %s: %w", e.Name(), err)
		}
		removed++
	}
	return written, removed, nil
}
