package enrich

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/agentdex/agentdex/pkg/agent"
)

// Stats summarizes one enrichment pass over a directory.
type Stats struct {
	Files    int
	Modified int
	ByField  map[string]int
}

// Dir enriches every .json agent file under dir in place. Files that fail to
// parse are skipped with a warning; only filesystem errors are fatal.
func Dir(dir string, logger *log.Logger) (Stats, error) {
	stats := Stats{ByField: map[string]int{}}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return stats, fmt.Errorf("list agents dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return stats, fmt.Errorf("read %s: %w", name, err)
		}

		var a agent.Agent
		if err := json.Unmarshal(data, &a); err != nil {
			logger.Warn("skipping unparsable agent file", "file", name, "err", err)
			continue
		}
		stats.Files++

		changes := Apply(&a)
		if len(changes) == 0 {
			continue
		}
		for _, c := range changes {
			stats.ByField[c.Field]++
			logger.Debug("enriched", "slug", a.Slug, "field", c.Field, "from", c.From, "to", c.To)
		}

		out, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			return stats, fmt.Errorf("marshal %s: %w", name, err)
		}
		out = append(out, '\n')
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return stats, fmt.Errorf("write %s: %w", name, err)
		}
		stats.Modified++
	}
	return stats, nil
}
