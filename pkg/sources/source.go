// Package sources implements the four independent agent discovery sources:
// the curated A2A registry, the official samples repository, and two GitHub
// topic searches.
//
// Each source produces normalized [agent.Agent] records. A bad individual
// item never fails a fetch (it is skipped with a warning) and a source
// whose listing is entirely unreachable contributes zero records without
// affecting its siblings. Declared priority (registry > samples > search >
// broad) is the merge tie-break, not a fetch ordering: the pipeline runs
// all sources concurrently.
package sources

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/agentdex/agentdex/pkg/agent"
)

// Source is one origin of agent records.
type Source interface {
	// Name returns the source label recorded in Agent.Sources.
	Name() string

	// Fetch retrieves and normalizes all records from this source.
	// Implementations recover per-item failures internally; a returned error
	// means the source as a whole produced nothing.
	Fetch(ctx context.Context) ([]agent.Agent, error)
}

// today returns the crawl date at day granularity, used as lastUpdated for
// sources that carry no timestamp of their own.
func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

// datePart truncates an RFC 3339 timestamp to its date, or returns the crawl
// date when the input is empty or malformed.
func datePart(ts string) string {
	if len(ts) >= 10 {
		d := ts[:10]
		if _, err := time.Parse("2006-01-02", d); err == nil {
			return d
		}
	}
	return today()
}

// humanize turns a repo or directory name into a display name:
// "airbnb_planner-agent" becomes "Airbnb Planner Agent".
func humanize(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// discard returns a logger that drops everything, so sources constructed
// without a logger stay quiet instead of panicking.
func discard(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return log.NewWithOptions(io.Discard, log.Options{})
}
