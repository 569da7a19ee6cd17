package crawl

import (
	"unicode/utf8"

	"github.com/agentdex/agentdex/pkg/agent"
)

// Quality floor for records that make it into the directory. Lengths are
// counted in runes so non-ASCII names and descriptions are held to the same
// floor as ASCII ones.
const (
	minNameLen        = 3
	minDescriptionLen = 10
)

// Keep reports whether a merged record clears the quality floor: a usable
// name, a description long enough to render, and at least one link (source
// repository or live endpoint).
func Keep(a agent.Agent) bool {
	if utf8.RuneCountInString(a.Name) < minNameLen {
		return false
	}
	if utf8.RuneCountInString(a.Description) < minDescriptionLen {
		return false
	}
	return a.Repository != "" || a.EndpointURL != ""
}

// Filter returns the records that pass Keep, preserving order.
func Filter(agents []agent.Agent) []agent.Agent {
	out := agents[:0:0]
	for _, a := range agents {
		if Keep(a) {
			out = append(out, a)
		}
	}
	return out
}
