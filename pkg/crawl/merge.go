package crawl

import (
	"github.com/agentdex/agentdex/pkg/agent"
)

// Merge folds incoming into existing and returns the combined record. It is
// a pure function over its inputs; neither argument is mutated.
//
// Callers must present records in source-priority order (registry first),
// so existing always comes from a source at least as authoritative as
// incoming. The one field group flowing the other way is skills: a registry
// record arriving as incoming still wins skills and capabilities, because
// only the registry carries real agent cards.
func Merge(existing, incoming agent.Agent) agent.Agent {
	out := existing

	out.Sources = append([]string(nil), existing.Sources...)
	for _, s := range incoming.Sources {
		if !out.HasSource(s) {
			out.Sources = append(out.Sources, s)
		}
	}

	if incoming.HasSource(agent.SourceRegistry) && len(incoming.Skills) > 0 {
		out.Skills = incoming.Skills
		out.Capabilities = incoming.Capabilities
		if out.AgentCardURL == "" {
			out.AgentCardURL = incoming.AgentCardURL
		}
		if out.EndpointURL == "" {
			out.EndpointURL = incoming.EndpointURL
		}
	}

	if incoming.GitHubStars > out.GitHubStars {
		out.GitHubStars = incoming.GitHubStars
	}
	// Fixed YYYY-MM-DD format makes string comparison temporal comparison.
	if incoming.LastUpdated > out.LastUpdated {
		out.LastUpdated = incoming.LastUpdated
	}

	if out.Repository == "" {
		out.Repository = incoming.Repository
	}
	if out.Language == agent.LanguageUnknown {
		out.Language = incoming.Language
	}
	if out.Framework == agent.FrameworkCustom {
		out.Framework = incoming.Framework
	}
	if out.License == agent.LicenseUnknown {
		out.License = incoming.License
	}

	out.Tags = agent.DedupeTags(append(append([]string(nil), existing.Tags...), incoming.Tags...), agent.MaxTagsMerged)
	out.Official = existing.Official || incoming.Official

	return out
}

// MergeAll folds per-source lists, supplied in priority order (registry,
// samples, search, broad), into one record per slug. First-seen insertion
// order is preserved in the result.
func MergeAll(lists ...[]agent.Agent) []agent.Agent {
	bySlug := make(map[string]int)
	var out []agent.Agent

	for _, list := range lists {
		for _, a := range list {
			if i, ok := bySlug[a.Slug]; ok {
				out[i] = Merge(out[i], a)
				continue
			}
			bySlug[a.Slug] = len(out)
			out = append(out, a)
		}
	}
	return out
}
