package sources

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/agentdex/agentdex/pkg/agent"
	"github.com/agentdex/agentdex/pkg/classify"
	"github.com/agentdex/agentdex/pkg/config"
	"github.com/agentdex/agentdex/pkg/github"
)

// Registry reads the curated A2A registry repository: one JSON agent card
// per file under agents/.
type Registry struct {
	Client *github.Client
	Repo   config.RepoRef
	Logger *log.Logger
}

// Name returns the registry source label.
func (s *Registry) Name() string { return agent.SourceRegistry }

// registryCard is the subset of an A2A agent card the crawl consumes.
// Unknown fields are ignored; the full raw text still feeds SDK detection.
type registryCard struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Provider    struct {
		Organization string `json:"organization"`
		Name         string `json:"name"`
		URL          string `json:"url"`
	} `json:"provider"`
	Repository   string   `json:"repository"`
	URL          string   `json:"url"`
	WellKnownURI string   `json:"wellKnownURI"`
	Tags         []string `json:"tags"`
	Capabilities struct {
		Streaming         bool `json:"streaming"`
		PushNotifications bool `json:"pushNotifications"`
		MultiTurn         bool `json:"multiTurn"`
	} `json:"capabilities"`
	Skills         []agent.Skill `json:"skills"`
	Authentication struct {
		Schemes []string `json:"schemes"`
	} `json:"authentication"`
	License    string `json:"license"`
	SelfHosted bool   `json:"selfHosted"`
}

// Fetch lists the registry tree and parses every agents/*.json card.
// A missing tree yields an empty result with a warning; a card that fails to
// parse or lacks a name is skipped.
func (s *Registry) Fetch(ctx context.Context) ([]agent.Agent, error) {
	logger := discard(s.Logger)

	entries, err := s.Client.Tree(ctx, s.Repo.Owner, s.Repo.Repo, s.Repo.Branch)
	if err != nil {
		logger.Warn("registry tree unavailable", "repo", s.Repo.Owner+"/"+s.Repo.Repo, "err", err)
		return nil, nil
	}

	var out []agent.Agent
	for _, e := range entries {
		if e.Type != "blob" || !strings.HasPrefix(e.Path, "agents/") || !strings.HasSuffix(e.Path, ".json") {
			continue
		}

		raw, err := s.Client.RawFile(ctx, s.Repo.Owner, s.Repo.Repo, s.Repo.Branch, e.Path)
		if err != nil {
			logger.Warn("skipping registry file", "path", e.Path, "err", err)
			continue
		}

		a, ok := s.normalize(raw)
		if !ok {
			logger.Warn("skipping malformed registry card", "path", e.Path)
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// normalize maps one raw card document into an Agent. Returns ok=false when
// the document cannot be parsed or has no name.
func (s *Registry) normalize(raw string) (agent.Agent, bool) {
	var card registryCard
	if err := json.Unmarshal([]byte(raw), &card); err != nil {
		return agent.Agent{}, false
	}
	if card.Name == "" {
		return agent.Agent{}, false
	}

	provider := card.Provider.Organization
	if provider == "" {
		provider = card.Provider.Name
	}

	license := card.License
	if license == "" {
		license = agent.LicenseUnknown
	}

	authType := agent.AuthNone
	if len(card.Authentication.Schemes) > 0 {
		authType = card.Authentication.Schemes[0]
	}

	tags := agent.DedupeTags(card.Tags, agent.MaxTagsPerSource)
	skills := card.Skills
	if skills == nil {
		skills = []agent.Skill{}
	}

	text := card.Name + " " + card.Description

	a := agent.Agent{
		Slug:        agent.Slugify(card.Name),
		Name:        card.Name,
		Description: card.Description,
		Provider:    agent.Provider{Name: provider, URL: card.Provider.URL},
		Repository:  card.Repository,
		Category:    classify.Category(card.Name, card.Description, tags),
		Tags:        tags,
		Framework:   classify.Framework(text, tags),
		Language:    classify.Language("", raw),
		Skills:      skills,
		Capabilities: agent.Capabilities{
			Streaming:         card.Capabilities.Streaming,
			PushNotifications: card.Capabilities.PushNotifications,
			MultiTurn:         card.Capabilities.MultiTurn,
		},
		AuthType:     authType,
		AgentCardURL: card.WellKnownURI,
		EndpointURL:  card.URL,
		SDKs:         classify.SDKs(raw),
		GitHubStars:  0,
		LastUpdated:  today(),
		SelfHosted:   card.SelfHosted,
		License:      license,
		Sources:      []string{agent.SourceRegistry},
	}
	return a, true
}
