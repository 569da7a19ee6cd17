package sources

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/agentdex/agentdex/pkg/agent"
	"github.com/agentdex/agentdex/pkg/config"
	"github.com/agentdex/agentdex/pkg/github"
)

// samplePath matches agent directories in the samples repository, capturing
// the language directory and the sample name.
var samplePath = regexp.MustCompile(`^samples/([a-z0-9-]+)/agents/([^/]+)/`)

// sampleLanguages maps the samples repository's language directories onto
// normalized language labels.
var sampleLanguages = map[string]string{
	"python": "python",
	"js":     "typescript",
	"java":   "java",
	"go":     "go",
	"dotnet": "csharp",
}

// Samples synthesizes agent records from the official samples repository
// layout. Samples ship no agent cards, so everything except the directory
// name and language is derived.
type Samples struct {
	Client *github.Client
	Repo   config.RepoRef
	Stars  int
	Logger *log.Logger
}

// Name returns the samples source label.
func (s *Samples) Name() string { return agent.SourceSamples }

// Fetch walks the samples tree and emits one record per unique
// language/sample directory pair.
func (s *Samples) Fetch(ctx context.Context) ([]agent.Agent, error) {
	logger := discard(s.Logger)

	entries, err := s.Client.Tree(ctx, s.Repo.Owner, s.Repo.Repo, s.Repo.Branch)
	if err != nil {
		logger.Warn("samples tree unavailable", "repo", s.Repo.Owner+"/"+s.Repo.Repo, "err", err)
		return nil, nil
	}

	seen := map[string]bool{}
	var out []agent.Agent
	for _, e := range entries {
		m := samplePath.FindStringSubmatch(e.Path)
		if m == nil {
			continue
		}
		langDir, sample := m[1], m[2]
		key := langDir + "/" + sample
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s.synthesize(langDir, sample))
	}

	// Tree order is not guaranteed stable across listings.
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

// synthesize builds a record for one sample directory.
func (s *Samples) synthesize(langDir, sample string) agent.Agent {
	language := sampleLanguages[langDir]
	if language == "" {
		language = agent.LanguageUnknown
	}

	name := fmt.Sprintf("%s (%s)", humanize(sample), humanize(langDir))
	desc := fmt.Sprintf(
		"Official A2A %s sample agent: %s. Demonstrates the Agent2Agent protocol with a runnable reference implementation.",
		humanize(langDir), humanize(sample),
	)
	repoURL := fmt.Sprintf("https://github.com/%s/%s/tree/%s/samples/%s/agents/%s",
		s.Repo.Owner, s.Repo.Repo, s.Repo.Branch, langDir, sample)

	return agent.Agent{
		Slug:        agent.Slugify(name),
		Name:        name,
		Description: desc,
		Provider: agent.Provider{
			Name: s.Repo.Owner,
			URL:  "https://github.com/" + s.Repo.Owner,
		},
		Repository:  repoURL,
		Category:    agent.CategoryGeneral,
		Tags:        []string{"a2a", "sample", "official", language},
		Framework:   agent.FrameworkCustom,
		Language:    language,
		Skills:      []agent.Skill{},
		AuthType:    agent.AuthNone,
		SDKs:        []string{language},
		GitHubStars: s.Stars,
		LastUpdated: today(),
		Official:    true,
		License:     "Apache-2.0",
		Sources:     []string{agent.SourceSamples},
	}
}
