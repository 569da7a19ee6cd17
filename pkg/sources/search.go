package sources

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/agentdex/agentdex/pkg/agent"
	"github.com/agentdex/agentdex/pkg/classify"
	"github.com/agentdex/agentdex/pkg/config"
	"github.com/agentdex/agentdex/pkg/github"
)

// searchPageDelay spaces out search API pages; the search endpoint has a
// much lower secondary rate limit than the rest of the API.
var searchPageDelay = 2 * time.Second

// Repository name patterns that are about the protocol rather than agents
// built on it: the spec repos, SDK repos, sample collections, awesome lists.
var (
	specRepoName    = regexp.MustCompile(`^a2a$|^a2a-protocol$|^a2a-spec`)
	sdkRepoName     = regexp.MustCompile(`(^|-)sdk(-|$)`)
	samplesRepoName = regexp.MustCompile(`^a2a-samples$`)
	awesomeRepoName = regexp.MustCompile(`awesome`)
)

// Search discovers agents through the GitHub repository search for the
// primary protocol topic.
type Search struct {
	Client *github.Client
	Cfg    config.Search
	Logger *log.Logger
}

// Name returns the topic-search source label.
func (s *Search) Name() string { return agent.SourceSearch }

// Fetch pages through the topic search, stopping early on a short page.
func (s *Search) Fetch(ctx context.Context) ([]agent.Agent, error) {
	logger := discard(s.Logger)
	query := "topic:" + s.Cfg.Topic

	var out []agent.Agent
	for page := 1; page <= s.Cfg.MaxPages; page++ {
		if page > 1 {
			select {
			case <-time.After(searchPageDelay):
			case <-ctx.Done():
				return out, ctx.Err()
			}
		}

		res, err := s.Client.SearchRepos(ctx, query, page, s.Cfg.PageSize)
		if err != nil {
			logger.Warn("search page failed", "query", query, "page", page, "err", err)
			break
		}

		for _, repo := range res.Items {
			if excludeFromSearch(repo) {
				continue
			}
			out = append(out, repoToAgent(repo, agent.SourceSearch, s.Cfg.OfficialOrgs))
		}

		if len(res.Items) < s.Cfg.PageSize {
			break
		}
	}
	return out, nil
}

// excludeFromSearch reports whether a search hit is protocol infrastructure
// rather than an agent.
func excludeFromSearch(repo github.Repo) bool {
	if repo.Archived {
		return true
	}
	name := strings.ToLower(repo.Name)
	return specRepoName.MatchString(name) ||
		sdkRepoName.MatchString(name) ||
		samplesRepoName.MatchString(name) ||
		awesomeRepoName.MatchString(name)
}

// repoToAgent normalizes a repository search hit into an agent record.
// Shared by the topic and broad-topic sources.
func repoToAgent(repo github.Repo, source string, officialOrgs []string) agent.Agent {
	text := repo.Name + " " + repo.Description

	license := agent.LicenseUnknown
	if repo.License.SPDXID != "" && repo.License.SPDXID != "NOASSERTION" {
		license = repo.License.SPDXID
	}

	updated := repo.PushedAt
	if updated == "" {
		updated = repo.UpdatedAt
	}

	return agent.Agent{
		Slug:        agent.Slugify(repo.Name),
		Name:        humanize(repo.Name),
		Description: strings.TrimSpace(repo.Description),
		Provider: agent.Provider{
			Name: repo.Owner.Login,
			URL:  repo.Owner.HTMLURL,
		},
		Repository:  repo.HTMLURL,
		Category:    classify.Category(repo.Name, repo.Description, repo.Topics),
		Tags:        agent.DedupeTags(repo.Topics, agent.MaxTagsPerSource),
		Framework:   classify.Framework(text, repo.Topics),
		Language:    classify.Language(repo.Language, text),
		Skills:      []agent.Skill{},
		AuthType:    agent.AuthNone,
		SDKs:        classify.SDKs(text + " " + strings.Join(repo.Topics, " ")),
		GitHubStars: repo.Stars,
		LastUpdated: datePart(updated),
		Official:    isOfficial(repo.Owner.Login, officialOrgs),
		License:     license,
		Sources:     []string{source},
	}
}

// isOfficial reports whether the owning org falls under the official
// allow-list. Entries are name prefixes, so "google" also covers orgs like
// googlesamples and google-gemini.
func isOfficial(owner string, orgs []string) bool {
	owner = strings.ToLower(owner)
	for _, org := range orgs {
		if strings.HasPrefix(owner, strings.ToLower(org)) {
			return true
		}
	}
	return false
}
