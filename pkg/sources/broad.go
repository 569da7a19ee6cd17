package sources

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/agentdex/agentdex/pkg/agent"
	"github.com/agentdex/agentdex/pkg/config"
	"github.com/agentdex/agentdex/pkg/github"
)

// Broad sweeps a single page of the wider protocol topic. It runs last in
// priority, so anything it finds that a narrower source already covered
// only adds a source label.
type Broad struct {
	Client *github.Client
	Cfg    config.Search
	Logger *log.Logger

	// OwningOrg is the protocol steward whose own repos (spec, SDKs) are
	// excluded from this sweep.
	OwningOrg string
}

// Name returns the broad-topic source label.
func (s *Broad) Name() string { return agent.SourceBroad }

// Fetch pulls one page of the broad topic with a reduced exclusion set.
func (s *Broad) Fetch(ctx context.Context) ([]agent.Agent, error) {
	logger := discard(s.Logger)
	query := "topic:" + s.Cfg.BroadTopic

	res, err := s.Client.SearchRepos(ctx, query, 1, s.Cfg.PageSize)
	if err != nil {
		logger.Warn("broad search failed", "query", query, "err", err)
		return nil, nil
	}

	var out []agent.Agent
	for _, repo := range res.Items {
		if s.exclude(repo) {
			continue
		}
		out = append(out, repoToAgent(repo, agent.SourceBroad, s.Cfg.OfficialOrgs))
	}
	return out, nil
}

func (s *Broad) exclude(repo github.Repo) bool {
	if repo.Archived {
		return true
	}
	if awesomeRepoName.MatchString(strings.ToLower(repo.Name)) {
		return true
	}
	return s.OwningOrg != "" && strings.EqualFold(repo.Owner.Login, s.OwningOrg)
}
