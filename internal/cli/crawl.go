package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentdex/agentdex/pkg/config"
	"github.com/agentdex/agentdex/pkg/crawl"
	"github.com/agentdex/agentdex/pkg/sources"
	"github.com/agentdex/agentdex/pkg/store"
)

// crawlCommand creates the crawl command.
func (c *CLI) crawlCommand() *cobra.Command {
	var (
		configPath string
		outputDir  string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl all sources and sync the agent directory",
		Long: `Crawl fetches agent records from the A2A registry, the official samples
repository, and two GitHub topic searches, merges them by slug, and writes
one JSON file per surviving agent to the output directory. Stale files from
previous runs are removed, so the directory always reflects the last crawl.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			cfg, err := config.Load(configPath, true)
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}

			client, err := c.newGitHubClient(ctx, cfg, noCache)
			if err != nil {
				return fmt.Errorf("set up github client: %w", err)
			}

			pipeline := &crawl.Pipeline{
				Sources: []sources.Source{
					&sources.Registry{Client: client, Repo: cfg.Registry, Logger: c.Logger},
					&sources.Samples{Client: client, Repo: cfg.Samples, Stars: cfg.SamplesStars, Logger: c.Logger},
					&sources.Search{Client: client, Cfg: cfg.Search, Logger: c.Logger},
					&sources.Broad{Client: client, Cfg: cfg.Search, Logger: c.Logger, OwningOrg: cfg.Samples.Owner},
				},
				OutputDir: cfg.OutputDir,
				Logger:    c.Logger,
			}

			if cfg.Store.MongoURI != "" {
				sink, err := store.NewMongo(ctx, cfg.Store.MongoURI, cfg.Store.Database)
				if err != nil {
					loggerFromContext(ctx).Warn("snapshot store unavailable, continuing without it", "err", err)
				} else {
					defer sink.Close(ctx)
					pipeline.Sink = sink
				}
			}

			prog := newProgress(c.Logger)
			spinner := newSpinnerWithContext(ctx, "Crawling sources...")
			spinner.Start()

			summary, _, err := pipeline.Run(ctx)
			spinner.Stop()
			if err != nil {
				printError("Crawl failed: %v", err)
				return err
			}
			prog.done(fmt.Sprintf("Crawled %d sources", len(pipeline.Sources)))

			printCrawlSummary(summary, cfg.OutputDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "agentdex.toml", "config file path")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (overrides config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the HTTP response cache")
	return cmd
}

// printCrawlSummary renders the run summary.
func printCrawlSummary(s crawl.Summary, dir string) {
	printSuccess("Wrote %d agents to %s", s.Written, dir)
	if s.Removed > 0 {
		printDetail("Removed %d stale files", s.Removed)
	}

	var parts []string
	for _, label := range sourceOrder(s.PerSource) {
		parts = append(parts, fmt.Sprintf("%s: %d", label, s.PerSource[label]))
	}
	printCounts(parts...)
	printCounts(
		fmt.Sprintf("discovered: %d", s.Discovered),
		fmt.Sprintf("merged: %d", s.Merged),
		fmt.Sprintf("kept: %d", s.Kept),
	)

	printKeyValue("categories", topFacets(s.Categories))
	printKeyValue("languages", topFacets(s.Languages))
	printKeyValue("frameworks", topFacets(s.Frameworks))
	printDetail("Run %s finished in %s", s.RunID, s.Duration.Round(time.Millisecond))
}

func sourceOrder(perSource map[string]int) []string {
	labels := make([]string, 0, len(perSource))
	for label := range perSource {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// topFacets renders a facet count map as "label 12, label 3" ordered by
// count descending.
func topFacets(counts map[string]int) string {
	type kv struct {
		label string
		count int
	}
	pairs := make([]kv, 0, len(counts))
	for label, count := range counts {
		pairs = append(pairs, kv{label, count})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].label < pairs[j].label
	})

	out := ""
	for i, p := range pairs {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s %d", p.label, p.count)
	}
	if out == "" {
		out = "none"
	}
	return out
}
