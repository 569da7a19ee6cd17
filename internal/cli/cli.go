// Package cli implements the agentdex command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/agentdex/agentdex/pkg/buildinfo"
	"github.com/agentdex/agentdex/pkg/cache"
	"github.com/agentdex/agentdex/pkg/config"
	"github.com/agentdex/agentdex/pkg/github"
	"github.com/agentdex/agentdex/pkg/httputil"
)

// appName is the application name used for directories and display.
const appName = "agentdex"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "agentdex",
		Short:        "Agentdex builds a directory of A2A protocol agents",
		Long:         `Agentdex crawls the A2A registry, the official samples repository, and GitHub topic searches, merges everything it finds into one record per agent, and writes the result as a directory of JSON files.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.crawlCommand())
	root.AddCommand(c.enrichCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newGitHubClient builds the shared API client: response cache, retry, and
// one rate-limit budget across every fetcher.
func (c *CLI) newGitHubClient(ctx context.Context, cfg config.Config, noCache bool) (*github.Client, error) {
	store, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}

	token := config.Token()
	if token == "" {
		c.Logger.Debug("no GITHUB_TOKEN set, using the anonymous rate budget")
	}

	return github.NewClient(github.Config{
		Token:   token,
		Cache:   store,
		TTL:     time.Duration(cfg.Cache.TTLHours) * time.Hour,
		Limiter: httputil.NewLimiter(token != ""),
	}), nil
}

func newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.RedisAddr != "" {
		return cache.NewRedisCache(ctx, cfg.Cache.RedisAddr)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/agentdex/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
