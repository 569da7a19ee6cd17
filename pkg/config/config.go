// Package config loads the optional agentdex.toml configuration file.
//
// Every field has a working default, so the file is only needed to point
// the crawl at different repositories or tune limits. Command-line flags
// override file values; the GitHub token is taken from the GITHUB_TOKEN
// environment variable only and never from the file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// RepoRef identifies a GitHub repository and branch.
type RepoRef struct {
	Owner  string `toml:"owner"`
	Repo   string `toml:"repo"`
	Branch string `toml:"branch"`
}

// Search holds topic-search tuning.
type Search struct {
	Topic        string   `toml:"topic"`
	BroadTopic   string   `toml:"broad_topic"`
	MaxPages     int      `toml:"max_pages"`
	PageSize     int      `toml:"page_size"`
	OfficialOrgs []string `toml:"official_orgs"`
}

// Cache holds response-cache settings.
type Cache struct {
	TTLHours  int    `toml:"ttl_hours"`
	RedisAddr string `toml:"redis_addr"`
}

// Store holds optional snapshot-store settings.
type Store struct {
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// Config is the full configuration tree.
type Config struct {
	OutputDir    string  `toml:"output_dir"`
	SamplesStars int     `toml:"samples_stars"`
	Registry     RepoRef `toml:"registry"`
	Samples      RepoRef `toml:"samples"`
	Search       Search  `toml:"search"`
	Cache        Cache   `toml:"cache"`
	Store        Store   `toml:"store"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		OutputDir: "data/agents",
		// Stand-in star count for synthesized sample records; tracks the
		// parent samples repository, not the individual sample.
		SamplesStars: 3200,
		Registry:     RepoRef{Owner: "prassanna-ravishankar", Repo: "a2a-registry", Branch: "main"},
		Samples:      RepoRef{Owner: "a2aproject", Repo: "a2a-samples", Branch: "main"},
		Search: Search{
			Topic:      "a2a-protocol",
			BroadTopic: "a2a",
			MaxPages:   5,
			PageSize:   100,
			OfficialOrgs: []string{
				"a2aproject", "google", "google-gemini", "microsoft", "awslabs",
			},
		},
		Cache: Cache{TTLHours: 24},
		Store: Store{Database: "agentdex"},
	}
}

// Load reads path and overlays it on the defaults. A missing file is not an
// error when optional is true; any present file must parse cleanly.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && optional {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Token returns the GitHub bearer token from the environment, if any.
func Token() string {
	return os.Getenv("GITHUB_TOKEN")
}
