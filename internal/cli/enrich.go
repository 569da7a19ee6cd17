package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentdex/agentdex/pkg/config"
	"github.com/agentdex/agentdex/pkg/enrich"
)

// enrichCommand creates the enrich command.
func (c *CLI) enrichCommand() *cobra.Command {
	var (
		configPath string
		outputDir  string
	)

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Infer missing language, category, and framework labels",
		Long: `Enrich re-examines every agent file whose language, category, or framework
is still at its default and fills the field in when the record's combined
signals (tags, repository name, description) agree strongly enough. Fields
that already hold a real value are never changed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, true)
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}

			prog := newProgress(c.Logger)
			stats, err := enrich.Dir(cfg.OutputDir, c.Logger)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Enriched %d of %d agents", stats.Modified, stats.Files))

			printSuccess("Modified %d of %d agent files", stats.Modified, stats.Files)
			printCounts(
				fmt.Sprintf("language: %d", stats.ByField["language"]),
				fmt.Sprintf("category: %d", stats.ByField["category"]),
				fmt.Sprintf("framework: %d", stats.ByField["framework"]),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "agentdex.toml", "config file path")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "agents directory (overrides config)")
	return cmd
}
