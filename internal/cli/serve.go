package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentdex/agentdex/internal/server"
	"github.com/agentdex/agentdex/pkg/config"
)

const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		outputDir  string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the agent directory over HTTP",
		Long: `Serve exposes the crawled directory as a small JSON API. The files on disk
stay the source of truth: every request re-reads the output directory, so a
fresh crawl shows up without restarting the server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, true)
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           (&server.Server{Dir: cfg.OutputDir, Logger: c.Logger}).Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()
			printInfo("Serving %s on %s", cfg.OutputDir, styleLink.Render("http://"+addr))

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serve: %w", err)
			case <-cmd.Context().Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("shutdown: %w", err)
				}
				printInfo("Server stopped")
				return nil
			}
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "agentdex.toml", "config file path")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "agents directory (overrides config)")
	cmd.Flags().StringVarP(&addr, "addr", "a", "127.0.0.1:8080", "listen address")
	return cmd
}
