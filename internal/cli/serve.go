package cli

import (
	"github.com/spf13/cobra"

	"github.com/sarefo/calendar/internal/server"
)

// serveCommand creates the serve command for the preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the preview server",
		Long: `Serve runs an HTTP API over the build pipeline, composing month
pages on demand so manifests and locations can be previewed while
editing:

  GET /healthz                     liveness
  GET /api/months                  manifest coverage
  GET /api/months/{key}            composed month page (?lang=, ?refresh=1)
  GET /api/months/{key}/map.svg    world-map artifact
  GET /files/...                   rendered output directory`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Server.Listen = listen
			}

			runner, err := c.newRunner(cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			return server.New(cfg, runner, c.Logger).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config, :8475)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
