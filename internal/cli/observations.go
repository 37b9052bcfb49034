package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sarefo/calendar/pkg/manifest"
	"github.com/sarefo/calendar/pkg/observations"
)

// observationsCommand creates the observations command group.
func (c *CLI) observationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "observations",
		Short: "Manage the observation link store",
	}
	cmd.AddCommand(c.observationsSyncCommand())
	return cmd
}

// observationsSyncCommand creates "observations sync": extract the
// manifest's observation IDs for a year into the observations file.
// Existing entries win, so manual fixes survive a re-sync.
func (c *CLI) observationsSyncCommand() *cobra.Command {
	var (
		manifestPath string
		storePath    string
	)

	cmd := &cobra.Command{
		Use:   "sync <year>",
		Short: "Sync manifest observation IDs into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if manifestPath == "" {
				manifestPath = cfg.Paths.Manifest
			}
			if storePath == "" {
				storePath = cfg.Paths.Observations
			}

			m, err := manifest.Load(manifestPath)
			if err != nil {
				return fmt.Errorf("load manifest: %w", err)
			}

			store, err := observations.ReadFile(storePath)
			if err != nil {
				return fmt.Errorf("load observations: %w", err)
			}

			added := store.Merge(observations.FromManifest(m, year))
			if err := store.WriteFile(storePath); err != nil {
				return fmt.Errorf("write observations: %w", err)
			}

			printSuccess("Synced %d (%d new, %d total)", year, added, store.Len())
			printFile(storePath)
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "photo manifest file")
	cmd.Flags().StringVar(&storePath, "store", "", "observations JSON file")
	return cmd
}
