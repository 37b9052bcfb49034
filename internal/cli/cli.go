// Package cli implements the photocal command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/sarefo/calendar/pkg/buildinfo"
	"github.com/sarefo/calendar/pkg/cache"
	"github.com/sarefo/calendar/pkg/config"
	"github.com/sarefo/calendar/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "photocal"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is the --config flag value; empty means the optional
	// photocal.toml in the working directory.
	ConfigPath string

	// NoColor disables styled terminal output.
	NoColor bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "photocal",
		Short:        "Photocal builds photo calendar pages",
		Long:         `Photocal composes printable photo calendar pages: Monday-aligned month grids with one photo per day, a localized header, and a world map marking where the month's photos were taken.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "path to photocal.toml")
	root.PersistentFlags().BoolVar(&c.NoColor, "no-color", false, "disable colored output")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if c.NoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
		return nil
	}

	// Register all subcommands
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.weeksCommand())
	root.AddCommand(c.mapCommand())
	root.AddCommand(c.photosCommand())
	root.AddCommand(c.observationsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration named by --config, or the optional
// working-directory photocal.toml when the flag is unset.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Load(c.ConfigPath)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. A configured Redis
// address selects the shared cache; otherwise builds cache on disk.
func (c *CLI) newRunner(cfg *config.Config, noCache bool) (*pipeline.Runner, error) {
	backend, err := newCache(cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(backend, nil, c.Logger), nil
}

func newCache(cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache || (cfg != nil && !cfg.Cache.Enabled) {
		return cache.NewNullCache(), nil
	}
	if cfg != nil && cfg.Cache.RedisAddr != "" {
		return cache.NewRedisCache(cache.RedisOptions{Addr: cfg.Cache.RedisAddr})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/photocal/).
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

// =============================================================================
// Options Helpers
// =============================================================================

// optionsFromConfig seeds pipeline options with the configured paths
// and content defaults. Flags override these afterwards.
func optionsFromConfig(cfg *config.Config) pipeline.Options {
	opts := pipeline.Options{}
	if cfg == nil {
		return opts
	}
	opts.Language = cfg.Calendar.Language
	opts.WebsiteURL = cfg.Calendar.WebsiteURL
	opts.Manifest = cfg.Paths.Manifest
	opts.PhotosDir = cfg.Paths.PhotosDir
	opts.BaseMap = cfg.Paths.BaseMap
	opts.LocationsIndex = cfg.Paths.LocationsIndex
	opts.Observations = cfg.Paths.Observations
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON, pipeline.FormatMap}
	}
	return strings.Split(s, ",")
}
