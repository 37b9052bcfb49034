package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sarefo/calendar/pkg/calendar"
	"github.com/sarefo/calendar/pkg/config"
	apperrors "github.com/sarefo/calendar/pkg/errors"
	"github.com/sarefo/calendar/pkg/manifest"
	"github.com/sarefo/calendar/pkg/pipeline"
)

// reportFilename is where year builds write their build report,
// relative to the output directory.
const reportFilename = "build-report.json"

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	year        int    // whole-year batch build
	perpetual   bool   // year-independent page
	sourceYear  int    // photo source year for perpetual builds
	language    string // page language: en, de, es
	formats     string // comma-separated output formats
	output      string // output directory
	noCache     bool   // disable caching
	refresh     bool   // bypass cache reads, overwrite entries
	interactive bool   // pick the month from manifest coverage

	// Input path overrides (config provides the defaults)
	manifestPath   string
	photosDir      string
	baseMap        string
	locationsIndex string
	observations   string
	websiteURL     string
}

// buildCommand creates the build command for composing and rendering
// month pages.
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build [monthkey]",
		Short: "Build photo calendar pages",
		Long: `Build composes month pages and renders their artifacts.

A single month builds from its key:

  photocal build 202601

A whole year builds every month and writes a build report:

  photocal build --year 2026

Perpetual pages are year-independent and draw photos from a source year:

  photocal build --perpetual 2 --source-year 2026`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			switch {
			case opts.year > 0:
				if len(args) > 0 || opts.perpetual {
					return fmt.Errorf("--year does not combine with a month key or --perpetual")
				}
				if err := apperrors.ValidateYear(opts.year); err != nil {
					return err
				}
				return c.runBuildYear(cmd.Context(), cfg, &opts)
			case opts.perpetual:
				if len(args) != 1 {
					return fmt.Errorf("--perpetual requires the month number, e.g. photocal build --perpetual 2")
				}
				return c.runBuildPerpetual(cmd.Context(), cfg, &opts, args[0])
			case opts.interactive:
				return c.runBuildInteractive(cmd.Context(), cfg, &opts)
			case len(args) == 1:
				return c.runBuildMonth(cmd.Context(), cfg, &opts, args[0])
			default:
				return fmt.Errorf("specify a month key, --year, or --interactive")
			}
		},
	}

	cmd.Flags().IntVar(&opts.year, "year", 0, "build all twelve months of a year")
	cmd.Flags().BoolVar(&opts.perpetual, "perpetual", false, "build a year-independent page")
	cmd.Flags().IntVar(&opts.sourceYear, "source-year", 0, "photo source year for --perpetual")
	cmd.Flags().StringVarP(&opts.language, "lang", "l", "", "page language: en, de, es")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): json, map (comma-separated; default both)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "rebuild even when cached")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick the month from manifest coverage")
	cmd.Flags().StringVar(&opts.manifestPath, "manifest", "", "photo manifest file")
	cmd.Flags().StringVar(&opts.photosDir, "photos-dir", "", "photo folder root (per-month READMEs)")
	cmd.Flags().StringVar(&opts.baseMap, "base-map", "", "world map SVG asset")
	cmd.Flags().StringVar(&opts.locationsIndex, "locations", "", "locations index YAML")
	cmd.Flags().StringVar(&opts.observations, "observations", "", "observations JSON file")
	cmd.Flags().StringVar(&opts.websiteURL, "website-url", "", "website URL printed on the page")

	return cmd
}

// pipelineOptions layers flags over config defaults.
func (c *CLI) pipelineOptions(cfg *config.Config, opts *buildOpts) pipeline.Options {
	po := optionsFromConfig(cfg)
	if opts.language != "" {
		po.Language = opts.language
	}
	if opts.manifestPath != "" {
		po.Manifest = opts.manifestPath
	}
	if opts.photosDir != "" {
		po.PhotosDir = opts.photosDir
	}
	if opts.baseMap != "" {
		po.BaseMap = opts.baseMap
	}
	if opts.locationsIndex != "" {
		po.LocationsIndex = opts.locationsIndex
	}
	if opts.observations != "" {
		po.Observations = opts.observations
	}
	if opts.websiteURL != "" {
		po.WebsiteURL = opts.websiteURL
	}
	po.Formats = parseFormats(opts.formats)
	po.Refresh = opts.refresh
	po.Logger = c.Logger
	return po
}

// runBuildMonth builds one month page named by its key.
func (c *CLI) runBuildMonth(ctx context.Context, cfg *config.Config, opts *buildOpts, monthKey string) error {
	year, month, err := calendar.ParseMonthKey(monthKey)
	if err != nil {
		return err
	}

	po := c.pipelineOptions(cfg, opts)
	po.Year = year
	po.Month = int(month)

	return c.executeAndWrite(ctx, cfg, opts, po)
}

// runBuildPerpetual builds the year-independent page for one month.
func (c *CLI) runBuildPerpetual(ctx context.Context, cfg *config.Config, opts *buildOpts, monthArg string) error {
	var month int
	if _, err := fmt.Sscanf(monthArg, "%d", &month); err != nil {
		return fmt.Errorf("invalid month %q: %w", monthArg, err)
	}

	po := c.pipelineOptions(cfg, opts)
	po.Perpetual = true
	po.Month = month
	po.SourceYear = opts.sourceYear
	if po.SourceYear == 0 {
		po.SourceYear = cfg.Calendar.SourceYear
	}

	return c.executeAndWrite(ctx, cfg, opts, po)
}

// executeAndWrite runs the pipeline for one month and writes its
// artifacts to the output directory.
func (c *CLI) executeAndWrite(ctx context.Context, cfg *config.Config, opts *buildOpts, po pipeline.Options) error {
	runner, err := c.newRunner(cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	monthKey := po.MonthKey()
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Building %s...", monthKey))
	spinner.Start()

	result, err := runner.Execute(ctx, po)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Build failed for %s", monthKey))
		var missing *manifest.MissingPhotosError
		if errors.As(err, &missing) {
			printDetail("Missing days: %v", missing.Days)
			printNextStep("Check coverage", fmt.Sprintf("photocal photos check %s", missing.MonthKey))
		}
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Built %s (%s)", monthKey, result.Page.MonthName))

	cached := result.CacheInfo.ComposeHit && result.CacheInfo.RenderHit
	printStats(result.Page.Layout.Rows, countPhotos(result), cached)

	paths, err := writeArtifacts(outputDir(cfg, opts), monthKey, result.Artifacts)
	if err != nil {
		return err
	}
	for _, path := range paths {
		printFile(path)
	}
	return nil
}

// runBuildYear builds all twelve months, writes every artifact that
// composed, and finishes with the build report. A year with failed
// months exits non-zero after the report is on disk.
func (c *CLI) runBuildYear(ctx context.Context, cfg *config.Config, opts *buildOpts) error {
	runner, err := c.newRunner(cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	po := c.pipelineOptions(cfg, opts)
	po.Year = opts.year

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Building %d...", opts.year))
	spinner.Start()

	yr, err := runner.ExecuteYear(ctx, po)
	spinner.Stop()
	if err != nil {
		return err
	}

	outDir := outputDir(cfg, opts)
	for month, result := range yr.Results {
		key := fmt.Sprintf("%04d%02d", opts.year, month)
		if _, err := writeArtifacts(outDir, key, result.Artifacts); err != nil {
			return err
		}
	}

	reportPath := filepath.Join(outDir, reportFilename)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	if err := yr.Report.WriteFile(reportPath); err != nil {
		return fmt.Errorf("write build report: %w", err)
	}

	prog.done(fmt.Sprintf("Built %d pages", yr.Report.Succeeded))

	for _, outcome := range yr.Report.Months {
		if outcome.OK {
			printSuccess("%s", outcome.MonthKey)
		} else {
			printError("%s  %s", outcome.MonthKey, StyleDim.Render(outcome.Error))
		}
	}
	printNewline()
	printDetail("finished %s", formatBuildTime(yr.Report.FinishedAt))
	printFile(reportPath)

	if yr.Report.HasFailures() {
		return fmt.Errorf("%d of 12 months failed", yr.Report.Failed)
	}
	return nil
}

// runBuildInteractive lets the user pick a month from manifest coverage.
func (c *CLI) runBuildInteractive(ctx context.Context, cfg *config.Config, opts *buildOpts) error {
	po := c.pipelineOptions(cfg, opts)

	m, err := manifest.Load(po.Manifest)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}
	choices := monthChoices(m)
	if len(choices) == 0 {
		return fmt.Errorf("manifest %s lists no months", po.Manifest)
	}

	model := NewMonthListModel(choices)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	selected := final.(MonthListModel).Selected
	if selected == nil {
		printInfo("No month selected")
		return nil
	}

	return c.runBuildMonth(ctx, cfg, opts, selected.Key)
}

// =============================================================================
// Helpers
// =============================================================================

func outputDir(cfg *config.Config, opts *buildOpts) string {
	if opts.output != "" {
		return opts.output
	}
	if dir := cfg.Paths.OutputDir; dir != "" {
		return dir
	}
	return "output"
}

// writeArtifacts writes rendered artifacts under dir using the
// conventional filenames, creating dir as needed.
func writeArtifacts(dir, monthKey string, artifacts map[string][]byte) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var paths []string
	for format, data := range artifacts {
		path := filepath.Join(dir, pipeline.ArtifactFilename(monthKey, format))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// countPhotos counts page cells with a photo assigned.
func countPhotos(result *pipeline.Result) int {
	n := 0
	for _, week := range result.Page.Weeks {
		for _, cell := range week.Days {
			if cell.Photo != "" {
				n++
			}
		}
	}
	for _, cell := range result.Page.Cells {
		if cell.Photo != "" {
			n++
		}
	}
	return n
}
