package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/sarefo/calendar/pkg/calendar"
	"github.com/sarefo/calendar/pkg/manifest"
)

// photosCommand creates the photos command group.
func (c *CLI) photosCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photos",
		Short: "Inspect photo manifests",
	}
	cmd.AddCommand(c.photosCheckCommand())
	return cmd
}

// photosCheckCommand creates "photos check": manifest coverage
// validation for a month or a whole year.
func (c *CLI) photosCheckCommand() *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "check <year|monthkey>",
		Short: "Validate manifest photo coverage",
		Long: `Check verifies that every day of a month has a manifest entry.

A month key checks one month; a year checks all twelve. Gaps are
listed per month and make the command exit non-zero:

  photocal photos check 202601
  photocal photos check 2026`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if manifestPath == "" {
				manifestPath = cfg.Paths.Manifest
			}

			m, err := manifest.Load(manifestPath)
			if err != nil {
				return fmt.Errorf("load manifest: %w", err)
			}

			if len(args[0]) == 6 {
				year, month, err := calendar.ParseMonthKey(args[0])
				if err != nil {
					return err
				}
				return checkMonths(m, year, month, month)
			}

			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year or month key %q", args[0])
			}
			return checkMonths(m, year, time.January, time.December)
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "photo manifest file")
	return cmd
}

// checkMonths validates coverage for the months from first to last,
// reporting every gap before failing.
func checkMonths(m *manifest.Manifest, year int, first, last time.Month) error {
	gaps := 0
	for month := first; month <= last; month++ {
		key := calendar.MonthKey(year, month)
		days := calendar.DaysInMonth(year, month)

		err := m.ValidateMonth(key, days)
		if err == nil {
			printSuccess("%s  %d/%d", key, m.Count(key), days)
			continue
		}

		gaps++
		var missing *manifest.MissingPhotosError
		if errors.As(err, &missing) {
			printError("%s  %d/%d", key, m.Count(key), days)
			printDetail("missing days %v", missing.Days)
		} else {
			printError("%s  %v", key, err)
		}
	}

	if gaps > 0 {
		return fmt.Errorf("%d months with missing photos", gaps)
	}
	return nil
}
