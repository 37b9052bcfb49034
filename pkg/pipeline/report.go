package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Report summarizes a whole-year build: one outcome per month, so a
// single broken month is visible without hiding the other eleven.
type Report struct {
	ID         string         `json:"id"`
	Year       int            `json:"year"`
	Language   string         `json:"language"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Months     []MonthOutcome `json:"months"`
	Succeeded  int            `json:"succeeded"`
	Failed     int            `json:"failed"`
}

// MonthOutcome is the result of one month within a year build.
type MonthOutcome struct {
	Month     int      `json:"month"`
	MonthKey  string   `json:"month_key"`
	OK        bool     `json:"ok"`
	Error     string   `json:"error,omitempty"`
	Artifacts []string `json:"artifacts,omitempty"`
	CacheHit  bool     `json:"cache_hit,omitempty"`
}

// HasFailures reports whether any month failed.
func (r *Report) HasFailures() bool { return r.Failed > 0 }

// WriteFile writes the report as indented JSON.
func (r *Report) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// YearResult bundles the report with the per-month results that
// succeeded, keyed by month number, so callers can write artifacts.
type YearResult struct {
	Report  *Report
	Results map[int]*Result
}

// ExecuteYear builds all twelve months of opts.Year. Months fail
// independently: a missing photo in March still builds April, and the
// report records every outcome. The returned error is non-nil only for
// errors outside month scope (invalid options, context cancellation).
func (r *Runner) ExecuteYear(ctx context.Context, opts Options) (*YearResult, error) {
	opts.Month = 1 // validated per-month below; seed a valid value
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.Perpetual {
		return nil, fmt.Errorf("perpetual pages build per month, not per year")
	}

	report := &Report{
		ID:        uuid.NewString(),
		Year:      opts.Year,
		Language:  opts.Language,
		StartedAt: time.Now().UTC(),
	}
	results := make(map[int]*Result)

	for month := 1; month <= 12; month++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		monthOpts := opts
		monthOpts.Month = month

		outcome := MonthOutcome{Month: month, MonthKey: monthOpts.MonthKey()}
		result, err := r.Execute(ctx, monthOpts)
		if err != nil {
			outcome.Error = err.Error()
			report.Failed++
			r.Logger.Error("month build failed", "month", outcome.MonthKey, "err", err)
		} else {
			outcome.OK = true
			outcome.CacheHit = result.CacheInfo.ComposeHit && result.CacheInfo.RenderHit
			for _, format := range monthOpts.Formats {
				outcome.Artifacts = append(outcome.Artifacts, ArtifactFilename(outcome.MonthKey, format))
			}
			report.Succeeded++
			results[month] = result
		}
		report.Months = append(report.Months, outcome)
	}

	report.FinishedAt = time.Now().UTC()
	return &YearResult{Report: report, Results: results}, nil
}
