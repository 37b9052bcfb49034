package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/sarefo/calendar/pkg/cache"
)

func testRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("file cache: %v", err)
	}
	r := NewRunner(c, nil, log.New(io.Discard))
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRunnerExecuteCaches(t *testing.T) {
	r := testRunner(t)
	in := testInputs(t, map[string]int{"202601": 31})
	opts := Options{Year: 2026, Month: 1, Formats: []string{FormatJSON, FormatMap}}

	first, err := r.ExecuteWithInputs(context.Background(), opts, in)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.CacheInfo.ComposeHit || first.CacheInfo.RenderHit {
		t.Errorf("first run cache info = %+v, want all misses", first.CacheInfo)
	}
	if len(first.Artifacts[FormatJSON]) == 0 {
		t.Fatal("no json artifact")
	}
	if !bytes.Contains(first.Artifacts[FormatMap], []byte("location-marker")) {
		t.Error("map artifact has no location marker")
	}
	if first.PageHash == "" {
		t.Error("no page hash")
	}

	second, err := r.ExecuteWithInputs(context.Background(), opts, in)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.CacheInfo.ComposeHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v, want all hits", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatJSON], second.Artifacts[FormatJSON]) {
		t.Error("cached json artifact differs from rendered one")
	}
	if second.Page.MonthKey != "202601" {
		t.Errorf("cached page month = %s", second.Page.MonthKey)
	}
}

func TestRunnerRefreshBypassesCache(t *testing.T) {
	r := testRunner(t)
	in := testInputs(t, map[string]int{"202601": 31})
	opts := Options{Year: 2026, Month: 1}

	if _, err := r.ExecuteWithInputs(context.Background(), opts, in); err != nil {
		t.Fatalf("prime run: %v", err)
	}

	opts.Refresh = true
	result, err := r.ExecuteWithInputs(context.Background(), opts, in)
	if err != nil {
		t.Fatalf("refresh run: %v", err)
	}
	if result.CacheInfo.ComposeHit || result.CacheInfo.RenderHit {
		t.Errorf("refresh run cache info = %+v, want all misses", result.CacheInfo)
	}
}

func TestRunnerDataChangeInvalidates(t *testing.T) {
	r := testRunner(t)
	opts := Options{Year: 2026, Month: 1}

	in := testInputs(t, map[string]int{"202601": 31})
	if _, err := r.ExecuteWithInputs(context.Background(), opts, in); err != nil {
		t.Fatalf("prime run: %v", err)
	}

	// A manifest edit in a neighboring month reaches the overflow
	// cells, so the cached page must not be reused.
	changed := testInputs(t, map[string]int{"202601": 31, "202512": 31})
	result, err := r.ExecuteWithInputs(context.Background(), opts, changed)
	if err != nil {
		t.Fatalf("changed run: %v", err)
	}
	if result.CacheInfo.ComposeHit {
		t.Error("stale page served after manifest change")
	}
}

func TestRunnerNullCache(t *testing.T) {
	r := NewRunner(nil, nil, log.New(io.Discard))
	in := testInputs(t, map[string]int{"202601": 31})
	opts := Options{Year: 2026, Month: 1}

	for i := 0; i < 2; i++ {
		result, err := r.ExecuteWithInputs(context.Background(), opts, in)
		if err != nil {
			t.Fatalf("run %d: %v", i+1, err)
		}
		if result.CacheInfo.ComposeHit || result.CacheInfo.RenderHit {
			t.Errorf("run %d hit the null cache: %+v", i+1, result.CacheInfo)
		}
	}
}

// writeYearFixture lays out a manifest and locations index on disk, so
// whole-year builds exercise the real input loading path. Month keys in
// short get fewer manifest entries than the month has days.
func writeYearFixture(t *testing.T, dir string, year int, short map[string]int) (manifestPath, indexPath string) {
	t.Helper()

	var mb strings.Builder
	mb.WriteString("month\tfilename\tobservation\n")
	var ib strings.Builder
	for month := 1; month <= 12; month++ {
		key := fmt.Sprintf("%04d%02d", year, month)
		days := 31
		if n, ok := short[key]; ok {
			days = n
		}
		for i := 1; i <= days; i++ {
			fmt.Fprintf(&mb, "%s\t%s_%02d.jpg\t0\n", key, key, i)
		}
		fmt.Fprintf(&ib, "%q:\n  names:\n    en: Test Site %d\n  coordinates: 10.0, 20.0\n", key, month)
	}

	manifestPath = filepath.Join(dir, "photo_information.txt")
	if err := os.WriteFile(manifestPath, []byte(mb.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	indexPath = filepath.Join(dir, "locations.yaml")
	if err := os.WriteFile(indexPath, []byte(ib.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return manifestPath, indexPath
}

func TestExecuteYear(t *testing.T) {
	dir := t.TempDir()
	// February covered fully (28 days in 2026), April left two short.
	manifestPath, indexPath := writeYearFixture(t, dir, 2026, map[string]int{
		"202602": 28,
		"202604": 28,
	})

	r := NewRunner(nil, nil, log.New(io.Discard))
	result, err := r.ExecuteYear(context.Background(), Options{
		Year:           2026,
		Manifest:       manifestPath,
		LocationsIndex: indexPath,
		Formats:        []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("ExecuteYear: %v", err)
	}

	report := result.Report
	if report.ID == "" {
		t.Error("report has no id")
	}
	if report.Year != 2026 || report.Language != "en" {
		t.Errorf("report = year %d lang %s", report.Year, report.Language)
	}
	if len(report.Months) != 12 {
		t.Fatalf("outcomes = %d, want 12", len(report.Months))
	}
	if report.Succeeded != 11 || report.Failed != 1 {
		t.Errorf("succeeded/failed = %d/%d, want 11/1", report.Succeeded, report.Failed)
	}
	if !report.HasFailures() {
		t.Error("HasFailures() = false")
	}
	if report.FinishedAt.Before(report.StartedAt) {
		t.Error("finished before started")
	}

	april := report.Months[3]
	if april.OK || april.MonthKey != "202604" {
		t.Fatalf("april outcome = %+v, want failed 202604", april)
	}
	if !strings.Contains(april.Error, "missing") {
		t.Errorf("april error = %q, want missing photos", april.Error)
	}

	january := report.Months[0]
	if !january.OK || len(january.Artifacts) != 1 || january.Artifacts[0] != "202601.json" {
		t.Errorf("january outcome = %+v", january)
	}
	if _, ok := result.Results[1]; !ok {
		t.Error("no result kept for january")
	}
	if _, ok := result.Results[4]; ok {
		t.Error("result kept for the failed month")
	}

	reportPath := filepath.Join(dir, "report.json")
	if err := report.WriteFile(reportPath); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"failed": 1`) {
		t.Error("written report does not record the failure count")
	}
}

func TestExecuteYearRejectsPerpetual(t *testing.T) {
	r := NewRunner(nil, nil, log.New(io.Discard))
	_, err := r.ExecuteYear(context.Background(), Options{Perpetual: true, SourceYear: 2026})
	if err == nil {
		t.Fatal("expected error for a perpetual year build")
	}
}

func TestExecuteYearContextCancel(t *testing.T) {
	dir := t.TempDir()
	manifestPath, indexPath := writeYearFixture(t, dir, 2026, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(nil, nil, log.New(io.Discard))
	_, err := r.ExecuteYear(ctx, Options{
		Year:           2026,
		Manifest:       manifestPath,
		LocationsIndex: indexPath,
	})
	if err != context.Canceled {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestRunnerExecuteLoadsInputs(t *testing.T) {
	dir := t.TempDir()
	manifestPath, indexPath := writeYearFixture(t, dir, 2026, nil)

	r := testRunner(t)
	result, err := r.Execute(context.Background(), Options{
		Year:           2026,
		Month:          3,
		Manifest:       manifestPath,
		LocationsIndex: indexPath,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Page.MonthKey != "202603" {
		t.Errorf("page month = %s, want 202603", result.Page.MonthKey)
	}
	if result.Page.Location.Name != "Test Site 3" {
		t.Errorf("location = %q, want Test Site 3", result.Page.Location.Name)
	}
	if result.Stats.ComposeTime <= 0 {
		t.Errorf("compose time = %v", result.Stats.ComposeTime)
	}
}
