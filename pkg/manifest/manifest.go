// Package manifest loads photo manifests: the tab separated
// photo_information.txt files that map each month's photos to calendar
// days by position.
//
// A data line is "YYYYMM<TAB>filename<TAB>observationID"; the first
// line is a column header. The Nth line of a month names the photo for
// day N. Line order alone determines the assignment, never the
// filename or any embedded date. Placeholder rows reserve a day slot
// and keep the ordinals of the following rows stable.
package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sarefo/calendar/pkg/calendar"
	apperrors "github.com/sarefo/calendar/pkg/errors"
)

// ErrMalformedLine is returned by [Parse] for a data line that cannot
// be split into at least a month key and a filename.
var ErrMalformedLine = errors.New("malformed manifest line")

// Entry is one manifest row.
type Entry struct {
	MonthKey      string
	Ordinal       int // 1-based position within the month
	Filename      string
	ObservationID string // "" when the column is absent
}

// IsPlaceholder reports whether the entry reserves a day slot without a
// real photo behind it.
func (e Entry) IsPlaceholder() bool {
	return e.Filename == "placeholder"
}

// HasObservation reports whether the entry carries a usable iNaturalist
// observation ID. Empty IDs and the literal "0" mark rows whose
// observation is not yet known.
func (e Entry) HasObservation() bool {
	return !e.IsPlaceholder() && apperrors.ValidateObservationID(e.ObservationID) == nil
}

// Manifest is an in-memory photo manifest, indexed by month for O(1)
// ordinal lookup. It is immutable after loading; concurrent readers
// need no locking.
type Manifest struct {
	months map[string][]Entry
}

// Parse reads a manifest from r. The first line is always treated as
// the column header. Blank lines are skipped; any other line that is
// missing a filename or carries an invalid month key fails the whole
// load rather than shifting the ordinals of the lines after it.
func Parse(r io.Reader) (*Manifest, error) {
	months := make(map[string][]Entry)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if lineNo == 1 || line == "" {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
			return nil, fmt.Errorf("line %d: %w", lineNo, ErrMalformedLine)
		}

		key := strings.TrimSpace(parts[0])
		if _, _, err := calendar.ParseMonthKey(key); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		entry := Entry{
			MonthKey: key,
			Ordinal:  len(months[key]) + 1,
			Filename: strings.TrimSpace(parts[1]),
		}
		if len(parts) >= 3 {
			entry.ObservationID = strings.TrimSpace(parts[2])
		}
		months[key] = append(months[key], entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &Manifest{months: months}, nil
}

// Load reads a manifest file from disk.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Lookup resolves a photo key to its manifest entry.
func (m *Manifest) Lookup(key calendar.PhotoKey) (Entry, bool) {
	entries := m.months[key.MonthKey]
	if key.Ordinal < 1 || key.Ordinal > len(entries) {
		return Entry{}, false
	}
	return entries[key.Ordinal-1], true
}

// Entries returns the ordered entries of one month, nil when the month
// is absent.
func (m *Manifest) Entries(monthKey string) []Entry {
	return m.months[monthKey]
}

// Count returns the number of entries for a month.
func (m *Manifest) Count(monthKey string) int {
	return len(m.months[monthKey])
}

// Months returns the month keys present in the manifest, sorted.
func (m *Manifest) Months() []string {
	keys := make([]string, 0, len(m.months))
	for k := range m.months {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the total number of entries across all months.
func (m *Manifest) Len() int {
	n := 0
	for _, entries := range m.months {
		n += len(entries)
	}
	return n
}
