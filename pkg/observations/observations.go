// Package observations maintains the date-to-observation mapping that
// links each calendar day's photo to its iNaturalist record.
//
// The manifest already carries an observation ID per photo row; this
// package turns those rows into dated keys ("2026-01-14") using the
// ordinal day numbering, and round-trips the result through a JSON
// store next to the build output. Sync only ever adds entries: an ID
// already in the store wins over the manifest, so manual corrections
// survive a re-sync.
package observations

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/sarefo/calendar/pkg/calendar"
	"github.com/sarefo/calendar/pkg/manifest"
)

// BaseURL is the observation page prefix.
const BaseURL = "https://www.inaturalist.org/observations/"

// URL returns the observation page address for an ID.
func URL(id string) string {
	return BaseURL + id
}

// Store maps ISO dates ("2026-01-14") to observation IDs.
type Store struct {
	entries map[string]string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[string]string)}
}

// FromManifest builds a store from one year of manifest entries. Entry
// ordinals are day numbers; placeholder rows, rows without a usable
// observation ID, and ordinals past the real month length are skipped.
func FromManifest(m *manifest.Manifest, year int) *Store {
	s := NewStore()
	for month := time.January; month <= time.December; month++ {
		key := calendar.MonthKey(year, month)
		days := calendar.DaysInMonth(year, month)
		for _, entry := range m.Entries(key) {
			if !entry.HasObservation() || entry.Ordinal > days {
				continue
			}
			d, err := calendar.NewDate(year, month, entry.Ordinal)
			if err != nil {
				continue
			}
			s.entries[d.String()] = entry.ObservationID
		}
	}
	return s
}

// Lookup returns the observation ID for a date.
func (s *Store) Lookup(d calendar.Date) (string, bool) {
	id, ok := s.entries[d.String()]
	return id, ok
}

// Set records an observation ID under a date.
func (s *Store) Set(d calendar.Date, id string) {
	s.entries[d.String()] = id
}

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.entries) }

// Dates returns the stored dates as sorted ISO strings.
func (s *Store) Dates() []string {
	dates := make([]string, 0, len(s.entries))
	for d := range s.entries {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Merge folds other into s and returns how many entries were added.
// Existing entries win, so syncing never overwrites a manual fix.
func (s *Store) Merge(other *Store) int {
	added := 0
	for date, id := range other.entries {
		if _, exists := s.entries[date]; exists {
			continue
		}
		s.entries[date] = id
		added++
	}
	return added
}

// MarshalJSON encodes the store as a flat date-to-ID object.
func (s *Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.entries)
}

// UnmarshalJSON decodes a flat date-to-ID object.
func (s *Store) UnmarshalJSON(data []byte) error {
	entries := make(map[string]string)
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	s.entries = entries
	return nil
}

// ReadFile loads a store from disk. A missing file yields an empty
// store, since the first sync of a new year starts from nothing.
func ReadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewStore(), nil
	}
	if err != nil {
		return nil, err
	}

	s := NewStore()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// WriteFile writes the store as indented JSON.
func (s *Store) WriteFile(path string) error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
