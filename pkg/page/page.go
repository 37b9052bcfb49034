// Package page defines the month data interchange format: the JSON
// document a calendar build emits per month, consumed by the external
// HTML/PDF templating layer.
//
// A [Month] carries everything templating needs and nothing it has to
// compute: the localized names, the week rows with photo filenames per
// day, the print layout in millimeters, and the projected world-map
// position of the month's location. Perpetual pages replace the week
// rows with a flat day-number cell list.
package page

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Month is one calendar page's complete data model.
type Month struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthKey  string `json:"month_key"`
	MonthName string `json:"month_name"`
	Language  string `json:"language"`

	// Perpetual pages are year-independent and name the year whose
	// photos they draw from.
	Perpetual  bool `json:"perpetual,omitempty"`
	SourceYear int  `json:"source_year,omitempty"`

	Location Location `json:"location"`
	Layout   Layout   `json:"layout"`

	Weekdays []string `json:"weekdays,omitempty"` // short column headers, Monday first
	Weeks    []Week   `json:"weeks,omitempty"`
	Cells    []Cell   `json:"cells,omitempty"` // perpetual pages only

	PreviousMonth *MonthRef `json:"previous_month,omitempty"`
	NextMonth     *MonthRef `json:"next_month,omitempty"`

	WebsiteURL string `json:"website_url,omitempty"`
}

// Location is the month's place and its marker position on the world
// map canvas.
type Location struct {
	Name        string  `json:"name"`
	Coordinates string  `json:"coordinates,omitempty"` // raw descriptor text
	MapX        float64 `json:"map_x"`
	MapY        float64 `json:"map_y"`
}

// Layout is the print sizing block, in millimeters.
type Layout struct {
	Kind       string  `json:"kind"`
	Rows       int     `json:"rows"`
	Columns    int     `json:"columns"`
	RowHeight  float64 `json:"row_height_mm"`
	CellWidth  float64 `json:"cell_width_mm"`
	CellHeight float64 `json:"cell_height_mm"`
}

// Week is one grid row.
type Week struct {
	ISOYear int    `json:"iso_year"`
	ISOWeek int    `json:"iso_week"`
	Days    []Cell `json:"days"`
}

// Cell is one day on the page. Overflow cells carry no photo; perpetual
// cells carry no date or membership.
type Cell struct {
	Date           string `json:"date,omitempty"` // ISO form, absent on override cells
	Day            int    `json:"day"`
	Membership     string `json:"membership,omitempty"`
	Photo          string `json:"photo,omitempty"`
	ObservationID  string `json:"observation_id,omitempty"`
	ObservationURL string `json:"observation_url,omitempty"`
}

// MonthRef names a neighboring month for page navigation.
type MonthRef struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthKey  string `json:"month_key"`
	MonthName string `json:"month_name"`
}

// Marshal encodes the month with two-space indentation.
func Marshal(m *Month) ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// Unmarshal decodes month data.
func Unmarshal(data []byte) (*Month, error) {
	var m Month
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("month data: %w", err)
	}
	return &m, nil
}

// Write encodes the month to w.
func Write(m *Month, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode month %s: %w", m.MonthKey, err)
	}
	return nil
}

// WriteFile writes the month data to a JSON file at path.
func WriteFile(m *Month, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(m, f)
}

// ReadFile loads month data from a JSON file.
func ReadFile(path string) (*Month, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
