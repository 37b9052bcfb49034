// Package location loads per-month location descriptors: where the
// month's photos were taken, in three display languages, plus the
// coordinate string the world map marker is projected from.
//
// The primary source is the README.md inside a month's photo folder,
// which carries its fields as "+ key: value" lines:
//
//	+ location_en: Vilcabamba, Ecuador
//	+ location_de: Vilcabamba, Ecuador
//	+ location_es: Vilcabamba, Ecuador
//	+ coordinates: 4.25°S, 79.23°W
//
// Older folders use a single legacy "+ location:" field. Months without
// a README can instead be listed in a YAML index file (see [Index]).
package location

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sarefo/calendar/pkg/geo"
)

var (
	// ErrMissingName is returned by [Descriptor.Name] when no usable
	// display name exists in any language.
	ErrMissingName = errors.New("no location name")

	// ErrMissingCoordinates is returned by [Descriptor.Coordinate] when
	// the coordinates field is absent or still a placeholder.
	ErrMissingCoordinates = errors.New("no coordinates")
)

// Placeholder values left by the folder scaffolding. A field holding
// one of these counts as missing, so a build fails loudly instead of
// printing template text on a printed page.
var placeholders = []string{
	"[Location needed]",
	"[Stadt benötigt]",
	"[Ubicación necesaria]",
	"[Coordinates needed]",
}

func isPlaceholder(value string) bool {
	for _, p := range placeholders {
		if strings.Contains(value, p) {
			return true
		}
	}
	return false
}

// Descriptor holds the location fields of one month.
type Descriptor struct {
	fields map[string]string
}

// ParseReadme scans a photo-folder README for "+ key: value" lines.
// Unknown keys are kept, so the resolution order in [Descriptor.Name]
// decides what is used; everything else in the file is ignored.
func ParseReadme(r io.Reader) (*Descriptor, error) {
	fields := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "+ ") {
			continue
		}
		key, value, ok := strings.Cut(line[2:], ":")
		if !ok {
			continue
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &Descriptor{fields: fields}, nil
}

// LoadReadme reads a month folder's README.md from disk.
func LoadReadme(path string) (*Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := ParseReadme(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// resolve returns the first usable value among the named fields. Empty
// values and scaffolding placeholders are skipped.
func (d *Descriptor) resolve(keys ...string) (string, bool) {
	for _, key := range keys {
		value := d.fields[key]
		if value == "" || isPlaceholder(value) {
			continue
		}
		return value, true
	}
	return "", false
}

// Name returns the display name for a language. Resolution order:
// location_<lang>, then location_en, then the legacy location field.
func (d *Descriptor) Name(lang string) (string, error) {
	name, ok := d.resolve("location_"+lang, "location_en", "location")
	if !ok {
		return "", fmt.Errorf("%w in any of location_%s, location_en, location", ErrMissingName, lang)
	}
	return name, nil
}

// CoordinateString returns the raw coordinates field.
func (d *Descriptor) CoordinateString() (string, error) {
	s, ok := d.resolve("coordinates")
	if !ok {
		return "", ErrMissingCoordinates
	}
	return s, nil
}

// Coordinate parses the coordinates field into decimal degrees.
func (d *Descriptor) Coordinate() (geo.Coordinate, error) {
	s, err := d.CoordinateString()
	if err != nil {
		return geo.Coordinate{}, err
	}
	return geo.ParseCoordinate(s)
}
