package location

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// IndexEntry is one month's location in a YAML index file.
type IndexEntry struct {
	Names       map[string]string `yaml:"names"`
	Coordinates string            `yaml:"coordinates"`
}

// Index is the locations.yaml fallback source: a map of month keys to
// location entries, for months whose photo folder has no README.
//
//	"202601":
//	  names:
//	    en: Vilcabamba, Ecuador
//	    de: Vilcabamba, Ecuador
//	  coordinates: 4.25°S, 79.23°W
type Index struct {
	entries map[string]IndexEntry
}

// ParseIndex decodes YAML index data.
func ParseIndex(data []byte) (*Index, error) {
	entries := make(map[string]IndexEntry)
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("locations index: %w", err)
	}
	return &Index{entries: entries}, nil
}

// LoadIndex reads a locations.yaml file from disk.
func LoadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	idx, err := ParseIndex(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return idx, nil
}

// Descriptor returns the month's entry as a [Descriptor], so index
// months resolve names and coordinates exactly like README months.
func (i *Index) Descriptor(monthKey string) (*Descriptor, bool) {
	entry, ok := i.entries[monthKey]
	if !ok {
		return nil, false
	}

	fields := make(map[string]string, len(entry.Names)+1)
	for lang, name := range entry.Names {
		fields["location_"+lang] = name
	}
	if entry.Coordinates != "" {
		fields["coordinates"] = entry.Coordinates
	}
	return &Descriptor{fields: fields}, true
}

// Months returns how many months the index covers.
func (i *Index) Months() int { return len(i.entries) }
