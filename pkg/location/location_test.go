package location

import (
	"errors"
	"math"
	"strings"
	"testing"
)

const sampleReadme = `# January 2026

Photos from the Vilcabamba valley.

+ location_en: Vilcabamba, Ecuador
+ location_de: Vilcabamba, Ecuador
+ location_es: Vilcabamba, Ecuador
+ coordinates: 4.25°S, 79.23°W

Some trailing notes.
`

func TestParseReadme(t *testing.T) {
	d, err := ParseReadme(strings.NewReader(sampleReadme))
	if err != nil {
		t.Fatal(err)
	}

	name, err := d.Name("de")
	if err != nil {
		t.Fatal(err)
	}
	if name != "Vilcabamba, Ecuador" {
		t.Errorf("Name(de) = %q", name)
	}

	c, err := d.Coordinate()
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(c.Lat+4.25) > 1e-6 || math.Abs(c.Lon+79.23) > 1e-6 {
		t.Errorf("Coordinate() = %v", c)
	}
}

func TestNameFallbackChain(t *testing.T) {
	tests := []struct {
		name    string
		readme  string
		lang    string
		want    string
		wantErr bool
	}{
		{
			name:   "preferred language wins",
			readme: "+ location_en: Dublin, Ireland\n+ location_de: Dublin, Irland\n",
			lang:   "de",
			want:   "Dublin, Irland",
		},
		{
			name:   "falls back to english",
			readme: "+ location_en: Dublin, Ireland\n",
			lang:   "es",
			want:   "Dublin, Ireland",
		},
		{
			name:   "legacy field is last",
			readme: "+ location: Dublin\n",
			lang:   "en",
			want:   "Dublin",
		},
		{
			name:   "placeholder is skipped",
			readme: "+ location_de: [Stadt benötigt]\n+ location_en: Dublin, Ireland\n",
			lang:   "de",
			want:   "Dublin, Ireland",
		},
		{
			name:    "all placeholders fail",
			readme:  "+ location_en: [Location needed]\n",
			lang:    "en",
			wantErr: true,
		},
		{
			name:    "empty readme fails",
			readme:  "just prose, no fields\n",
			lang:    "en",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseReadme(strings.NewReader(tt.readme))
			if err != nil {
				t.Fatal(err)
			}
			got, err := d.Name(tt.lang)
			if tt.wantErr {
				if !errors.Is(err, ErrMissingName) {
					t.Fatalf("Name() error = %v, want ErrMissingName", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.lang, got, tt.want)
			}
		})
	}
}

func TestCoordinateMissing(t *testing.T) {
	d, err := ParseReadme(strings.NewReader("+ location_en: Dublin\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Coordinate(); !errors.Is(err, ErrMissingCoordinates) {
		t.Errorf("Coordinate() error = %v, want ErrMissingCoordinates", err)
	}

	d, err = ParseReadme(strings.NewReader("+ coordinates: [Coordinates needed]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Coordinate(); !errors.Is(err, ErrMissingCoordinates) {
		t.Errorf("placeholder Coordinate() error = %v, want ErrMissingCoordinates", err)
	}
}

func TestIndexDescriptor(t *testing.T) {
	data := []byte(`
"202601":
  names:
    en: Vilcabamba, Ecuador
    es: Vilcabamba, Ecuador
  coordinates: 4.25°S, 79.23°W
"202602":
  names:
    en: Ubud, Bali
  coordinates: 8°17′3″S 115°35′21″E
`)
	idx, err := ParseIndex(data)
	if err != nil {
		t.Fatal(err)
	}
	if idx.Months() != 2 {
		t.Fatalf("Months() = %d", idx.Months())
	}

	d, ok := idx.Descriptor("202601")
	if !ok {
		t.Fatal("202601 not found")
	}
	name, err := d.Name("es")
	if err != nil {
		t.Fatal(err)
	}
	if name != "Vilcabamba, Ecuador" {
		t.Errorf("Name(es) = %q", name)
	}

	d, ok = idx.Descriptor("202602")
	if !ok {
		t.Fatal("202602 not found")
	}
	c, err := d.Coordinate()
	if err != nil {
		t.Fatal(err)
	}
	if c.Lat > -8 || c.Lat < -9 {
		t.Errorf("lat = %v, want in (-9, -8)", c.Lat)
	}

	if _, ok := idx.Descriptor("202603"); ok {
		t.Error("Descriptor(202603) = ok for absent month")
	}
}
