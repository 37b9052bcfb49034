package errors

import (
	"testing"
)

func TestValidateMonthKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid january", "202601", false},
		{"valid december", "202612", false},
		{"valid old year", "199912", false},

		{"empty", "", true},
		{"too short", "2026", true},
		{"too long", "2026011", true},
		{"month zero", "202600", true},
		{"month thirteen", "202613", true},
		{"letters", "2026ab", true},
		{"signed", "-20261", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMonthKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMonthKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidMonth {
				t.Errorf("ValidateMonthKey(%q) code = %v", tt.input, GetCode(err))
			}
		})
	}
}

func TestValidateYear(t *testing.T) {
	valid := []int{1, 2026, 9999}
	for _, y := range valid {
		if err := ValidateYear(y); err != nil {
			t.Errorf("ValidateYear(%d) = %v", y, err)
		}
	}

	invalid := []int{0, -1, 10000, 20026}
	for _, y := range invalid {
		if err := ValidateYear(y); !Is(err, ErrCodeInvalidYear) {
			t.Errorf("ValidateYear(%d) should fail with INVALID_YEAR, got %v", y, err)
		}
	}
}

func TestValidateMonth(t *testing.T) {
	for m := 1; m <= 12; m++ {
		if err := ValidateMonth(m); err != nil {
			t.Errorf("ValidateMonth(%d) = %v", m, err)
		}
	}
	for _, m := range []int{0, 13, -3} {
		if err := ValidateMonth(m); !Is(err, ErrCodeInvalidMonth) {
			t.Errorf("ValidateMonth(%d) should fail with INVALID_MONTH, got %v", m, err)
		}
	}
}

func TestValidateObservationID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "123456789", false},
		{"valid short", "7", false},

		{"empty", "", true},
		{"placeholder zero", "0", true},
		{"leading zero", "0123", true},
		{"negative", "-5", true},
		{"letters", "12ab34", true},
		{"url", "https://www.inaturalist.org/observations/1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateObservationID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateObservationID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "output/202601.json", false},
		{"valid nested", "months/2026/01/data.json", false},
		{"valid filename", "map.svg", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 501)), true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "foo/../bar", true},
		{"traversal prefix", "../secret", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"backslash", "foo\\bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid json", "202601.json", false},
		{"valid svg", "worldmap.svg", false},

		{"empty", "", true},
		{"with path /", "out/202601.json", true},
		{"with path \\", "out\\202601.json", true},
		{"hidden file", ".hidden", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
