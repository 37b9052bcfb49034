package errors

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// monthKeyRegex matches the six digit "YYYYMM" keys used for manifest
// months, data files, and API routes.
var monthKeyRegex = regexp.MustCompile(`^\d{6}$`)

// ValidateMonthKey validates a "YYYYMM" month key string.
// It checks the shape and the month range; it does not resolve the key
// against any manifest.
func ValidateMonthKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidMonth, "month key cannot be empty")
	}

	if !monthKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidMonth, "month key must be six digits (YYYYMM): %q", key)
	}

	month, err := strconv.Atoi(key[4:])
	if err != nil || month < 1 || month > 12 {
		return New(ErrCodeInvalidMonth, "month key names month %s, want 01..12", key[4:])
	}

	return nil
}

// ValidateYear validates a calendar year for CLI and API input.
// Year 1 is the floor of the proleptic calendar used throughout; the
// ceiling guards against typos like 20026.
func ValidateYear(year int) error {
	if year < 1 || year > 9999 {
		return New(ErrCodeInvalidYear, "year out of range: %d", year)
	}
	return nil
}

// ValidateMonth validates a numeric month from a flag or route segment.
func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return New(ErrCodeInvalidMonth, "month out of range: %d", month)
	}
	return nil
}

// observationIDRegex matches iNaturalist observation IDs: plain decimal
// numbers with no sign or padding.
var observationIDRegex = regexp.MustCompile(`^[1-9]\d*$`)

// ValidateObservationID validates an iNaturalist observation ID.
// Placeholder values ("0", empty) are rejected; they mark manifest rows
// whose observation is not yet known.
func ValidateObservationID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "observation ID cannot be empty")
	}

	if !observationIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid observation ID: %q", id)
	}

	return nil
}

// ValidatePath validates a file path requested from the file server.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Must not be absolute path
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateOutputFilename validates a user-supplied output filename.
// It ensures the filename is a simple basename without path components.
func ValidateOutputFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidInput, "output filename cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidInput, "output filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidInput, "output filename cannot be a hidden file")
	}

	return nil
}
