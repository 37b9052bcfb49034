package geo

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnparsableCoordinate is returned when a string matches neither the
// degree/minute/second form nor the decimal "lat, lon" form.
var ErrUnparsableCoordinate = errors.New("unparsable coordinate")

// Degree/minute/second tokens after normalization, e.g. "8°017 03S".
// Minutes and seconds are optional as a pair.
var (
	latPattern = regexp.MustCompile(`([0-9.]+)(?:°([0-9]+)\s*([0-9]+))?\s*([SN])`)
	lonPattern = regexp.MustCompile(`([0-9.]+)(?:°([0-9]+)\s*([0-9]+))?\s*([EW])`)
)

var dmsNormalizer = strings.NewReplacer("″", "", "′", " ")

// ParseCoordinate converts a coordinate string to decimal degrees.
//
// Two forms are accepted. The degree/minute/second form pairs a
// latitude token ending in N or S with a longitude token ending in E or
// W, such as "8°17′3″S 115°35′21″E". Anything else falls back to a
// "lat, lon" split of decimal values, where each value may carry a
// trailing cardinal letter instead of a sign, such as "4.25°S, 79.23°W"
// or "53.35, -6.26". South and west are negated. Strings matching
// neither form are an error, never a silent zero position.
func ParseCoordinate(text string) (Coordinate, error) {
	c, err := parseCoordinate(text)
	if err != nil {
		return Coordinate{}, fmt.Errorf("coordinate %q: %w", text, err)
	}
	return c, nil
}

func parseCoordinate(text string) (Coordinate, error) {
	normalized := dmsNormalizer.Replace(text)

	latMatch := latPattern.FindStringSubmatch(normalized)
	lonMatch := lonPattern.FindStringSubmatch(normalized)
	if latMatch == nil || lonMatch == nil {
		return parseDecimalPair(normalized)
	}

	lat, err := dmsDegrees(latMatch)
	if err != nil {
		return Coordinate{}, err
	}
	lon, err := dmsDegrees(lonMatch)
	if err != nil {
		return Coordinate{}, err
	}
	if latMatch[4] == "S" {
		lat = -lat
	}
	if lonMatch[4] == "W" {
		lon = -lon
	}
	return NewCoordinate(lat, lon)
}

// dmsDegrees assembles decimal degrees from a pattern match: degrees,
// then optional minutes and seconds captures.
func dmsDegrees(match []string) (float64, error) {
	deg, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, ErrUnparsableCoordinate
	}
	if match[2] != "" {
		min, err := strconv.ParseFloat(match[2], 64)
		if err != nil {
			return 0, ErrUnparsableCoordinate
		}
		deg += min / 60
	}
	if match[3] != "" {
		sec, err := strconv.ParseFloat(match[3], 64)
		if err != nil {
			return 0, ErrUnparsableCoordinate
		}
		deg += sec / 3600
	}
	return deg, nil
}

func parseDecimalPair(text string) (Coordinate, error) {
	compact := strings.NewReplacer("°", "", " ", "").Replace(text)
	parts := strings.Split(compact, ",")
	if len(parts) != 2 {
		return Coordinate{}, ErrUnparsableCoordinate
	}
	lat, err := parseSignedDegrees(parts[0], "N", "S")
	if err != nil {
		return Coordinate{}, err
	}
	lon, err := parseSignedDegrees(parts[1], "E", "W")
	if err != nil {
		return Coordinate{}, err
	}
	return NewCoordinate(lat, lon)
}

// parseSignedDegrees parses one decimal value that may end in a
// cardinal letter instead of carrying a sign.
func parseSignedDegrees(token, positive, negative string) (float64, error) {
	sign := 1.0
	switch {
	case strings.HasSuffix(token, positive):
		token = strings.TrimSuffix(token, positive)
	case strings.HasSuffix(token, negative):
		token = strings.TrimSuffix(token, negative)
		sign = -1
	}
	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, ErrUnparsableCoordinate
	}
	return sign * value, nil
}
