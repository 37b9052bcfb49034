// Package geo parses location coordinates and projects them onto the
// calendar's world map asset.
//
// Coordinates arrive as free-form strings from location files (decimal
// degrees or degree/minute/second, with cardinal suffixes) and are
// normalized to signed decimal degrees, north and east positive.
// Projection uses Robinson-style banded coefficients calibrated against
// two pinned reference positions on the bundled map image.
package geo

import (
	"errors"
	"fmt"

	"github.com/golang/geo/s2"
)

// ErrInvalidCoordinate is returned for latitudes outside [-90, 90] or
// longitudes outside [-180, 180].
var ErrInvalidCoordinate = errors.New("coordinate out of range")

// Coordinate is a position in decimal degrees, sign-normalized:
// north and east are positive.
type Coordinate struct {
	Lat float64
	Lon float64
}

// NewCoordinate validates the ranges and returns the coordinate.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	if !s2.LatLngFromDegrees(lat, lon).IsValid() {
		return Coordinate{}, fmt.Errorf("lat %v, lon %v: %w", lat, lon, ErrInvalidCoordinate)
	}
	return Coordinate{Lat: lat, Lon: lon}, nil
}

// LatLng returns the coordinate as an s2 point for geometry operations.
func (c Coordinate) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(c.Lat, c.Lon)
}

// String formats the coordinate as "53.3500, -6.2600".
func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Lat, c.Lon)
}
