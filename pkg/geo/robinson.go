package geo

import (
	"errors"
	"fmt"
	"math"
)

// Canvas geometry of the bundled world map asset. The SVG viewBox is
// "200 0 1800 857", so canvas x runs from 200 to 2000 and y from 0 to
// 857. Projected points are expressed in this viewBox space and need no
// further offset when placed as markers.
const (
	CanvasWidth   = 1800.0
	CanvasHeight  = 857.0
	CanvasOriginX = 200.0
	CanvasOriginY = 0.0
)

// Robinson coefficients in 5 degree latitude bands from 0 to 90.
// robinsonX scales longitude, robinsonY scales latitude.
var (
	robinsonX = [19]float64{
		1.0000, 0.9986, 0.9954, 0.9900, 0.9822, 0.9730, 0.9600,
		0.9427, 0.9216, 0.8962, 0.8679, 0.8350, 0.7986, 0.7597,
		0.7186, 0.6732, 0.6213, 0.5722, 0.5322,
	}
	robinsonY = [19]float64{
		0.0000, 0.0620, 0.1240, 0.1860, 0.2480, 0.3100, 0.3720,
		0.4340, 0.4958, 0.5571, 0.6176, 0.6769, 0.7346, 0.7903,
		0.8435, 0.8936, 0.9394, 0.9761, 1.0000,
	}
)

// ErrCalibration is returned when the two calibration references
// project to the same raw x or y and no affine fit exists.
var ErrCalibration = errors.New("degenerate calibration references")

// Point is a projected position in the map canvas viewBox space.
type Point struct {
	X float64
	Y float64
}

// Reference pins a coordinate to the canvas fraction where the map
// asset draws it. FracX and FracY are in [0, 1] of canvas width and
// height.
type Reference struct {
	Coord Coordinate
	FracX float64
	FracY float64
}

// target returns the reference position in viewBox space.
func (r Reference) target() (x, y float64) {
	return CanvasOriginX + r.FracX*CanvasWidth, CanvasOriginY + r.FracY*CanvasHeight
}

// Projection maps coordinates onto the world map canvas. The zero value
// is not usable; construct one with Calibrate or DefaultProjection.
type Projection struct {
	xScale  float64
	xOffset float64
	yScale  float64
	yOffset float64
}

// Calibrate fits the affine correction that moves raw Robinson output
// onto the map asset, from two references with known canvas positions.
// The references must differ in both raw x and raw y.
func Calibrate(a, b Reference) (*Projection, error) {
	ax, ay := rawProject(a.Coord)
	bx, by := rawProject(b.Coord)

	const eps = 1e-9
	if math.Abs(bx-ax) < eps || math.Abs(by-ay) < eps {
		return nil, fmt.Errorf("references %v and %v: %w", a.Coord, b.Coord, ErrCalibration)
	}

	atx, aty := a.target()
	btx, bty := b.target()

	xScale := (btx - atx) / (bx - ax)
	yScale := (bty - aty) / (by - ay)
	return &Projection{
		xScale:  xScale,
		xOffset: atx - ax*xScale,
		yScale:  yScale,
		yOffset: aty - ay*yScale,
	}, nil
}

// Default references for the bundled world.svg: Dublin sits at 53% of
// the canvas width and 18% of its height, Wellington at 97% and 89%.
// The fractions are fitted to that one asset and do not carry over to a
// different base map.
var (
	refDublin     = Reference{Coord: Coordinate{Lat: 53.35, Lon: -6.26}, FracX: 0.53, FracY: 0.18}
	refWellington = Reference{Coord: Coordinate{Lat: -41.29, Lon: 174.78}, FracX: 0.97, FracY: 0.89}
)

// DefaultProjection returns the projection calibrated for the bundled
// world map asset.
func DefaultProjection() *Projection {
	p, err := Calibrate(refDublin, refWellington)
	if err != nil {
		// The fixed references are never degenerate.
		panic(err)
	}
	return p
}

// Project maps a coordinate onto the map canvas, rounded to two
// decimals. Inputs must satisfy |lat| <= 90 and |lon| <= 180;
// out-of-range values are not clamped and land outside the canvas.
func (p *Projection) Project(c Coordinate) Point {
	x, y := rawProject(c)
	return Point{
		X: round2(x*p.xScale + p.xOffset),
		Y: round2(y*p.yScale + p.yOffset),
	}
}

// rawProject computes the uncalibrated Robinson position. Raw x grows
// east in radian-scaled units, raw y grows north in table units.
func rawProject(c Coordinate) (x, y float64) {
	absLat := math.Abs(c.Lat)
	x = interpolateBand(robinsonX[:], absLat) * math.Abs(c.Lon) * (math.Pi / 180)
	if c.Lon < 0 {
		x = -x
	}
	y = interpolateBand(robinsonY[:], absLat)
	if c.Lat < 0 {
		y = -y
	}
	return x, y
}

// interpolateBand reads a band table at |lat|, linearly interpolated
// inside the enclosing 5 degree band. Latitude 0 takes the first band,
// latitude 90 the last entry exactly.
func interpolateBand(table []float64, absLat float64) float64 {
	band := int(absLat / 5)
	if band >= len(table)-1 {
		return table[len(table)-1]
	}
	frac := (absLat - float64(band)*5) / 5
	return table[band] + frac*(table[band+1]-table[band])
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
