package grid

import (
	"errors"
	"fmt"
	"math"

	"github.com/UnknownOlympus/meteogrid/internal/models"
	"gonum.org/v1/gonum/spatial/r2"
)

const degToRad = math.Pi / 180.0

// Common projection errors.
var (
	ErrOutOfRange      = errors.New("coordinate out of range")
	ErrDegenerateInput = errors.New("coordinate is degenerate for the projection")
)

// Projector converts between geographic coordinates and grid cells for one set of Constants.
// The cone parameters are computed once; a Projector is immutable and safe for concurrent use.
type Projector struct {
	consts Constants
	re     float64 // earth radius in grid units
	sn     float64 // cone constant
	sf     float64 // scale factor
	ro     float64 // radius of the origin parallel
	olon   float64 // origin longitude, radians
	origin r2.Vec  // grid position of the origin
}

var defaultProjector = NewProjector(KMA)

// NewProjector precomputes the cone parameters for the given constants.
func NewProjector(c Constants) *Projector {
	slat1 := c.StandardLat1 * degToRad
	slat2 := c.StandardLat2 * degToRad
	olat := c.OriginLat * degToRad

	re := c.EarthRadius / c.GridSpacing

	var sn float64
	if slat1 == slat2 {
		// Tangent cone: the secant formula below is 0/0.
		sn = math.Sin(slat1)
	} else {
		sn = math.Tan(math.Pi*0.25+slat2*0.5) / math.Tan(math.Pi*0.25+slat1*0.5)
		sn = math.Log(math.Cos(slat1)/math.Cos(slat2)) / math.Log(sn)
	}

	sf := math.Tan(math.Pi*0.25 + slat1*0.5)
	sf = math.Pow(sf, sn) * math.Cos(slat1) / sn

	ro := math.Tan(math.Pi*0.25 + olat*0.5)
	ro = re * sf / math.Pow(ro, sn)

	return &Projector{
		consts: c,
		re:     re,
		sn:     sn,
		sf:     sf,
		ro:     ro,
		olon:   c.OriginLon * degToRad,
		origin: r2.Vec{X: c.OriginX, Y: c.OriginY},
	}
}

// Constants returns the calibration the projector was built from.
func (p *Projector) Constants() Constants {
	return p.consts
}

// Project returns the grid cell containing the given latitude and longitude (degrees).
// On error the returned cell is the zero value.
func (p *Projector) Project(lat, lon float64) (models.GridCoordinate, error) {
	if !isFinite(lat) || !isFinite(lon) {
		return models.GridCoordinate{}, fmt.Errorf("%w: lat=%v lon=%v", ErrOutOfRange, lat, lon)
	}
	if lat < -90 || lat > 90 {
		return models.GridCoordinate{}, fmt.Errorf("%w: latitude %v", ErrOutOfRange, lat)
	}
	if lat == -90 || lat == 90 {
		return models.GridCoordinate{}, fmt.Errorf("%w: latitude %v is a pole", ErrDegenerateInput, lat)
	}

	ra := math.Tan(math.Pi*0.25 + lat*degToRad*0.5)
	ra = p.re * p.sf / math.Pow(ra, p.sn)

	// Single wrap, not a modulo.
	theta := lon*degToRad - p.olon
	if theta > math.Pi {
		theta -= 2.0 * math.Pi
	}
	if theta < -math.Pi {
		theta += 2.0 * math.Pi
	}
	theta *= p.sn

	// Offset from the grid origin; y grows northward, away from the cone apex.
	pos := r2.Add(r2.Vec{X: ra * math.Sin(theta), Y: p.ro - ra*math.Cos(theta)}, p.origin)
	if !isFinite(pos.X) || !isFinite(pos.Y) {
		return models.GridCoordinate{}, fmt.Errorf("%w: lat=%v lon=%v", ErrDegenerateInput, lat, lon)
	}

	return models.GridCoordinate{X: roundHalfUp(pos.X), Y: roundHalfUp(pos.Y)}, nil
}

// Unproject returns the latitude and longitude (degrees) of the point at grid position (x, y).
// Integer arguments give the center of a cell.
func (p *Projector) Unproject(x, y float64) (models.Coordinates, error) {
	if !isFinite(x) || !isFinite(y) {
		return models.Coordinates{}, fmt.Errorf("%w: x=%v y=%v", ErrOutOfRange, x, y)
	}

	// Position relative to the cone apex, which lies ro cells south of the origin.
	off := r2.Sub(r2.Vec{X: x, Y: y}, p.origin)
	off.Y = p.ro - off.Y
	ra := r2.Norm(off)
	if p.sn < 0 {
		ra = -ra
	}

	alat := math.Pow(p.re*p.sf/ra, 1.0/p.sn)
	alat = 2.0*math.Atan(alat) - math.Pi*0.5

	var theta float64
	switch {
	case math.Abs(off.X) <= 0:
		theta = 0
	case math.Abs(off.Y) <= 0:
		theta = math.Pi * 0.5
		if off.X < 0 {
			theta = -theta
		}
	default:
		theta = math.Atan2(off.X, off.Y)
	}
	alon := theta/p.sn + p.olon

	return models.Coordinates{Latitude: alat / degToRad, Longitude: alon / degToRad}, nil
}

// Project converts a coordinate with the KMA grid projector.
func Project(lat, lon float64) (models.GridCoordinate, error) {
	return defaultProjector.Project(lat, lon)
}

// Unproject converts a KMA grid position back to latitude and longitude.
func Unproject(x, y float64) (models.Coordinates, error) {
	return defaultProjector.Unproject(x, y)
}

// roundHalfUp snaps v to the nearest integer, ties toward +Inf.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
