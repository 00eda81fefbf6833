// Package grid converts geographic coordinates to cells of the regional forecast grid.
//
// # Projection
//
// The forecast grid is laid on a Lambert Conformal Conic projection of a sphere.
// The cone is secant to the sphere at two standard parallels and the grid origin
// sits at a fixed latitude/longitude with a fixed cell offset. For the Korean
// meteorological grid (see [KMA]) the cells are 5 km apart and the grid spans
// 149 x 253 cells; no bounds check against that extent is performed.
//
// # Rounding
//
// Continuous plane positions are snapped to cells with floor(v + 0.5). Ties go up,
// including for negative values (-0.5 becomes 0). The weather service was
// queried with cells computed this way, so it must not be replaced with
// math.Round or banker's rounding.
//
// # Input policy
//
// Longitudes are not range-checked: the angular offset from the origin meridian is
// wrapped once by 2π, so a longitude shifted by ±360° lands in the same cell.
// Latitudes outside [-90, 90] and non-finite inputs fail with [ErrOutOfRange].
// The poles fail with [ErrDegenerateInput]: tan(π/4 + lat/2) is 0 or unbounded there.
package grid
