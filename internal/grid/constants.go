package grid

// Constants holds the calibration of a Lambert Conformal Conic grid.
// Angles are in degrees, distances in kilometres, origin offsets in grid units.
type Constants struct {
	EarthRadius  float64 // Radius of the reference sphere (km).
	GridSpacing  float64 // Distance between neighbouring cells (km).
	StandardLat1 float64 // First standard parallel.
	StandardLat2 float64 // Second standard parallel.
	OriginLon    float64 // Longitude of the grid origin.
	OriginLat    float64 // Latitude of the grid origin.
	OriginX      float64 // X cell of the grid origin.
	OriginY      float64 // Y cell of the grid origin.
}

// KMA is the 5 km short-range forecast grid of the Korea Meteorological Administration.
var KMA = Constants{
	EarthRadius:  6371.00877,
	GridSpacing:  5.0,
	StandardLat1: 30.0,
	StandardLat2: 60.0,
	OriginLon:    126.0,
	OriginLat:    38.0,
	OriginX:      43,
	OriginY:      136,
}
