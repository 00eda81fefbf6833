package models

// Coordinates represents a geographical point defined by its latitude and longitude in degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`  // Latitude of the geographical point.
	Longitude float64 `json:"longitude"` // Longitude of the geographical point.
}

// GridCoordinate is a cell index on the regional forecast grid.
type GridCoordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}
