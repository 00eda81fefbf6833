package models

// Location is a named place watched by the dashboard. Coordinates and Grid stay nil
// until the location has been resolved.
type Location struct {
	ID          int             // ID is the unique identifier for the location.
	Name        string          // Name is the short label shown on the dashboard (e.g. "seoul").
	Address     string          // Address is the text handed to the geocoding provider.
	Coordinates *Coordinates    // Coordinates of the address, once geocoded.
	Grid        *GridCoordinate // Grid is the forecast cell for Coordinates.
}
