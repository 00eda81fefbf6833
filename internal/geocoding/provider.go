package geocoding

import (
	"context"
	"net/http"

	"github.com/UnknownOlympus/meteogrid/internal/models"
)

// Provider resolves a place into geographic coordinates.
// The Geocode method takes a context and an address string as input,
// and returns the corresponding coordinates and an error if any occurs.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
