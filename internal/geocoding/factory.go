package geocoding

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/meteogrid/internal/models"
	"googlemaps.github.io/maps"
)

// ProviderType represents the type of location provider.
type ProviderType string

const (
	// ProviderTypeGoogle represents Google Maps geocoding provider.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeNominatim represents OpenStreetMap Nominatim geocoding provider.
	ProviderTypeNominatim ProviderType = "nominatim"
	// ProviderTypeStatic represents a fixed, pre-configured device location.
	ProviderTypeStatic ProviderType = "static"
)

// ProviderConfig holds configuration for creating a location provider.
type ProviderConfig struct {
	Type      ProviderType        // Type of provider to create
	APIKey    string              // API key (used by Google provider)
	RateLimit int                 // Requests per second (Google and Nominatim)
	Location  *models.Coordinates // Fixed location (used by static provider)
	Logger    *slog.Logger        // Logger for the provider
}

// NewProvider creates a location provider based on the provided configuration.
//
// Supported provider types:
// - "google": Google Maps Geocoding API (requires API key)
// - "nominatim": OpenStreetMap Nominatim API (free, no API key required)
// - "static": a fixed location from configuration, the address is ignored
//
// Returns an error if the provider type is unsupported or if provider creation fails.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	case ProviderTypeNominatim:
		return newNominatimProvider(config), nil
	case ProviderTypeStatic:
		return newStaticProvider(config)
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
	}
	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Logger), nil
}

func newNominatimProvider(config ProviderConfig) Provider {
	// Nominatim usage policy allows at most one request per second.
	if config.RateLimit <= 0 || config.RateLimit > 1 {
		config.RateLimit = 1
	}

	return NewNominatimProvider(config.RateLimit, config.Logger)
}

func newStaticProvider(config ProviderConfig) (Provider, error) {
	if config.Location == nil {
		return nil, ErrStaticLocationUnset
	}

	return NewStaticProvider(*config.Location, config.Logger), nil
}
