package geocoding

import (
	"context"
	"errors"
	"log/slog"

	"github.com/UnknownOlympus/meteogrid/internal/models"
)

// ErrStaticLocationUnset is returned when the static provider is selected without a location.
var ErrStaticLocationUnset = errors.New("static provider requires a configured location")

// StaticProvider reports one fixed location, as a device geolocation would.
type StaticProvider struct {
	location models.Coordinates
	log      *slog.Logger
}

// NewStaticProvider returns a provider that always answers with location.
func NewStaticProvider(location models.Coordinates, log *slog.Logger) *StaticProvider {
	return &StaticProvider{location: location, log: log}
}

// Geocode ignores the address and returns the configured location.
func (sp *StaticProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sp.log.DebugContext(ctx, "Using static location", "address", address,
		"lat", sp.location.Latitude, "lon", sp.location.Longitude)

	coords := sp.location
	return &coords, nil
}
