package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/meteogrid/internal/grid"
	"github.com/UnknownOlympus/meteogrid/internal/metrics"
	"github.com/UnknownOlympus/meteogrid/internal/models"
	"github.com/UnknownOlympus/meteogrid/internal/repository"
	"github.com/UnknownOlympus/meteogrid/internal/weather"
	"github.com/jonboulle/clockwork"
)

var (
	// ErrInvalidLocation is returned when a location cannot be placed on the forecast grid.
	ErrInvalidLocation = errors.New("invalid location")
	// ErrUpstream is returned when the weather data service fails.
	ErrUpstream = errors.New("weather service unavailable")
)

// User-visible messages shown by the dashboard.
const (
	MessageLocationUnavailable = "위치 정보를 가져올 수 없습니다."
	MessageWeatherFailed       = "날씨 정보를 가져오는데 실패했습니다."
	MessageUnknown             = "알 수 없는 오류가 발생했습니다."
)

// Forecaster fetches the forecast report of a grid cell.
type Forecaster interface {
	Forecast(ctx context.Context, cell models.GridCoordinate) (*weather.Report, error)
}

// LocationFinder looks up stored watch locations.
type LocationFinder interface {
	GetLocationByName(ctx context.Context, name string) (*models.Location, error)
}

// Forecast is the weather section payload for one location.
type Forecast struct {
	Coordinates models.Coordinates    `json:"coordinates"`
	Grid        models.GridCoordinate `json:"grid"`
	Location    string                `json:"location,omitempty"`
	Region      string                `json:"region"`
	IssuedAt    string                `json:"issuedAt"`
	Current     weather.Slot          `json:"current"`
	Report      *weather.Report       `json:"report"`
}

// ForecastService joins projection and the weather data service.
type ForecastService struct {
	log        *slog.Logger
	projector  *grid.Projector
	forecaster Forecaster
	locations  LocationFinder
	metrics    *metrics.Metrics
	clock      clockwork.Clock
}

// NewForecastService creates a ForecastService. locations may be nil, in which
// case ForecastFor always reports the location as not found.
func NewForecastService(
	log *slog.Logger,
	projector *grid.Projector,
	forecaster Forecaster,
	locations LocationFinder,
	metrics *metrics.Metrics,
	clock clockwork.Clock,
) *ForecastService {
	return &ForecastService{
		log:        log,
		projector:  projector,
		forecaster: forecaster,
		locations:  locations,
		metrics:    metrics,
		clock:      clock,
	}
}

// ForecastAt projects coords onto the grid and fetches the forecast of that cell.
func (fs *ForecastService) ForecastAt(ctx context.Context, coords models.Coordinates) (*Forecast, error) {
	cell, err := fs.projector.Project(coords.Latitude, coords.Longitude)
	if err != nil {
		fs.metrics.Projections.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("%w: %w", ErrInvalidLocation, err)
	}
	fs.metrics.Projections.WithLabelValues("success").Inc()

	return fs.fetch(ctx, coords, cell)
}

// ForecastFor fetches the forecast of a stored location by name. Locations that
// have not been resolved to a grid cell yet are reported as invalid.
func (fs *ForecastService) ForecastFor(ctx context.Context, name string) (*Forecast, error) {
	if fs.locations == nil {
		return nil, repository.ErrNotFound
	}

	loc, err := fs.locations.GetLocationByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if loc.Grid == nil || loc.Coordinates == nil {
		return nil, fmt.Errorf("%w: location %q is not resolved yet", ErrInvalidLocation, name)
	}

	forecast, err := fs.fetch(ctx, *loc.Coordinates, *loc.Grid)
	if err != nil {
		return nil, err
	}
	forecast.Location = loc.Name

	return forecast, nil
}

func (fs *ForecastService) fetch(
	ctx context.Context,
	coords models.Coordinates,
	cell models.GridCoordinate,
) (*Forecast, error) {
	start := fs.clock.Now()
	report, err := fs.forecaster.Forecast(ctx, cell)
	fs.metrics.WeatherSeconds.Observe(fs.clock.Since(start).Seconds())
	if err != nil {
		fs.metrics.WeatherRequests.WithLabelValues("failure").Inc()
		fs.log.ErrorContext(ctx, "Failed to fetch forecast", "x", cell.X, "y", cell.Y, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	fs.metrics.WeatherRequests.WithLabelValues("success").Inc()

	slot, _ := report.CurrentSlot(fs.clock.Now())

	return &Forecast{
		Coordinates: coords,
		Grid:        cell,
		Region:      report.Data.RegionFullName,
		IssuedAt:    weather.FormatDateTime(report.Data.BaseDate, slot.BaseTime),
		Current:     slot,
		Report:      report,
	}, nil
}

// UserMessage translates a service error into the message shown to the user.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidLocation), errors.Is(err, repository.ErrNotFound):
		return MessageLocationUnavailable
	case errors.Is(err, ErrUpstream):
		return MessageWeatherFailed
	default:
		return MessageUnknown
	}
}
