package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/meteogrid/internal/geocoding"
	"github.com/UnknownOlympus/meteogrid/internal/grid"
	"github.com/UnknownOlympus/meteogrid/internal/metrics"
	"github.com/UnknownOlympus/meteogrid/internal/models"
	"github.com/UnknownOlympus/meteogrid/internal/repository"
)

const locationBatchLimit = 100

// GridService resolves watch locations into forecast grid cells. Each poll it
// geocodes pending locations with a pool of workers and stores the projected cell.
type GridService struct {
	log          *slog.Logger         // Logger for service activities
	repo         repository.Interface // Storage of watch locations
	provider     geocoding.Provider   // Location provider used to resolve addresses
	providerName string               // Name of the provider for metrics labeling
	metrics      *metrics.Metrics     // Metrics for tracking service performance
	projector    *grid.Projector      // Projection onto the forecast grid
	numWorkers   int                  // Number of concurrent workers
	pollInterval time.Duration        // Interval between polls for pending locations
}

// NewGridService creates a new instance of GridService.
func NewGridService(
	log *slog.Logger,
	repo repository.Interface,
	provider geocoding.Provider,
	providerName string,
	metrics *metrics.Metrics,
	projector *grid.Projector,
	numWorkers int,
	pollInterval time.Duration,
) *GridService {
	return &GridService{
		log:          log,
		repo:         repo,
		provider:     provider,
		providerName: providerName,
		metrics:      metrics,
		projector:    projector,
		numWorkers:   numWorkers,
		pollInterval: pollInterval,
	}
}

// Run polls for pending locations until ctx is cancelled.
func (gs *GridService) Run(ctx context.Context) {
	ticker := time.NewTicker(gs.pollInterval)
	defer ticker.Stop()

	gs.log.InfoContext(ctx, "Grid service started...")

	for {
		select {
		case <-ctx.Done():
			gs.log.InfoContext(ctx, "Grid service stopped.")
			return
		case <-ticker.C:
			gs.log.InfoContext(ctx, "Polling for locations to resolve...")
			gs.processLocations(ctx)
		}
	}
}

// processLocations fetches one batch of pending locations and fans it out to the
// worker pool, returning once every worker has finished.
func (gs *GridService) processLocations(ctx context.Context) {
	locations, err := gs.repo.FetchPendingLocations(ctx, locationBatchLimit)
	if err != nil {
		gs.log.ErrorContext(ctx, "Failed to fetch pending locations", "error", err)
		return
	}
	if len(locations) == 0 {
		gs.log.InfoContext(ctx, "No locations to resolve.")
		return
	}

	gs.log.InfoContext(
		ctx,
		"Found locations to resolve. Starting worker pool.",
		"jobs", len(locations),
		"num_workers", gs.numWorkers,
	)

	jobs := make(chan models.Location, len(locations))
	var wgr sync.WaitGroup

	for i := 1; i <= gs.numWorkers; i++ {
		wgr.Add(1)
		go gs.worker(ctx, i, &wgr, jobs)
	}

	for _, loc := range locations {
		jobs <- loc
	}
	close(jobs)

	wgr.Wait()
	gs.log.InfoContext(ctx, "Resolving batch finished")
}

func (gs *GridService) worker(ctx context.Context, idx int, wg *sync.WaitGroup, jobs <-chan models.Location) {
	defer wg.Done()
	for loc := range jobs {
		gs.metrics.ActiveWorkers.Inc()
		gs.resolve(ctx, idx, loc)
		gs.metrics.ActiveWorkers.Dec()
	}
}

// resolve geocodes a single location, projects it and stores the result. Any
// failure is recorded against the location so it can be retried later.
func (gs *GridService) resolve(ctx context.Context, idx int, loc models.Location) {
	gs.log.DebugContext(ctx, "Resolving location", "worker", idx, "location", loc.ID)

	startTime := time.Now()
	coords, err := gs.provider.Geocode(ctx, loc.Address)
	gs.metrics.ProviderSeconds.WithLabelValues(gs.providerName).Observe(time.Since(startTime).Seconds())

	if err != nil {
		gs.log.ErrorContext(ctx, "Failed to geocode", "worker", idx, "location", loc.ID, "error", err)
		gs.metrics.ProviderErrors.Inc()
		gs.fail(ctx, idx, loc.ID, err)
		return
	}

	cell, err := gs.projector.Project(coords.Latitude, coords.Longitude)
	if err != nil {
		gs.log.ErrorContext(ctx, "Failed to project coordinates", "worker", idx, "location", loc.ID, "error", err)
		gs.metrics.Projections.WithLabelValues("failure").Inc()
		gs.fail(ctx, idx, loc.ID, err)
		return
	}
	gs.metrics.Projections.WithLabelValues("success").Inc()

	if err = gs.repo.UpdateLocationGrid(ctx, loc.ID, *coords, cell); err != nil {
		gs.log.ErrorContext(
			ctx,
			"Failed to store grid cell for location",
			"worker", idx,
			"location", loc.ID,
			"error", err,
		)
		gs.metrics.LocationsResolved.WithLabelValues("failure").Inc()
		return
	}

	gs.metrics.LocationsResolved.WithLabelValues("success").Inc()
	gs.log.DebugContext(ctx, "Worker resolved location", "worker", idx, "location", loc.ID, "x", cell.X, "y", cell.Y)
}

func (gs *GridService) fail(ctx context.Context, idx, locationID int, cause error) {
	gs.metrics.LocationsResolved.WithLabelValues("failure").Inc()

	if err := gs.repo.IncrementFailureCount(ctx, locationID, cause.Error()); err != nil {
		gs.log.ErrorContext(
			ctx,
			"Could not update failure count for location",
			"worker", idx,
			"location", locationID,
			"error", err,
		)
	}
}
