package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/meteogrid/internal/models"
	"github.com/jackc/pgx/v5"
)

// maxResolveAttempts is the number of failed resolutions after which a location is skipped.
const maxResolveAttempts = 5

// FetchPendingLocations retrieves locations that have an address but no grid cell yet.
// Locations that failed maxResolveAttempts times are skipped. The oldest locations
// come first and at most limit rows are returned.
func (r *Repository) FetchPendingLocations(ctx context.Context, limit int) ([]models.Location, error) {
	var locations []models.Location
	query := `
		SELECT location_id, name, address
		FROM public.locations
		WHERE
			grid_x IS NULL
			AND resolve_attempts < $1
			AND address IS NOT NULL AND address <> ''
		ORDER BY created_at ASC
		LIMIT $2;
	`

	rows, err := r.db.Query(ctx, query, maxResolveAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending locations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var loc models.Location
		if errScan := rows.Scan(&loc.ID, &loc.Name, &loc.Address); errScan != nil {
			return nil, fmt.Errorf("failed to scan pending location: %w", errScan)
		}
		r.log.DebugContext(ctx, "Pending location received", "ID", loc.ID, "name", loc.Name)
		locations = append(locations, loc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return locations, nil
}

// UpdateLocationGrid stores the coordinates and grid cell of a location and clears its last error.
func (r *Repository) UpdateLocationGrid(
	ctx context.Context,
	locationID int,
	coords models.Coordinates,
	cell models.GridCoordinate,
) error {
	query := `
		UPDATE locations
		SET
			latitude = $1,
			longitude = $2,
			grid_x = $3,
			grid_y = $4,
			resolve_error = NULL
		WHERE
			location_id = $5;
	`

	_, err := r.db.Exec(ctx, query, coords.Latitude, coords.Longitude, cell.X, cell.Y, locationID)
	if err != nil {
		return fmt.Errorf("failed to update location grid: %w", err)
	}

	return nil
}

// IncrementFailureCount bumps the resolve attempt counter of a location and records errMsg.
func (r *Repository) IncrementFailureCount(ctx context.Context, locationID int, errMsg string) error {
	query := `
		UPDATE locations
		SET
			resolve_attempts = resolve_attempts + 1,
			resolve_error = $1
		WHERE location_id = $2;
	`

	_, err := r.db.Exec(ctx, query, errMsg, locationID)
	if err != nil {
		return fmt.Errorf("failed to update resolve error and number of attempts: %w", err)
	}

	return nil
}

// GetLocationByName returns the location with the given name, or ErrNotFound.
// Coordinates and Grid are nil until the location has been resolved.
func (r *Repository) GetLocationByName(ctx context.Context, name string) (*models.Location, error) {
	query := `
		SELECT
			location_id, name, COALESCE(address, ''), grid_x IS NOT NULL,
			COALESCE(latitude, 0), COALESCE(longitude, 0),
			COALESCE(grid_x, 0), COALESCE(grid_y, 0)
		FROM public.locations
		WHERE name = $1;
	`

	var (
		loc      models.Location
		resolved bool
		coords   models.Coordinates
		cell     models.GridCoordinate
	)
	err := r.db.QueryRow(ctx, query, name).Scan(
		&loc.ID, &loc.Name, &loc.Address, &resolved,
		&coords.Latitude, &coords.Longitude, &cell.X, &cell.Y,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query location by name: %w", err)
	}

	if resolved {
		loc.Coordinates = &coords
		loc.Grid = &cell
	}

	return &loc, nil
}

// CheckReadiness reports whether the database is reachable.
func (r *Repository) CheckReadiness(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}

	return nil
}
