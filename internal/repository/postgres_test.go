package repository_test

import (
	"log/slog"
	"regexp"
	"testing"

	"github.com/UnknownOlympus/meteogrid/internal/models"
	"github.com/UnknownOlympus/meteogrid/internal/repository"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fetchPendingQuery = `
		SELECT location_id, name, address
		FROM public.locations
		WHERE
			grid_x IS NULL
			AND resolve_attempts < $1
			AND address IS NOT NULL AND address <> ''
		ORDER BY created_at ASC
		LIMIT $2;
	`

func TestFetchPendingLocations(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	limit := 10

	t.Run("error - query pending locations", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchPendingQuery)).
			WithArgs(5, limit).
			WillReturnError(assert.AnError)

		locations, err := repo.FetchPendingLocations(ctx, limit)

		require.Nil(t, locations)
		require.ErrorContains(t, err, "failed to query pending locations")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - scan pending location", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchPendingQuery)).
			WithArgs(5, limit).
			WillReturnRows(
				pgxmock.NewRows([]string{"location_id", "name", "address"}).AddRow("invalid_id", "seoul", "서울특별시"),
			)

		locations, err := repo.FetchPendingLocations(ctx, limit)

		require.Nil(t, locations)
		require.ErrorContains(t, err, "failed to scan pending location")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - rows error", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchPendingQuery)).
			WithArgs(5, limit).
			WillReturnRows(
				pgxmock.NewRows([]string{"location_id", "name", "address"}).AddRow(1, "seoul", "서울특별시").
					RowError(1, assert.AnError),
			)

		locations, err := repo.FetchPendingLocations(ctx, limit)

		require.Nil(t, locations)
		require.ErrorContains(t, err, "failed to read row")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - fetch pending locations", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchPendingQuery)).
			WithArgs(5, limit).
			WillReturnRows(
				pgxmock.NewRows([]string{"location_id", "name", "address"}).
					AddRow(1, "seoul", "서울특별시 중구 세종대로 110").
					AddRow(2, "busan", "부산광역시 연제구 중앙대로 1001"),
			)

		locations, err := repo.FetchPendingLocations(ctx, limit)

		require.NoError(t, err)
		require.Len(t, locations, 2)
		assert.Equal(t, models.Location{ID: 1, Name: "seoul", Address: "서울특별시 중구 세종대로 110"}, locations[0])
		assert.Equal(t, "busan", locations[1].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateLocationGrid(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	locationID := 7
	coords := models.Coordinates{Latitude: 37.5665, Longitude: 126.9780}
	cell := models.GridCoordinate{X: 60, Y: 127}
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

	t.Run("error - update location grid", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(query)).
			WithArgs(coords.Latitude, coords.Longitude, cell.X, cell.Y, locationID).
			WillReturnError(assert.AnError)

		err = repo.UpdateLocationGrid(ctx, locationID, coords, cell)

		require.ErrorContains(t, err, "failed to update location grid")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - update location grid", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(query)).
			WithArgs(coords.Latitude, coords.Longitude, cell.X, cell.Y, locationID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err = repo.UpdateLocationGrid(ctx, locationID, coords, cell)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIncrementFailureCount(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	locationID := 123
	query := `
		UPDATE locations
		SET
			resolve_attempts = resolve_attempts + 1,
			resolve_error = $1
		WHERE location_id = $2;
	`

	t.Run("error - increment failure count", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(query)).WithArgs("error", locationID).
			WillReturnError(assert.AnError)

		err = repo.IncrementFailureCount(ctx, locationID, "error")

		require.ErrorContains(t, err, "failed to update resolve error and number of attempts")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - increment failure count", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectExec(regexp.QuoteMeta(query)).WithArgs("error", locationID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err = repo.IncrementFailureCount(ctx, locationID, "error")

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetLocationByName(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	query := `
		SELECT
			location_id, name, COALESCE(address, ''), grid_x IS NOT NULL,
			COALESCE(latitude, 0), COALESCE(longitude, 0),
			COALESCE(grid_x, 0), COALESCE(grid_y, 0)
		FROM public.locations
		WHERE name = $1;
	`
	columns := []string{"location_id", "name", "address", "resolved", "latitude", "longitude", "grid_x", "grid_y"}

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(query)).WithArgs("atlantis").
			WillReturnRows(pgxmock.NewRows(columns))

		loc, err := repo.GetLocationByName(ctx, "atlantis")

		require.Nil(t, loc)
		require.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(query)).WithArgs("seoul").
			WillReturnError(assert.AnError)

		loc, err := repo.GetLocationByName(ctx, "seoul")

		require.Nil(t, loc)
		require.ErrorContains(t, err, "failed to query location by name")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("resolved location", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(query)).WithArgs("seoul").
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(1, "seoul", "서울특별시 중구 세종대로 110", true, 37.5665, 126.978, 60, 127))

		loc, err := repo.GetLocationByName(ctx, "seoul")

		require.NoError(t, err)
		require.NotNil(t, loc.Coordinates)
		require.NotNil(t, loc.Grid)
		assert.Equal(t, models.GridCoordinate{X: 60, Y: 127}, *loc.Grid)
		assert.InEpsilon(t, 37.5665, loc.Coordinates.Latitude, 1e-9)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unresolved location", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(query)).WithArgs("busan").
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(2, "busan", "부산광역시", false, 0.0, 0.0, 0, 0))

		loc, err := repo.GetLocationByName(ctx, "busan")

		require.NoError(t, err)
		assert.Equal(t, "busan", loc.Name)
		assert.Nil(t, loc.Coordinates)
		assert.Nil(t, loc.Grid)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("location without address", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(query)).WithArgs("device").
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(3, "device", "", true, 35.1796, 129.0756, 98, 76))

		loc, err := repo.GetLocationByName(ctx, "device")

		require.NoError(t, err)
		assert.Empty(t, loc.Address)
		require.NotNil(t, loc.Grid)
		assert.Equal(t, models.GridCoordinate{X: 98, Y: 76}, *loc.Grid)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMigrate(t *testing.T) {
	t.Parallel()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(repository.Schema)).WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	require.NoError(t, repository.Migrate(t.Context(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckReadiness(t *testing.T) {
	t.Parallel()
	logger := slog.Default()

	t.Run("reachable", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectPing()

		require.NoError(t, repository.NewRepository(mock, logger).CheckReadiness(t.Context()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectPing().WillReturnError(assert.AnError)

		err = repository.NewRepository(mock, logger).CheckReadiness(t.Context())
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
