package geocoding_test

import (
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/meteogrid/internal/geocoding"
	"github.com/UnknownOlympus/meteogrid/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	logger := slog.Default()

	t.Run("create Google provider successfully", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:      geocoding.ProviderTypeGoogle,
			APIKey:    "test-api-key",
			RateLimit: 10,
			Logger:    logger,
		}

		provider, err := geocoding.NewProvider(config)

		require.NoError(t, err)
		_, ok := provider.(*geocoding.GoogleProvider)
		assert.True(t, ok, "expected provider to be *GoogleProvider")
	})

	t.Run("create Google provider without API key fails", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:   geocoding.ProviderTypeGoogle,
			Logger: logger,
		}

		provider, err := geocoding.NewProvider(config)

		require.Nil(t, provider)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API key is required for Google provider")
	})

	t.Run("create Google provider without rate limit", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:   geocoding.ProviderTypeGoogle,
			APIKey: "test-api-key",
			Logger: logger,
		}

		provider, err := geocoding.NewProvider(config)

		require.NoError(t, err)
		require.NotNil(t, provider)
	})

	t.Run("create Nominatim provider without API key", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:      geocoding.ProviderTypeNominatim,
			RateLimit: 50,
			Logger:    logger,
		}

		provider, err := geocoding.NewProvider(config)

		require.NoError(t, err)
		_, ok := provider.(*geocoding.NominatimProvider)
		assert.True(t, ok, "expected provider to be *NominatimProvider")
	})

	t.Run("create static provider", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:     geocoding.ProviderTypeStatic,
			Location: &models.Coordinates{Latitude: 37.5665, Longitude: 126.9780},
			Logger:   logger,
		}

		provider, err := geocoding.NewProvider(config)

		require.NoError(t, err)
		_, ok := provider.(*geocoding.StaticProvider)
		assert.True(t, ok, "expected provider to be *StaticProvider")
	})

	t.Run("static provider without location fails", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:   geocoding.ProviderTypeStatic,
			Logger: logger,
		}

		provider, err := geocoding.NewProvider(config)

		require.Nil(t, provider)
		require.ErrorIs(t, err, geocoding.ErrStaticLocationUnset)
	})

	t.Run("unsupported provider type", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:   geocoding.ProviderType("visicom"),
			Logger: logger,
		}

		provider, err := geocoding.NewProvider(config)

		require.Nil(t, provider)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported provider type: visicom")
	})
}

func TestProviderType_Constants(t *testing.T) {
	assert.Equal(t, "google", string(geocoding.ProviderTypeGoogle))
	assert.Equal(t, "nominatim", string(geocoding.ProviderTypeNominatim))
	assert.Equal(t, "static", string(geocoding.ProviderTypeStatic))
}
