package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	LocationsResolved *prometheus.CounterVec
	ProviderErrors    prometheus.Counter
	ProviderSeconds   *prometheus.HistogramVec
	ActiveWorkers     prometheus.Gauge
	Projections       *prometheus.CounterVec
	WeatherRequests   *prometheus.CounterVec
	WeatherSeconds    prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		LocationsResolved: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "meteogrid_locations_resolved_total",
			Help: "Total number of watch locations processed by the resolver.",
		}, []string{"status"}),
		ProviderErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "meteogrid_location_provider_errors_total",
			Help: "Total number of errors received from the location provider.",
		}),
		ProviderSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "meteogrid_location_provider_request_duration_seconds",
			Help:    "Duration of requests to the location provider.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "meteogrid_active_workers",
			Help: "Current number of workers resolving locations.",
		}),
		Projections: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "meteogrid_grid_projections_total",
			Help: "Total number of coordinate to grid projections by outcome.",
		}, []string{"outcome"}),
		WeatherRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "meteogrid_weather_requests_total",
			Help: "Requests to the weather data service by outcome.",
		}, []string{"outcome"}),
		WeatherSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "meteogrid_weather_request_duration_seconds",
			Help:    "Duration of requests to the weather data service.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}
