package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the meteogrid service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the HTTP API and monitoring endpoints.
// - ProviderType: The type of location provider to use (google, nominatim, static).
// - APIKey: The API key for the location provider (required for Google).
// - Workers: The number of concurrent workers resolving watch locations.
// - Interval: The duration between resolution passes.
// - ShutdownTimeout: How long the HTTP server may drain connections on shutdown.
// - Weather: Settings of the upstream weather data service.
// - Location: The fixed device location used by the static provider.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env             string
	Port            int
	ProviderType    string
	APIKey          string
	Workers         int
	Interval        time.Duration
	ShutdownTimeout time.Duration
	Weather         WeatherConfig
	Location        LocationConfig
	Database        PostgresConfig
}

// WeatherConfig describes the upstream weather data service.
type WeatherConfig struct {
	BaseURL   string        // BaseURL is queried with ?x=&y= grid parameters.
	Timeout   time.Duration // Timeout applies to a single request.
	RateLimit int           // RateLimit is the number of requests allowed per second.
}

// LocationConfig is the device location reported by the static provider.
type LocationConfig struct {
	Latitude  float64
	Longitude float64
	Set       bool // Set is false when no location was configured.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// MustLoad reads the configuration from the environment (and .env), optionally layered
// over a YAML file named by METEOGRID_CONFIG_FILE. It panics on malformed values.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := newViper()

	if path := os.Getenv("METEOGRID_CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			panic("failed to read configuration file")
		}
	}

	interval, err := time.ParseDuration(v.GetString("interval"))
	if err != nil || interval <= 0 {
		panic("failed to parse interval from configuration")
	}

	shutdownTimeout, err := time.ParseDuration(v.GetString("shutdown_timeout"))
	if err != nil {
		panic("failed to parse shutdown timeout from configuration")
	}

	port, err := strconv.Atoi(v.GetString("port"))
	if err != nil {
		panic("failed to parse port from configuration")
	}

	workers, err := strconv.Atoi(v.GetString("workers"))
	if err != nil || workers < 1 {
		panic("failed to parse workers from configuration, must be a positive integer")
	}

	weatherTimeout, err := time.ParseDuration(v.GetString("weather.timeout"))
	if err != nil || weatherTimeout <= 0 {
		panic("failed to parse weather timeout from configuration")
	}

	weatherRate, err := strconv.Atoi(v.GetString("weather.rate_limit"))
	if err != nil || weatherRate < 0 {
		panic("failed to parse weather rate limit from configuration")
	}

	return &Config{
		Env:             v.GetString("env"),
		Port:            port,
		ProviderType:    v.GetString("provider.type"),
		APIKey:          v.GetString("provider.key"),
		Workers:         workers,
		Interval:        interval,
		ShutdownTimeout: shutdownTimeout,
		Weather: WeatherConfig{
			BaseURL:   v.GetString("weather.url"),
			Timeout:   weatherTimeout,
			RateLimit: weatherRate,
		},
		Location: mustParseLocation(v),
		Database: PostgresConfig{
			Host:     v.GetString("postgres.host"),
			Port:     v.GetString("postgres.port"),
			User:     v.GetString("postgres.user"),
			Password: v.GetString("postgres.password"),
			Name:     v.GetString("postgres.db_name"),
		},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("METEOGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "production")
	v.SetDefault("port", "8080")
	v.SetDefault("provider.type", "nominatim")
	v.SetDefault("workers", "4")
	v.SetDefault("interval", "10m")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("weather.url", "http://localhost:19596/api/weather")
	v.SetDefault("weather.timeout", "10s")
	v.SetDefault("weather.rate_limit", "5")
	v.SetDefault("postgres.port", "5432")

	// Database settings keep the conventional unprefixed names.
	_ = v.BindEnv("postgres.host", "DB_HOST")
	_ = v.BindEnv("postgres.port", "DB_PORT")
	_ = v.BindEnv("postgres.user", "DB_USERNAME")
	_ = v.BindEnv("postgres.password", "DB_PASSWORD")
	_ = v.BindEnv("postgres.db_name", "DB_NAME")

	return v
}

func mustParseLocation(v *viper.Viper) LocationConfig {
	rawLat := v.GetString("location.latitude")
	rawLon := v.GetString("location.longitude")
	if rawLat == "" && rawLon == "" {
		return LocationConfig{}
	}

	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		panic("failed to parse location latitude from configuration")
	}
	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil {
		panic("failed to parse location longitude from configuration")
	}

	return LocationConfig{Latitude: lat, Longitude: lon, Set: true}
}
