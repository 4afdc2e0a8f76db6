package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// GeocoderKind selects the geocoding backend.
type GeocoderKind string

const (
	GeocoderNominatim GeocoderKind = "nominatim"
	GeocoderGoogle    GeocoderKind = "google"
)

// AppConfig holds everything read from the environment at startup.
type AppConfig struct {
	// OpenWeatherAPIKey authenticates every weather call. Required.
	OpenWeatherAPIKey string

	Port        string
	HTTPTimeout time.Duration

	Geocoder       GeocoderKind
	GeocoderAPIKey string

	// Geocode cache retention and how often expired entries are pruned.
	GeocodeCacheTTL      time.Duration
	GeocodePruneInterval time.Duration

	ChartWidth  int
	ChartHeight int
}

// Load reads configuration from environment with sensible defaults.
// A missing OpenWeatherMap API key is a startup failure, not a latent 401.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	if cfg.OpenWeatherAPIKey == "" {
		return nil, fmt.Errorf("OPENWEATHER_API_KEY is required")
	}

	cfg.Port = getenvDefault("PORT", "8080")

	timeout, err := getenvDuration("HTTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	cfg.Geocoder = GeocoderKind(getenvDefault("GEOCODER", string(GeocoderNominatim)))
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")
	switch cfg.Geocoder {
	case GeocoderNominatim:
	case GeocoderGoogle:
		if cfg.GeocoderAPIKey == "" {
			return nil, fmt.Errorf("GEOCODER_API_KEY is required when GEOCODER=google")
		}
	default:
		return nil, fmt.Errorf("unknown GEOCODER %q", cfg.Geocoder)
	}

	ttl, err := getenvDuration("GEOCODE_CACHE_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.GeocodeCacheTTL = ttl

	prune, err := getenvDuration("GEOCODE_PRUNE_INTERVAL", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.GeocodePruneInterval = prune

	cfg.ChartWidth = getenvInt("CHART_WIDTH", 1024)
	cfg.ChartHeight = getenvInt("CHART_HEIGHT", 400)

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
