package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Location names a city to keep warm in the forecast cache.
type Location struct {
	Country string
	City    string
}

type AppConfig struct {
	// Upstream provider credentials. A provider is only configured when its
	// token is present; at least one token is required.
	OpenWeatherToken string
	AccuWeatherToken string

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration

	// WarmLocations are refreshed periodically by the scheduler so the first
	// request of the day does not pay the fan-out cost.
	WarmLocations []Location
	WarmInterval  time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.OpenWeatherToken = os.Getenv("OWM_TOKEN")
	cfg.AccuWeatherToken = os.Getenv("ACCU_TOKEN")
	if cfg.OpenWeatherToken == "" && cfg.AccuWeatherToken == "" {
		return nil, fmt.Errorf("no provider tokens configured; set OWM_TOKEN and/or ACCU_TOKEN")
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	intervalStr := getenvDefault("WARM_INTERVAL", "6h")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid WARM_INTERVAL: %w", err)
	}
	cfg.WarmInterval = interval

	locs, err := parseWarmLocations(os.Getenv("WARM_LOCATIONS"))
	if err != nil {
		return nil, err
	}
	cfg.WarmLocations = locs

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

// parseWarmLocations parses a comma-separated list of country/city pairs,
// e.g. "US/Chicago,DE/Berlin". An empty value disables warm-up.
func parseWarmLocations(raw string) ([]Location, error) {
	if raw == "" {
		return nil, nil
	}

	var locs []Location
	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "/", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid WARM_LOCATIONS entry %q; expected COUNTRY/City", item)
		}
		locs = append(locs, Location{Country: parts[0], City: parts[1]})
	}

	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
