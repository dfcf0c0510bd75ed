package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds environment-driven settings for the planner API.
type Config struct {
	HeroicURL               string
	DatabaseURL             string
	CatalogPath             string
	Port                    int
	BearerToken             string
	RequestTimeout          time.Duration
	GWTimeResolutionMinutes int
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		CatalogPath:             "telescopes/",
		Port:                    8080,
		RequestTimeout:          60 * time.Second,
		GWTimeResolutionMinutes: 30,
	}

	cfg.HeroicURL = strings.TrimSpace(os.Getenv("HEROIC_URL"))
	if cfg.HeroicURL == "" {
		return cfg, errors.New("HEROIC_URL is required")
	}

	// optional: without it the catalog is read from the backend
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	if path := os.Getenv("CATALOG_PATH"); path != "" {
		cfg.CatalogPath = path
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	if v := strings.TrimSpace(os.Getenv("PLANNER_REQUEST_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid PLANNER_REQUEST_TIMEOUT: %s", v)
		}
		cfg.RequestTimeout = d
	}

	if v := strings.TrimSpace(os.Getenv("GW_TIME_RESOLUTION_MINUTES")); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			cfg.GWTimeResolutionMinutes = minutes
		} else {
			return cfg, fmt.Errorf("invalid GW_TIME_RESOLUTION_MINUTES: %s", v)
		}
	}

	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")

	return cfg, nil
}

// APIBaseURL returns the root the backend paths are resolved against.
func (c Config) APIBaseURL() string {
	return strings.TrimRight(c.HeroicURL, "/") + "/api/"
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
