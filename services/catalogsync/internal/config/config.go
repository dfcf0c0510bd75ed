package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultCatalogPath    = "telescopes/"
	defaultRequestTimeout = 30 * time.Second
)

// Config holds runtime configuration for the catalog sync job.
type Config struct {
	DatabaseURL    string
	HeroicURL      string
	CatalogPath    string
	RequestTimeout time.Duration
	DryRun         bool
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}

	cfg.HeroicURL = strings.TrimSpace(os.Getenv("HEROIC_URL"))
	if cfg.HeroicURL == "" {
		return cfg, errors.New("HEROIC_URL is required")
	}

	cfg.CatalogPath = strings.TrimSpace(os.Getenv("CATALOG_PATH"))
	if cfg.CatalogPath == "" {
		cfg.CatalogPath = defaultCatalogPath
	}

	cfg.RequestTimeout = defaultRequestTimeout
	if v := strings.TrimSpace(os.Getenv("SYNC_REQUEST_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid SYNC_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}

	dryRun := strings.TrimSpace(os.Getenv("DRY_RUN"))
	cfg.DryRun = dryRun == "1" || strings.EqualFold(dryRun, "true")

	return cfg, nil
}

// APIBaseURL returns the root the catalog path is resolved against.
func (c Config) APIBaseURL() string {
	return strings.TrimRight(c.HeroicURL, "/") + "/api/"
}
