package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/heroic")
	t.Setenv("HEROIC_URL", "https://heroic.example.org")
	t.Setenv("CATALOG_PATH", "")
	t.Setenv("SYNC_REQUEST_TIMEOUT", "")
	t.Setenv("DRY_RUN", "TRUE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.CatalogPath != "telescopes/" || cfg.RequestTimeout != 30*time.Second || !cfg.DryRun {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.APIBaseURL() != "https://heroic.example.org/api/" {
		t.Fatalf("unexpected base url %q", cfg.APIBaseURL())
	}
}

func TestLoadRequiredAndInvalid(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("HEROIC_URL", "https://heroic.example.org")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/heroic")
	t.Setenv("SYNC_REQUEST_TIMEOUT", "later")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid timeout")
	}
}
