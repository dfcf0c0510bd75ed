package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HEROIC_URL", "DATABASE_URL", "CATALOG_PATH", "PORT", "API_PORT",
		"PLANNER_REQUEST_TIMEOUT", "GW_TIME_RESOLUTION_MINUTES", "API_BEARER_TOKEN",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HEROIC_URL", "https://heroic.example.org/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Port != 8080 || cfg.RequestTimeout != 60*time.Second || cfg.GWTimeResolutionMinutes != 30 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.APIBaseURL() != "https://heroic.example.org/api/" {
		t.Fatalf("unexpected api base %q", cfg.APIBaseURL())
	}
	if cfg.DatabaseURL != "" || cfg.CatalogPath != "telescopes/" {
		t.Fatalf("unexpected catalog settings %+v", cfg)
	}
}

func TestLoadRequiresHeroicURL(t *testing.T) {
	clearEnv(t)
	if _, err := Load(); err == nil {
		t.Fatal("expected error without HEROIC_URL")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HEROIC_URL", "https://heroic.example.org")
	t.Setenv("API_PORT", "9090")
	t.Setenv("PLANNER_REQUEST_TIMEOUT", "15s")
	t.Setenv("GW_TIME_RESOLUTION_MINUTES", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ListenAddr() != ":9090" || cfg.RequestTimeout != 15*time.Second || cfg.GWTimeResolutionMinutes != 10 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":                       "-1",
		"PLANNER_REQUEST_TIMEOUT":    "soon",
		"GW_TIME_RESOLUTION_MINUTES": "0",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("HEROIC_URL", "https://heroic.example.org")
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}
