package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/02loveslollipop/heroic-planner/internal/catalog"
	"github.com/02loveslollipop/heroic-planner/internal/db"
	"github.com/02loveslollipop/heroic-planner/internal/heroic"
	"github.com/02loveslollipop/heroic-planner/internal/logging"
	"github.com/02loveslollipop/heroic-planner/internal/models"
	"github.com/02loveslollipop/heroic-planner/services/api/config"
	httpserver "github.com/02loveslollipop/heroic-planner/services/api/http"
	"github.com/02loveslollipop/heroic-planner/services/api/planner"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := heroic.NewClient(&http.Client{Timeout: cfg.RequestTimeout}, cfg.APIBaseURL())

	records, err := loadCatalog(ctx, cfg, client)
	if err != nil {
		log.Printf("catalog unavailable, continuing without it: %v", err)
	}
	cat := catalog.New(records)
	log.Printf("loaded %d telescopes", cat.Len())

	p, err := planner.New(planner.Options{
		Transport:               client,
		Catalog:                 cat,
		Logger:                  logging.New("planner"),
		GWTimeResolutionMinutes: cfg.GWTimeResolutionMinutes,
	})
	if err != nil {
		log.Fatalf("planner: %v", err)
	}
	defer p.Close()

	srv := httpserver.New(cfg, p)
	log.Printf("planner API listening on %s (backend %s)", cfg.ListenAddr(), cfg.APIBaseURL())

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// loadCatalog reads the catalog from Postgres when DATABASE_URL is set, otherwise
// straight from the backend.
func loadCatalog(ctx context.Context, cfg config.Config, client *heroic.Client) ([]models.Telescope, error) {
	loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if cfg.DatabaseURL == "" {
		return client.FetchTelescopes(loadCtx, cfg.CatalogPath)
	}

	store, err := db.New(loadCtx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.ListTelescopes(loadCtx)
}
