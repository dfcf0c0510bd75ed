package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/02loveslollipop/heroic-planner/internal/catalog"
	"github.com/02loveslollipop/heroic-planner/internal/db"
	"github.com/02loveslollipop/heroic-planner/internal/heroic"
	"github.com/02loveslollipop/heroic-planner/internal/logging"
	"github.com/02loveslollipop/heroic-planner/services/catalogsync/internal/config"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("catalog sync failed: %v", err)
	}
}

func run() error {
	logger := logging.New("catalogsync")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout+10*time.Second)
	defer cancel()

	client := heroic.NewClient(&http.Client{Timeout: cfg.RequestTimeout}, cfg.APIBaseURL())

	records, err := client.FetchTelescopes(ctx, cfg.CatalogPath)
	if err != nil {
		return err
	}
	telescopes := catalog.Normalize(records)
	logger.Printf("fetched %d telescopes (%d after normalization)", len(records), len(telescopes))

	if cfg.DryRun {
		for _, t := range telescopes {
			logger.Printf("dry-run: would upsert telescope=%s kind=%s instruments=%d", t.ID, t.Kind, len(t.Instruments))
		}
		return nil
	}

	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.UpsertTelescopes(ctx, telescopes); err != nil {
		return err
	}

	logger.Printf("upserted %d telescopes", len(telescopes))
	return nil
}
