package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/tontonphone/storefront-backend/internal/catalog"
	"github.com/tontonphone/storefront-backend/pkg/config"
	"github.com/tontonphone/storefront-backend/pkg/db"
	"github.com/tontonphone/storefront-backend/pkg/logger"
)

// Fetches the upstream product feed and upserts it into the products table.
// Run it on deploy and whenever the feed changes.
func main() {
	logg := logger.New(logger.Options{ServiceName: "import-catalog"})

	_ = godotenv.Load()

	feedURL := flag.String("feed", "", "feed URL override (defaults to TONTON_CATALOG_FEED_URL)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "import-catalog",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if *feedURL != "" {
		cfg.Catalog.FeedURL = *feedURL
	}

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"feed": cfg.Catalog.FeedURL,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	loader, err := catalog.NewLoader(cfg.Catalog)
	if err != nil {
		logg.Error(ctx, "failed to create feed loader", err)
		os.Exit(1)
	}

	importer, err := catalog.NewImporter(catalog.ImporterParams{
		Source: loader,
		Repo:   catalog.NewRepository(dbClient.DB()),
		Logger: logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create importer", err)
		os.Exit(1)
	}

	count, err := importer.Run(ctx)
	if err != nil {
		logg.Error(ctx, "catalog import failed", err)
		os.Exit(1)
	}

	logg.Info(logg.WithField(ctx, "count", count), "catalog import finished")
}
