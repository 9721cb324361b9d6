package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/tontonphone/storefront-backend/pkg/db/models"
	pkgerrors "github.com/tontonphone/storefront-backend/pkg/errors"
	"github.com/tontonphone/storefront-backend/pkg/logger"
)

type feedSource interface {
	Load(ctx context.Context) ([]FeedProduct, error)
}

type productWriter interface {
	UpsertAll(ctx context.Context, products []*models.Product) error
}

// Importer synchronizes the upstream product feed into the database.
type Importer struct {
	source feedSource
	repo   productWriter
	logg   *logger.Logger
}

// ImporterParams groups the dependencies for the feed importer.
type ImporterParams struct {
	Source feedSource
	Repo   productWriter
	Logger *logger.Logger
}

// NewImporter builds a catalog importer with the required dependencies.
func NewImporter(params ImporterParams) (*Importer, error) {
	if params.Source == nil {
		return nil, fmt.Errorf("feed source is required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	return &Importer{
		source: params.Source,
		repo:   params.Repo,
		logg:   params.Logger,
	}, nil
}

// Run fetches the feed and upserts every entry, skipping rows with no ID.
// It returns the number of products written.
func (i *Importer) Run(ctx context.Context) (int, error) {
	feed, err := i.source.Load(ctx)
	if err != nil {
		return 0, err
	}

	rows := make([]*models.Product, 0, len(feed))
	skipped := 0
	for _, entry := range feed {
		if strings.TrimSpace(entry.ID) == "" {
			skipped++
			continue
		}
		rows = append(rows, entry.ToModel())
	}

	if err := i.repo.UpsertAll(ctx, rows); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upsert products")
	}

	if i.logg != nil {
		logCtx := i.logg.WithFields(ctx, map[string]any{
			"imported": len(rows),
			"skipped":  skipped,
		})
		i.logg.Info(logCtx, "catalog.import.complete")
	}
	return len(rows), nil
}
