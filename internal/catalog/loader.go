package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/tontonphone/storefront-backend/pkg/config"
	pkgerrors "github.com/tontonphone/storefront-backend/pkg/errors"
)

// Loader fetches the product feed over HTTP.
type Loader struct {
	client  *http.Client
	feedURL string
}

// NewLoader builds a feed loader from the catalog configuration.
func NewLoader(cfg config.CatalogConfig) (*Loader, error) {
	if strings.TrimSpace(cfg.FeedURL) == "" {
		return nil, fmt.Errorf("catalog feed url is required")
	}
	return &Loader{
		client:  &http.Client{Timeout: cfg.FetchTimeout},
		feedURL: cfg.FeedURL,
	}, nil
}

// Load fetches and decodes the full feed. Transport failures, non-2xx
// statuses, and malformed payloads all surface as dependency errors so the
// API can answer 503 instead of pretending the catalog is empty.
func (l *Loader) Load(ctx context.Context) ([]FeedProduct, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.feedURL, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build feed request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch product feed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("product feed returned status %d", resp.StatusCode))
	}

	var products []FeedProduct
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode product feed")
	}
	return products, nil
}
