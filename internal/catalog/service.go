package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tontonphone/storefront-backend/pkg/db/models"
	pkgerrors "github.com/tontonphone/storefront-backend/pkg/errors"
	"gorm.io/gorm"
)

// Option vocabularies shown to shoppers. They deliberately reuse the exact
// labels the feed embeds in spec strings: the filter engine matches by
// substring, so renaming an option here silently breaks its filter.
var (
	storageOptions   = []string{"64GB", "128GB", "256GB", "512GB", "1TB", "2TB"}
	ramOptions       = []string{"4GB RAM", "6GB RAM", "8GB RAM", "12GB RAM", "16GB RAM", "32GB RAM"}
	osOptions        = []string{"Android", "iOS", "iPadOS", "Windows", "macOS", "ChromeOS"}
	processorOptions = []string{"Intel Core i5", "Intel Core i7", "Intel Core i9", "AMD Ryzen 5", "AMD Ryzen 7", "Apple M"}
)

// FilterOptionsDTO describes the predicate groups and option vocabulary
// for a category page.
type FilterOptionsDTO struct {
	Category  string         `json:"category"`
	Sections  FilterSections `json:"sections"`
	Brands    []string       `json:"brands"`
	Storage   []string       `json:"storage,omitempty"`
	RAM       []string       `json:"ram,omitempty"`
	OS        []string       `json:"os,omitempty"`
	Processor []string       `json:"processor,omitempty"`
}

// Service exposes catalog reads for the API layer.
type Service interface {
	ListProducts(ctx context.Context, category string, filters Filters) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id string) (*ProductDTO, error)
	FilterOptions(ctx context.Context, category string) (*FilterOptionsDTO, error)
	Search(ctx context.Context, query string) ([]ProductDTO, error)
}

type productRepository interface {
	List(ctx context.Context, category string) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Brands(ctx context.Context, category string) ([]string, error)
}

// ServiceParams groups the dependencies for the catalog service.
type ServiceParams struct {
	ProductRepo productRepository
}

type service struct {
	products productRepository
}

// NewService builds a catalog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ProductRepo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	return &service{products: params.ProductRepo}, nil
}

func (s *service) ListProducts(ctx context.Context, category string, filters Filters) ([]ProductDTO, error) {
	products, err := s.products.List(ctx, normalizeCategory(category))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}

	filtered := ApplyFilters(products, filters)
	return toDTOs(filtered), nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*ProductDTO, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup product")
	}
	dto := FromModel(product)
	return &dto, nil
}

func (s *service) FilterOptions(ctx context.Context, category string) (*FilterOptionsDTO, error) {
	normalized := normalizeCategory(category)
	brands, err := s.products.Brands(ctx, normalized)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list brands")
	}

	sections := SectionsForCategory(normalized)
	dto := &FilterOptionsDTO{
		Category: normalized,
		Sections: sections,
		Brands:   brands,
	}
	if sections.Storage {
		dto.Storage = storageOptions
	}
	if sections.RAM {
		dto.RAM = ramOptions
	}
	if sections.OS {
		dto.OS = osOptions
	}
	if sections.Processor {
		dto.Processor = processorOptions
	}
	return dto, nil
}

func (s *service) Search(ctx context.Context, query string) ([]ProductDTO, error) {
	if strings.TrimSpace(query) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}

	products, err := s.products.List(ctx, "")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return toDTOs(SearchProducts(products, query)), nil
}

func toDTOs(products []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, FromModel(&products[i]))
	}
	return out
}

func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
