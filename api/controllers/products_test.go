package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"

	catalogsvc "github.com/tontonphone/storefront-backend/internal/catalog"
	pkgerrors "github.com/tontonphone/storefront-backend/pkg/errors"
)

type stubCatalogService struct {
	filters  catalogsvc.Filters
	category string
}

func (s *stubCatalogService) ListProducts(ctx context.Context, category string, filters catalogsvc.Filters) ([]catalogsvc.ProductDTO, error) {
	s.category = category
	s.filters = filters
	return []catalogsvc.ProductDTO{}, nil
}

func (s *stubCatalogService) GetProduct(ctx context.Context, id string) (*catalogsvc.ProductDTO, error) {
	return &catalogsvc.ProductDTO{ID: id}, nil
}

func (s *stubCatalogService) FilterOptions(ctx context.Context, category string) (*catalogsvc.FilterOptionsDTO, error) {
	return &catalogsvc.FilterOptionsDTO{Category: category}, nil
}

func (s *stubCatalogService) Search(ctx context.Context, query string) ([]catalogsvc.ProductDTO, error) {
	return []catalogsvc.ProductDTO{}, nil
}

func TestProductListParsesFilterQuery(t *testing.T) {
	stub := &stubCatalogService{}
	handler := ProductList(stub, nil)

	target := "/api/v1/products?category=phones&brand=Acme&max_price=25000&storage=128GB,256GB&ram=8GB%20RAM&ram=12GB%20RAM"
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, target, nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if stub.category != "phones" {
		t.Fatalf("expected category phones, got %q", stub.category)
	}
	if stub.filters.Brand != "Acme" {
		t.Fatalf("expected brand Acme, got %q", stub.filters.Brand)
	}
	if stub.filters.MaxPrice == nil || *stub.filters.MaxPrice != 25000 {
		t.Fatalf("expected max price 25000, got %v", stub.filters.MaxPrice)
	}
	if !reflect.DeepEqual(stub.filters.Storage, []string{"128GB", "256GB"}) {
		t.Fatalf("expected comma-split storage values, got %v", stub.filters.Storage)
	}
	if !reflect.DeepEqual(stub.filters.RAM, []string{"8GB RAM", "12GB RAM"}) {
		t.Fatalf("expected repeated ram values, got %v", stub.filters.RAM)
	}
}

func TestProductListRejectsBadMaxPrice(t *testing.T) {
	handler := ProductList(&stubCatalogService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/products?max_price=cheap", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric max_price got %d", resp.Code)
	}
}

func TestFiltersFromQueryKeepsZeroCeiling(t *testing.T) {
	query := url.Values{"max_price": []string{"0"}}

	filters, err := filtersFromQuery(query)
	if err != nil {
		t.Fatalf("parse filters: %v", err)
	}
	if filters.MaxPrice == nil || *filters.MaxPrice != 0 {
		t.Fatalf("expected explicit zero ceiling, got %v", filters.MaxPrice)
	}
}

func TestFiltersFromQueryEmptyIsInactive(t *testing.T) {
	filters, err := filtersFromQuery(url.Values{})
	if err != nil {
		t.Fatalf("parse filters: %v", err)
	}
	if filters.Active() {
		t.Fatalf("expected inactive filters, got %+v", filters)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	handler := Search(&blankQuerySearchService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/search", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank query got %d", resp.Code)
	}
}

type blankQuerySearchService struct {
	stubCatalogService
}

func (s *blankQuerySearchService) Search(ctx context.Context, query string) ([]catalogsvc.ProductDTO, error) {
	if query == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}
	return nil, nil
}
