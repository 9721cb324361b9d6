package controllers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/tontonphone/storefront-backend/api/responses"
	"github.com/tontonphone/storefront-backend/internal/catalog"
	pkgerrors "github.com/tontonphone/storefront-backend/pkg/errors"
	"github.com/tontonphone/storefront-backend/pkg/logger"
)

// ProductList serves the catalog with optional category and spec filters.
// Multi-value params (storage, ram, os, processor) accept repeats or
// comma-separated values; options within one group are OR'd, groups are AND'd.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		query := r.URL.Query()
		filters, err := filtersFromQuery(query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.ListProducts(r.Context(), query.Get("category"), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"products": products,
			"count":    len(products),
		})
	}
}

// ProductDetail serves a single product by its feed id.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		product, err := svc.GetProduct(r.Context(), chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ProductFilters serves the predicate groups and option vocabulary visible
// for a category page.
func ProductFilters(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		options, err := svc.FilterOptions(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, options)
	}
}

// Search serves free-text catalog search.
func Search(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		results, err := svc.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"results": results,
			"count":   len(results),
		})
	}
}

func filtersFromQuery(query url.Values) (catalog.Filters, error) {
	filters := catalog.Filters{
		Brand:     strings.TrimSpace(query.Get("brand")),
		Storage:   multiValues(query, "storage"),
		RAM:       multiValues(query, "ram"),
		OS:        multiValues(query, "os"),
		Processor: multiValues(query, "processor"),
	}

	if raw := strings.TrimSpace(query.Get("max_price")); raw != "" {
		ceiling, err := strconv.Atoi(raw)
		if err != nil || ceiling < 0 {
			return catalog.Filters{}, pkgerrors.New(pkgerrors.CodeValidation, "max_price must be a non-negative integer")
		}
		filters.MaxPrice = &ceiling
	}

	return filters, nil
}

func multiValues(query url.Values, key string) []string {
	var out []string
	for _, raw := range query[key] {
		for _, part := range strings.Split(raw, ",") {
			if v := strings.TrimSpace(part); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}
