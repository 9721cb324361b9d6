package catalog

import (
	"strings"

	"github.com/tontonphone/storefront-backend/pkg/db/models"
)

// SearchProducts returns the products whose name, description, brand,
// category, or specs contain the query, case-insensitively. A blank query
// matches nothing.
func SearchProducts(products []models.Product, query string) []models.Product {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}

	out := make([]models.Product, 0)
	for _, p := range products {
		if containsFold(p.Name, needle) ||
			containsFold(p.Description, needle) ||
			containsFold(p.Brand, needle) ||
			containsFold(p.Category, needle) ||
			containsFold(p.Specs, needle) {
			out = append(out, p)
		}
	}
	return out
}

func containsFold(haystack, loweredNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), loweredNeedle)
}
