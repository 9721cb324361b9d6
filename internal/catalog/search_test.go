package catalog

import (
	"testing"

	"github.com/tontonphone/storefront-backend/pkg/db/models"
)

func TestSearchProductsMatchesAllTextFields(t *testing.T) {
	products := []models.Product{
		{ID: "1", Name: "Acme One", Brand: "Acme", Category: "phones", Specs: "128GB 8GB RAM"},
		{ID: "2", Name: "SlateBook", Brand: "Nord", Category: "laptops", Description: "thin aluminium laptop"},
	}

	tests := []struct {
		query  string
		wantID string
	}{
		{"acme", "1"},
		{"8GB ram", "1"},
		{"PHONES", "1"},
		{"aluminium", "2"},
		{"slate", "2"},
	}

	for _, tt := range tests {
		got := SearchProducts(products, tt.query)
		if len(got) != 1 || got[0].ID != tt.wantID {
			t.Errorf("SearchProducts(%q) = %v, want product %s", tt.query, got, tt.wantID)
		}
	}
}

func TestSearchProductsBlankQuery(t *testing.T) {
	products := []models.Product{{ID: "1", Name: "Acme One"}}
	if got := SearchProducts(products, "   "); len(got) != 0 {
		t.Fatalf("expected no matches for blank query, got %v", got)
	}
}

func TestSearchProductsNoMatches(t *testing.T) {
	products := []models.Product{{ID: "1", Name: "Acme One"}}
	if got := SearchProducts(products, "console"); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}
