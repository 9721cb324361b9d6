package catalog

import (
	"testing"

	"github.com/tontonphone/storefront-backend/pkg/db/models"
)

func samplePhones() []models.Product {
	return []models.Product{
		{
			ID:       "1",
			Name:     "Acme One",
			Category: "phones",
			Brand:    "Acme",
			PriceDZD: 20000,
			Specs:    "128GB 8GB RAM",
		},
		{
			ID:          "2",
			Name:        "Nord Max",
			Category:    "phones",
			Brand:       "Nord",
			PriceDZD:    30000,
			Specs:       "256GB 12GB RAM",
			Description: "Android flagship",
		},
	}
}

func TestApplyFiltersNoPredicatesIsIdentity(t *testing.T) {
	products := samplePhones()
	got := ApplyFilters(products, Filters{})
	if len(got) != len(products) {
		t.Fatalf("expected identity with no predicates, got %d of %d", len(got), len(products))
	}
	for i := range got {
		if got[i].ID != products[i].ID {
			t.Fatalf("expected same order, got %s at %d", got[i].ID, i)
		}
	}
}

func TestApplyFiltersBrandPriceStorage(t *testing.T) {
	products := samplePhones()
	maxPrice := 25000

	got := ApplyFilters(products, Filters{
		Brand:    "Acme",
		MaxPrice: &maxPrice,
		Storage:  []string{"128GB"},
	})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected product 1, got %v", got)
	}

	got = ApplyFilters(products, Filters{Storage: []string{"512GB"}})
	if len(got) != 0 {
		t.Fatalf("expected empty result for missing storage, got %v", got)
	}
}

func TestApplyFiltersOrWithinGroupAndAcrossGroups(t *testing.T) {
	products := samplePhones()

	// Either storage option is enough within a group.
	got := ApplyFilters(products, Filters{Storage: []string{"512GB", "256GB"}})
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("expected OR within storage group to match product 2, got %v", got)
	}

	// Groups are ANDed: matching storage but wrong brand excludes.
	got = ApplyFilters(products, Filters{Brand: "Acme", Storage: []string{"256GB"}})
	if len(got) != 0 {
		t.Fatalf("expected AND across groups to exclude everything, got %v", got)
	}
}

func TestApplyFiltersCaseInsensitive(t *testing.T) {
	products := samplePhones()
	got := ApplyFilters(products, Filters{Storage: []string{"128gb"}})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected case-insensitive match, got %v", got)
	}
}

func TestApplyFiltersZeroCeilingIsActive(t *testing.T) {
	products := samplePhones()
	zero := 0
	got := ApplyFilters(products, Filters{MaxPrice: &zero})
	if len(got) != 0 {
		t.Fatalf("expected a 0 ceiling to exclude priced products, got %v", got)
	}
}

func TestApplyFiltersOSMatchesDescription(t *testing.T) {
	products := samplePhones()
	got := ApplyFilters(products, Filters{OS: []string{"Android"}})
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("expected OS to match against description, got %v", got)
	}
}

func TestSectionsForCategory(t *testing.T) {
	tests := []struct {
		category string
		want     FilterSections
	}{
		{"phones", FilterSections{Storage: true, RAM: true, OS: true}},
		{"tablets", FilterSections{Storage: true, RAM: true, OS: true}},
		{"laptops", FilterSections{Storage: true, RAM: true, OS: true, Processor: true}},
		{"consoles", FilterSections{Storage: true}},
		{"accessories", FilterSections{}},
		{"Phones", FilterSections{Storage: true, RAM: true, OS: true}},
	}

	for _, tt := range tests {
		if got := SectionsForCategory(tt.category); got != tt.want {
			t.Errorf("SectionsForCategory(%q) = %+v, want %+v", tt.category, got, tt.want)
		}
	}
}
