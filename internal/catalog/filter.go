package catalog

import (
	"strings"

	"github.com/tontonphone/storefront-backend/pkg/db/models"
)

// Filters holds the predicate groups a shopper can activate. Brand is an
// equality match, MaxPrice an inclusive ceiling (nil means no ceiling; an
// explicit 0 excludes everything priced above zero). The remaining groups
// are substring sets matched against the free-text specs sheet.
type Filters struct {
	Brand     string
	MaxPrice  *int
	Storage   []string
	RAM       []string
	OS        []string
	Processor []string
}

// Active reports whether any predicate group is set.
func (f Filters) Active() bool {
	return f.Brand != "" || f.MaxPrice != nil ||
		len(f.Storage) > 0 || len(f.RAM) > 0 || len(f.OS) > 0 || len(f.Processor) > 0
}

// FilterSections names the predicate groups visible for a category.
type FilterSections struct {
	Storage   bool `json:"storage"`
	RAM       bool `json:"ram"`
	OS        bool `json:"os"`
	Processor bool `json:"processor"`
}

// SectionsForCategory returns which predicate groups make sense for the
// given category. Brand and price ceiling apply everywhere.
func SectionsForCategory(category string) FilterSections {
	switch strings.ToLower(category) {
	case "phones", "tablets":
		return FilterSections{Storage: true, RAM: true, OS: true}
	case "laptops":
		return FilterSections{Storage: true, RAM: true, OS: true, Processor: true}
	case "consoles":
		return FilterSections{Storage: true}
	default:
		return FilterSections{}
	}
}

// ApplyFilters narrows products to those passing every active predicate
// group. Within a group the options are OR-combined; groups themselves are
// AND-combined. With no active predicates the input is returned unchanged.
func ApplyFilters(products []models.Product, f Filters) []models.Product {
	if !f.Active() {
		return products
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matchesFilters(p, f) {
			out = append(out, p)
		}
	}
	return out
}

func matchesFilters(p models.Product, f Filters) bool {
	if f.Brand != "" && !strings.EqualFold(p.Brand, f.Brand) {
		return false
	}
	if f.MaxPrice != nil && p.PriceDZD > *f.MaxPrice {
		return false
	}
	if len(f.Storage) > 0 && !anySubstring(f.Storage, p.Specs) {
		return false
	}
	if len(f.RAM) > 0 && !anySubstring(f.RAM, p.Specs) {
		return false
	}
	// OS and processor labels sometimes only appear in the description.
	if len(f.OS) > 0 && !anySubstring(f.OS, p.Specs, p.Description) {
		return false
	}
	if len(f.Processor) > 0 && !anySubstring(f.Processor, p.Specs, p.Description) {
		return false
	}
	return true
}

func anySubstring(options []string, haystacks ...string) bool {
	lowered := make([]string, 0, len(haystacks))
	for _, h := range haystacks {
		lowered = append(lowered, strings.ToLower(h))
	}
	for _, option := range options {
		needle := strings.ToLower(strings.TrimSpace(option))
		if needle == "" {
			continue
		}
		for _, h := range lowered {
			if strings.Contains(h, needle) {
				return true
			}
		}
	}
	return false
}
