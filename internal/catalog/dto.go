package catalog

import (
	"github.com/tontonphone/storefront-backend/pkg/db/models"
)

// ProductDTO is the transport shape for one catalog listing.
type ProductDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Price       int    `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	Specs       string `json:"specs,omitempty"`
}

// FeedProduct mirrors one entry of the upstream products.json feed.
type FeedProduct struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Price       int    `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Specs       string `json:"specs"`
}

func FromModel(p *models.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		Price:       p.PriceDZD,
		Description: p.Description,
		Image:       p.ImageURL,
		Specs:       p.Specs,
	}
}

func (f FeedProduct) ToModel() *models.Product {
	return &models.Product{
		ID:          f.ID,
		Name:        f.Name,
		Brand:       f.Brand,
		Category:    f.Category,
		PriceDZD:    f.Price,
		Description: f.Description,
		ImageURL:    f.Image,
		Specs:       f.Specs,
	}
}
