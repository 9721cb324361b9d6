package models

import (
	"time"
)

// Product represents one catalog listing imported from the product feed.
// The feed assigns stable string IDs, so they are kept as the primary key.
// Specs stays a free-text sheet ("128GB 8GB RAM ...") because the feed
// publishes it that way; the filter engine matches it by substring.
type Product struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name;not null;index:products_name_idx"`
	Brand       string    `gorm:"column:brand;not null;index:products_brand_idx"`
	Category    string    `gorm:"column:category;not null;index:products_category_idx"`
	PriceDZD    int       `gorm:"column:price_dzd;not null"`
	Description string    `gorm:"column:description;not null"`
	ImageURL    string    `gorm:"column:image_url"`
	Specs       string    `gorm:"column:specs"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
