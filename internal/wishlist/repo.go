package wishlist

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tontonphone/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// ItemWithProduct joins a wishlist row with the product it references.
type ItemWithProduct struct {
	ProductID   string `gorm:"column:product_id"`
	Name        string `gorm:"column:name"`
	Brand       string `gorm:"column:brand"`
	PriceDZD    int    `gorm:"column:price_dzd"`
	ImageURL    string `gorm:"column:image_url"`
	Description string `gorm:"column:description"`
}

// Repository encapsulates wishlist persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Has reports whether the user has saved the product.
func (r *Repository) Has(ctx context.Context, userID uuid.UUID, productID string) (bool, error) {
	var item models.WishlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// AddItem inserts a wishlist entry and ignores duplicates.
func (r *Repository) AddItem(ctx context.Context, userID uuid.UUID, productID string) error {
	return r.db.WithContext(ctx).
		Exec(`INSERT INTO wishlist_items (id, user_id, product_id) VALUES (?, ?, ?) ON CONFLICT (user_id, product_id) DO NOTHING`,
			uuid.New(), userID, productID).
		Error
}

// RemoveItem deletes the user-product entry if it exists.
func (r *Repository) RemoveItem(ctx context.Context, userID uuid.UUID, productID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{}).
		Error
}

// ListWithProducts returns the user's saved products, oldest first.
func (r *Repository) ListWithProducts(ctx context.Context, userID uuid.UUID) ([]ItemWithProduct, error) {
	var rows []ItemWithProduct
	err := r.db.WithContext(ctx).
		Table("wishlist_items wi").
		Select("wi.product_id, p.name, p.brand, p.price_dzd, p.image_url, p.description").
		Joins("JOIN products p ON p.id = wi.product_id").
		Where("wi.user_id = ?", userID).
		Order("wi.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
