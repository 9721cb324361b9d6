package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/tontonphone/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// ItemWithProduct joins a cart line with the product it references.
type ItemWithProduct struct {
	ProductID   string `gorm:"column:product_id"`
	Name        string `gorm:"column:name"`
	Brand       string `gorm:"column:brand"`
	PriceDZD    int    `gorm:"column:price_dzd"`
	ImageURL    string `gorm:"column:image_url"`
	Description string `gorm:"column:description"`
	Quantity    int    `gorm:"column:quantity"`
}

// Repository encapsulates cart persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindItem returns the user's cart line for a product, if any.
func (r *Repository) FindItem(ctx context.Context, userID uuid.UUID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts a new cart line.
func (r *Repository) CreateItem(ctx context.Context, userID uuid.UUID, productID string, quantity int) error {
	item := models.CartItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	return r.db.WithContext(ctx).Create(&item).Error
}

// UpdateQuantity overwrites the quantity of an existing line.
func (r *Repository) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID string, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		UpdateColumn("quantity", quantity).Error
}

// DeleteItem removes a cart line; deleting an absent line is a no-op.
func (r *Repository) DeleteItem(ctx context.Context, userID uuid.UUID, productID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{}).Error
}

// Clear drops every line in the user's cart.
func (r *Repository) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}

// ClearTx drops every line in the user's cart inside an open transaction.
func (r *Repository) ClearTx(tx *gorm.DB, userID uuid.UUID) error {
	return tx.
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}

// ListWithProducts returns the user's cart joined with product details,
// oldest line first.
func (r *Repository) ListWithProducts(ctx context.Context, userID uuid.UUID) ([]ItemWithProduct, error) {
	var rows []ItemWithProduct
	err := r.db.WithContext(ctx).
		Table("cart_items ci").
		Select("ci.product_id, p.name, p.brand, p.price_dzd, p.image_url, p.description, ci.quantity").
		Joins("JOIN products p ON p.id = ci.product_id").
		Where("ci.user_id = ?", userID).
		Order("ci.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
