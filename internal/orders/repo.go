package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tontonphone/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates order persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an order repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithItems persists the order and its lines inside the caller's
// transaction so checkout stays atomic with the cart wipe.
func (r *Repository) CreateWithItems(tx *gorm.DB, order *models.Order) error {
	return tx.Create(order).Error
}

// NumberExists reports whether an order already carries the given number.
func (r *Repository) NumberExists(ctx context.Context, number string) (bool, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Select("id").
		Where("number = ?", number).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListByUser returns the user's orders with their lines, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
