package catalog

import (
	"context"

	"github.com/tontonphone/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsulates catalog persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns products, optionally narrowed by category equality.
func (r *Repository) List(ctx context.Context, category string) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{}).Order("name ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID loads one product by its feed identifier.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDs loads the products matching the given feed identifiers.
func (r *Repository) FindByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Brands returns the distinct brand vocabulary, optionally per category.
func (r *Repository) Brands(ctx context.Context, category string) ([]string, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{}).Distinct("brand").Order("brand ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var brands []string
	if err := query.Pluck("brand", &brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

// UpsertAll writes the feed snapshot, replacing fields of existing rows.
func (r *Repository) UpsertAll(ctx context.Context, products []*models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "brand", "category", "price_dzd", "description", "image_url", "specs", "updated_at"}),
		}).
		Create(products).Error
}
