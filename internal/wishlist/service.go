package wishlist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tontonphone/storefront-backend/pkg/db/models"
	pkgerrors "github.com/tontonphone/storefront-backend/pkg/errors"
	"gorm.io/gorm"
)

// ToggleRequest names the product whose wishlist membership should flip.
type ToggleRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// WishlistItemDTO is one saved product.
type WishlistItemDTO struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Price       int    `json:"price"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

// ToggleResultDTO reports the membership state after a toggle.
type ToggleResultDTO struct {
	ProductID string `json:"product_id"`
	Saved     bool   `json:"saved"`
	Count     int    `json:"count"`
}

// Service exposes business rules for wishlist management.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]WishlistItemDTO, error)
	Toggle(ctx context.Context, userID uuid.UUID, productID string) (*ToggleResultDTO, error)
}

type wishlistRepository interface {
	Has(ctx context.Context, userID uuid.UUID, productID string) (bool, error)
	AddItem(ctx context.Context, userID uuid.UUID, productID string) error
	RemoveItem(ctx context.Context, userID uuid.UUID, productID string) error
	ListWithProducts(ctx context.Context, userID uuid.UUID) ([]ItemWithProduct, error)
}

type productFinder interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
}

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	WishlistRepo wishlistRepository
	ProductRepo  productFinder
}

type service struct {
	wishlistRepo wishlistRepository
	products     productFinder
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.WishlistRepo == nil {
		return nil, fmt.Errorf("wishlist repository is required")
	}
	if params.ProductRepo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	return &service{
		wishlistRepo: params.WishlistRepo,
		products:     params.ProductRepo,
	}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]WishlistItemDTO, error) {
	rows, err := s.wishlistRepo.ListWithProducts(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load wishlist")
	}

	items := make([]WishlistItemDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, WishlistItemDTO{
			ProductID:   row.ProductID,
			Name:        row.Name,
			Brand:       row.Brand,
			Price:       row.PriceDZD,
			Image:       row.ImageURL,
			Description: row.Description,
		})
	}
	return items, nil
}

// Toggle flips the product's membership: present becomes absent and back.
// Two toggles in a row always restore the original state.
func (s *service) Toggle(ctx context.Context, userID uuid.UUID, productID string) (*ToggleResultDTO, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup product")
	}

	saved, err := s.wishlistRepo.Has(ctx, userID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check wishlist")
	}

	if saved {
		if err := s.wishlistRepo.RemoveItem(ctx, userID, productID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove wishlist entry")
		}
	} else {
		if err := s.wishlistRepo.AddItem(ctx, userID, productID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add wishlist entry")
		}
	}

	rows, err := s.wishlistRepo.ListWithProducts(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load wishlist")
	}

	return &ToggleResultDTO{
		ProductID: productID,
		Saved:     !saved,
		Count:     len(rows),
	}, nil
}
