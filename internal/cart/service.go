package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tontonphone/storefront-backend/pkg/config"
	"github.com/tontonphone/storefront-backend/pkg/db/models"
	pkgerrors "github.com/tontonphone/storefront-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes business rules for cart management.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	AddItem(ctx context.Context, userID uuid.UUID, productID string, quantity int) (*CartDTO, error)
	SetQuantity(ctx context.Context, userID uuid.UUID, productID string, quantity int) (*CartDTO, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, productID string) (*CartDTO, error)
}

type cartRepository interface {
	FindItem(ctx context.Context, userID uuid.UUID, productID string) (*models.CartItem, error)
	CreateItem(ctx context.Context, userID uuid.UUID, productID string, quantity int) error
	UpdateQuantity(ctx context.Context, userID uuid.UUID, productID string, quantity int) error
	DeleteItem(ctx context.Context, userID uuid.UUID, productID string) error
	ListWithProducts(ctx context.Context, userID uuid.UUID) ([]ItemWithProduct, error)
}

type productFinder interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	CartRepo    cartRepository
	ProductRepo productFinder
	CartConfig  config.CartConfig
}

type service struct {
	cartRepo cartRepository
	products productFinder
	cfg      config.CartConfig
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CartRepo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.ProductRepo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	return &service{
		cartRepo: params.CartRepo,
		products: params.ProductRepo,
		cfg:      params.CartConfig,
	}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	return s.buildCart(ctx, userID)
}

// AddItem upserts by product id: adding a product already in the cart bumps
// the quantity of the existing line instead of duplicating it.
func (s *service) AddItem(ctx context.Context, userID uuid.UUID, productID string, quantity int) (*CartDTO, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	quantity = clampQuantity(quantity)

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup product")
	}

	existing, err := s.cartRepo.FindItem(ctx, userID, productID)
	switch {
	case err == nil:
		if err := s.cartRepo.UpdateQuantity(ctx, userID, productID, existing.Quantity+quantity); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "bump cart quantity")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.cartRepo.CreateItem(ctx, userID, productID, quantity); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart line")
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup cart line")
	}

	return s.buildCart(ctx, userID)
}

// SetQuantity overwrites a line's quantity, clamping anything below 1 up to
// 1. Setting the quantity of a product not in the cart is a no-op.
func (s *service) SetQuantity(ctx context.Context, userID uuid.UUID, productID string, quantity int) (*CartDTO, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	quantity = clampQuantity(quantity)

	if _, err := s.cartRepo.FindItem(ctx, userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.buildCart(ctx, userID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup cart line")
	}

	if err := s.cartRepo.UpdateQuantity(ctx, userID, productID, quantity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "set cart quantity")
	}
	return s.buildCart(ctx, userID)
}

// RemoveItem deletes a line; removing an absent product is a no-op.
func (s *service) RemoveItem(ctx context.Context, userID uuid.UUID, productID string) (*CartDTO, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := s.cartRepo.DeleteItem(ctx, userID, productID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart line")
	}
	return s.buildCart(ctx, userID)
}

func (s *service) buildCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	rows, err := s.cartRepo.ListWithProducts(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}

	dto := &CartDTO{Items: make([]CartItemDTO, 0, len(rows))}
	for _, row := range rows {
		line := CartItemDTO{
			ProductID:   row.ProductID,
			Name:        row.Name,
			Brand:       row.Brand,
			Price:       row.PriceDZD,
			Image:       row.ImageURL,
			Description: row.Description,
			Quantity:    row.Quantity,
			LineTotal:   row.PriceDZD * row.Quantity,
		}
		dto.Items = append(dto.Items, line)
		dto.ItemCount += row.Quantity
		dto.Subtotal += line.LineTotal
	}

	dto.Shipping = ShippingFor(dto.Subtotal, s.cfg)
	dto.Total = dto.Subtotal + dto.Shipping
	return dto, nil
}

// ShippingFor applies the flat-rate shipping rule: free at or above the
// threshold, free for an empty cart, flat rate otherwise.
func ShippingFor(subtotal int, cfg config.CartConfig) int {
	if subtotal <= 0 {
		return 0
	}
	if subtotal >= cfg.FreeShippingOverDZD {
		return 0
	}
	return cfg.ShippingFlatDZD
}

func clampQuantity(quantity int) int {
	if quantity < 1 {
		return 1
	}
	return quantity
}
