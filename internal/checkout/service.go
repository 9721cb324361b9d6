package checkout

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/tontonphone/storefront-backend/internal/cart"
	"github.com/tontonphone/storefront-backend/internal/orders"
	"github.com/tontonphone/storefront-backend/pkg/config"
	"github.com/tontonphone/storefront-backend/pkg/db/models"
	pkgerrors "github.com/tontonphone/storefront-backend/pkg/errors"
	"gorm.io/gorm"
)

const numberAttempts = 5

// Service turns the current cart into an order.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID) (*orders.OrderDTO, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartStore interface {
	ListWithProducts(ctx context.Context, userID uuid.UUID) ([]cart.ItemWithProduct, error)
	ClearTx(tx *gorm.DB, userID uuid.UUID) error
}

type orderStore interface {
	CreateWithItems(tx *gorm.DB, order *models.Order) error
	NumberExists(ctx context.Context, number string) (bool, error)
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	DB         txRunner
	CartRepo   cartStore
	OrderRepo  orderStore
	CartConfig config.CartConfig

	// Now and RandInt exist for deterministic tests; leave nil in production.
	Now     func() time.Time
	RandInt func(n int) int
}

type service struct {
	db      txRunner
	cart    cartStore
	orders  orderStore
	cfg     config.CartConfig
	now     func() time.Time
	randInt func(n int) int
}

// NewService builds a checkout service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if params.CartRepo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.OrderRepo == nil {
		return nil, fmt.Errorf("order repository is required")
	}

	now := params.Now
	if now == nil {
		now = time.Now
	}
	randInt := params.RandInt
	if randInt == nil {
		randInt = rand.IntN
	}

	return &service{
		db:      params.DB,
		cart:    params.CartRepo,
		orders:  params.OrderRepo,
		cfg:     params.CartConfig,
		now:     now,
		randInt: randInt,
	}, nil
}

// Checkout snapshots the cart into an order and empties the cart in one
// transaction. Either both happen or neither does.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID) (*orders.OrderDTO, error) {
	rows, err := s.cart.ListWithProducts(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	number, err := s.pickNumber(ctx)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:     uuid.New(),
		UserID: userID,
		Number: number,
		Status: models.OrderStatusProcessing,
		Items:  make([]models.OrderItem, 0, len(rows)),
	}
	for _, row := range rows {
		lineTotal := row.PriceDZD * row.Quantity
		order.SubtotalDZD += lineTotal
		order.Items = append(order.Items, models.OrderItem{
			ID:           uuid.New(),
			OrderID:      order.ID,
			ProductID:    row.ProductID,
			Name:         row.Name,
			Brand:        row.Brand,
			UnitPriceDZD: row.PriceDZD,
			Quantity:     row.Quantity,
			LineTotalDZD: lineTotal,
		})
	}
	order.ShippingDZD = cart.ShippingFor(order.SubtotalDZD, s.cfg)
	order.TotalDZD = order.SubtotalDZD + order.ShippingDZD

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.orders.CreateWithItems(tx, order); err != nil {
			return fmt.Errorf("persist order: %w", err)
		}
		if err := s.cart.ClearTx(tx, userID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checkout transaction")
	}

	return orders.FromModel(order), nil
}

// pickNumber draws "#ORD-<year>-<4 digits>" numbers until one is free. The
// unique index on orders.number still backstops a race between two checkouts.
func (s *service) pickNumber(ctx context.Context) (string, error) {
	year := s.now().UTC().Year()
	for i := 0; i < numberAttempts; i++ {
		number := fmt.Sprintf("#ORD-%d-%04d", year, 1000+s.randInt(9000))
		taken, err := s.orders.NumberExists(ctx, number)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check order number")
		}
		if !taken {
			return number, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeInternal, "could not allocate order number")
}
