package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tontonphone/storefront-backend/pkg/db/models"
	pkgerrors "github.com/tontonphone/storefront-backend/pkg/errors"
)

// Service exposes read access to a user's order history.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
}

type orderReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

// ServiceParams groups dependencies for the orders service.
type ServiceParams struct {
	OrderRepo orderReader
}

type service struct {
	orders orderReader
}

// NewService builds an orders service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.OrderRepo == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	return &service{orders: params.OrderRepo}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	rows, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load orders")
	}

	dtos := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}
