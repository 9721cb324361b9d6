package orders

import (
	"time"

	"github.com/tontonphone/storefront-backend/pkg/db/models"
)

// OrderItemDTO is one snapshotted line of a placed order.
type OrderItemDTO struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Brand     string `json:"brand"`
	UnitPrice int    `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal int    `json:"line_total"`
}

// OrderDTO is the client view of a placed order.
type OrderDTO struct {
	ID        string         `json:"id"`
	Number    string         `json:"number"`
	Subtotal  int            `json:"subtotal"`
	Shipping  int            `json:"shipping"`
	Total     int            `json:"total"`
	Status    string         `json:"status"`
	Items     []OrderItemDTO `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
}

// FromModel maps a persisted order, items included, to its client view.
func FromModel(order *models.Order) *OrderDTO {
	dto := &OrderDTO{
		ID:        order.ID.String(),
		Number:    order.Number,
		Subtotal:  order.SubtotalDZD,
		Shipping:  order.ShippingDZD,
		Total:     order.TotalDZD,
		Status:    order.Status,
		Items:     make([]OrderItemDTO, 0, len(order.Items)),
		CreatedAt: order.CreatedAt,
	}
	for _, item := range order.Items {
		dto.Items = append(dto.Items, OrderItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			Brand:     item.Brand,
			UnitPrice: item.UnitPriceDZD,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotalDZD,
		})
	}
	return dto
}
