package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatusProcessing is the status every new order starts in.
const OrderStatusProcessing = "processing"

// Order is an immutable snapshot of a checked-out cart.
type Order struct {
	ID          uuid.UUID   `gorm:"column:id;type:uuid;primaryKey"`
	UserID      uuid.UUID   `gorm:"column:user_id;type:uuid;not null;index:orders_user_id_idx"`
	Number      string      `gorm:"column:number;not null;uniqueIndex"`
	SubtotalDZD int         `gorm:"column:subtotal_dzd;not null"`
	ShippingDZD int         `gorm:"column:shipping_dzd;not null"`
	TotalDZD    int         `gorm:"column:total_dzd;not null"`
	Status      string      `gorm:"column:status;not null;default:'processing'"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time   `gorm:"column:created_at;autoCreateTime"`
}

// OrderItem freezes the product details and unit price at checkout time.
type OrderItem struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"column:order_id;type:uuid;not null;index:order_items_order_id_idx"`
	ProductID    string    `gorm:"column:product_id;not null"`
	Name         string    `gorm:"column:name;not null"`
	Brand        string    `gorm:"column:brand;not null"`
	UnitPriceDZD int       `gorm:"column:unit_price_dzd;not null"`
	Quantity     int       `gorm:"column:quantity;not null"`
	LineTotalDZD int       `gorm:"column:line_total_dzd;not null"`
}
