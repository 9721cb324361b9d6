package cart

// AddItemRequest is the payload for adding a product to the cart. A missing
// or non-positive quantity is clamped to 1 by the service.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// UpdateQuantityRequest overwrites a cart line's quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemDTO is one cart line joined with its product snapshot.
type CartItemDTO struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Price       int    `json:"price"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
	Quantity    int    `json:"quantity"`
	LineTotal   int    `json:"line_total"`
}

// CartDTO is the full cart view with derived totals. ItemCount sums
// quantities rather than counting rows.
type CartDTO struct {
	Items     []CartItemDTO `json:"items"`
	ItemCount int           `json:"item_count"`
	Subtotal  int           `json:"subtotal"`
	Shipping  int           `json:"shipping"`
	Total     int           `json:"total"`
}
