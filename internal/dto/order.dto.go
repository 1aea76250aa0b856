package dto

import "time"

type OrderLineDTO struct {
	ItemID   string  `json:"item_id"`
	Item     string  `json:"item"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// OrderDTO is both the cart view and the order view. A cart that does not exist
// yet has no id and no lines.
type OrderDTO struct {
	ID        string         `json:"order_id,omitempty"`
	UserID    string         `json:"user_id,omitempty"`
	OutletID  string         `json:"outlet_id"`
	Status    string         `json:"status,omitempty"`
	Items     []OrderLineDTO `json:"items"`
	Total     float64        `json:"total"`
	CreatedAt *time.Time     `json:"created_at,omitempty"`
}
