package model

import "time"

// CartItem is one cart line: a product snapshot plus the chosen quantity and
// attribute selection. Key identifies the line inside its cart.
type CartItem struct {
	Key string `json:"key"`
	Product
	Quantity           int               `json:"quantity"`
	SelectedAttributes map[string]string `json:"selected_attributes,omitempty"`
}

// LineTotal is price times quantity.
func (i CartItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}
