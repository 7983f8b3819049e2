package model

import "time"

type OrderStatus string

const (
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
	OrderOnHold     OrderStatus = "on-hold"
	OrderPending    OrderStatus = "pending"
	OrderShipped    OrderStatus = "shipped"
)

const CurrencyIDR = "IDR"

type Billing struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address1  string `json:"address_1"`
	City      string `json:"city"`
	Postcode  string `json:"postcode"`
}

type Order struct {
	ID        string      `json:"id"`
	Number    int64       `json:"number"`
	UserID    string      `json:"user_id,omitempty"`
	Date      time.Time   `json:"date"`
	Status    OrderStatus `json:"status"`
	Subtotal  int64       `json:"subtotal"`
	Shipping  int64       `json:"shipping"`
	Total     int64       `json:"total"`
	Currency  string      `json:"currency"`
	Billing   *Billing    `json:"billing,omitempty"`
	Items     []CartItem  `json:"items"`
	PaymentBy string      `json:"payment_method,omitempty"`
}
