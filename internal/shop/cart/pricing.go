package cart

import (
	"github.com/aura-storefront/server/internal/shop/model"
	"github.com/aura-storefront/server/pkg/money"
)

const (
	FreeShippingThreshold int64 = 1_500_000
	FlatShippingCost      int64 = 20_000
)

// ShippingCost is free from FreeShippingThreshold upwards.
func ShippingCost(subtotal int64) int64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return FlatShippingCost
}

type Summary struct {
	Subtotal                 int64   `json:"subtotal"`
	Count                    int     `json:"count"`
	Shipping                 int64   `json:"shipping"`
	Total                    int64   `json:"total"`
	RemainingForFreeShipping int64   `json:"remaining_for_free_shipping"`
	FreeShippingProgress     float64 `json:"free_shipping_progress"`
	FreeShipping             bool    `json:"free_shipping"`
	Currency                 string  `json:"currency"`
	Display                  Display `json:"display"`
}

// Display carries the rupiah-formatted amounts shown next to the totals.
type Display struct {
	Subtotal string `json:"subtotal"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
}

func Summarize(items []model.CartItem) Summary {
	subtotal := Subtotal(items)
	shipping := ShippingCost(subtotal)

	remaining := FreeShippingThreshold - subtotal
	if remaining < 0 {
		remaining = 0
	}
	progress := float64(subtotal) / float64(FreeShippingThreshold) * 100
	if progress > 100 {
		progress = 100
	}

	return Summary{
		Subtotal:                 subtotal,
		Count:                    Count(items),
		Shipping:                 shipping,
		Total:                    subtotal + shipping,
		RemainingForFreeShipping: remaining,
		FreeShippingProgress:     progress,
		FreeShipping:             shipping == 0,
		Currency:                 model.CurrencyIDR,
		Display: Display{
			Subtotal: money.FormatIDR(subtotal),
			Shipping: money.FormatIDR(shipping),
			Total:    money.FormatIDR(subtotal + shipping),
		},
	}
}
