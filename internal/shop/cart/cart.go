// Package cart implements the merge-by-key cart reducer, shipping rules and
// the Redis-backed per-session cart.
package cart

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	errx "github.com/aura-storefront/server/internal/core/error"
	"github.com/aura-storefront/server/internal/shop/model"
)

var ErrInvalidQuantity = errx.BadRequest(errors.New("cart: quantity must be positive"), "quantity must be at least 1")

// LineKey identifies a cart line: the product id plus the selected
// attributes in key order, e.g. "2|Ukuran=M|Warna=Hitam".
func LineKey(productID int64, attrs map[string]string) string {
	id := strconv.FormatInt(productID, 10)
	if len(attrs) == 0 {
		return id
	}
	names := make([]string, 0, len(attrs))
	for k := range attrs {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(id)
	for _, k := range names {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(attrs[k])
	}
	return b.String()
}

// Add merges qty of product into the line with the same key or appends a new
// line. The input slice is not modified.
func Add(items []model.CartItem, p model.Product, qty int, attrs map[string]string) ([]model.CartItem, error) {
	if qty <= 0 {
		return items, ErrInvalidQuantity
	}
	key := LineKey(p.ID, attrs)
	out := clone(items)
	for i := range out {
		if out[i].Key == key {
			out[i].Quantity += qty
			return out, nil
		}
	}

	var sel map[string]string
	if len(attrs) > 0 {
		sel = make(map[string]string, len(attrs))
		for k, v := range attrs {
			sel[k] = v
		}
	}
	return append(out, model.CartItem{Key: key, Product: p, Quantity: qty, SelectedAttributes: sel}), nil
}

// Remove drops the line with key. Unknown keys leave the cart unchanged.
func Remove(items []model.CartItem, key string) []model.CartItem {
	return filter(items, func(it model.CartItem) bool { return it.Key != key })
}

// RemoveProduct drops every line of productID.
func RemoveProduct(items []model.CartItem, productID int64) []model.CartItem {
	return filter(items, func(it model.CartItem) bool { return it.ID != productID })
}

// SetQuantity replaces the quantity of the line with key; qty <= 0 removes it.
func SetQuantity(items []model.CartItem, key string, qty int) []model.CartItem {
	if qty <= 0 {
		return Remove(items, key)
	}
	out := clone(items)
	for i := range out {
		if out[i].Key == key {
			out[i].Quantity = qty
		}
	}
	return out
}

func Subtotal(items []model.CartItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.LineTotal()
	}
	return sum
}

func Count(items []model.CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func clone(items []model.CartItem) []model.CartItem {
	out := make([]model.CartItem, len(items))
	copy(out, items)
	return out
}

func filter(items []model.CartItem, keep func(model.CartItem) bool) []model.CartItem {
	out := make([]model.CartItem, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
