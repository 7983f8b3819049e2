package catalog

import "github.com/aura-storefront/server/internal/shop/model"

// CategoryFashion is the category whose products get size and colour
// choices when the catalog supplies none.
const CategoryFashion = "Mode"

var defaultFashionAttributes = []model.Attribute{
	{Name: "Ukuran", Visible: true, Variation: true, Options: []string{"S", "M", "L", "XL"}},
	{Name: "Warna", Visible: true, Variation: true, Options: []string{"Hitam", "Putih", "Terracotta"}},
}

// WithDefaultAttributes fills in the fashion attributes for Mode products
// that have none.
func WithDefaultAttributes(p model.Product) model.Product {
	if len(p.Attributes) > 0 || p.Category != CategoryFashion {
		return p
	}
	attrs := make([]model.Attribute, len(defaultFashionAttributes))
	for i, a := range defaultFashionAttributes {
		a.Options = append([]string(nil), a.Options...)
		attrs[i] = a
	}
	p.Attributes = attrs
	return p
}

// DefaultSelection picks the first option of every attribute.
func DefaultSelection(p model.Product) map[string]string {
	if len(p.Attributes) == 0 {
		return nil
	}
	sel := make(map[string]string, len(p.Attributes))
	for _, a := range p.Attributes {
		if len(a.Options) > 0 {
			sel[a.Name] = a.Options[0]
		}
	}
	return sel
}
