package catalog

import (
	"context"
	"strconv"
	"strings"

	"github.com/aura-storefront/server/internal/shop/model"
	"github.com/aura-storefront/server/internal/shop/seed"
)

const shortDescriptionRunes = 100

// MockSource serves the bundled catalog in WooCommerce shape.
type MockSource struct{}

func (MockSource) Products(ctx context.Context) ([]model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := seed.Products()
	if err != nil {
		return nil, err
	}
	out := make([]model.Product, 0, len(raw))
	for _, p := range raw {
		out = append(out, fromSeed(p))
	}
	return out, nil
}

// Slugify lower-cases name and replaces spaces with dashes.
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

func fromSeed(p seed.Product) model.Product {
	short := p.ShortDescription
	if short == "" {
		short = excerpt(p.Description, shortDescriptionRunes)
	}

	images := make([]model.Image, 0, len(p.Gallery))
	for i, src := range p.Gallery {
		images = append(images, model.Image{ID: int64(i), Src: src, Name: p.Name})
	}
	if len(images) == 0 {
		images = []model.Image{{ID: 1, Src: p.Image, Name: p.Name}}
	}

	regular := p.Price
	if p.OriginalPrice > 0 {
		regular = p.OriginalPrice
	}

	return model.Product{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             Slugify(p.Name),
		Type:             "simple",
		Status:           "publish",
		Description:      "<p>" + p.Description + "</p>",
		ShortDescription: short,
		Price:            p.Price,
		RegularPrice:     regular,
		OnSale:           p.OriginalPrice > 0,
		Purchasable:      true,
		StockStatus:      model.StockInStock,
		Categories:       []model.Category{{ID: 1, Name: p.Category, Slug: strings.ToLower(p.Category)}},
		Tags:             []model.Category{},
		Images:           images,
		Attributes:       p.Attributes,
		RatingCount:      p.Reviews,
		AverageRating:    strconv.FormatFloat(p.Rating, 'f', -1, 64),

		Category:      p.Category,
		Image:         p.Image,
		Rating:        p.Rating,
		Reviews:       p.Reviews,
		ScarcityText:  p.ScarcityText,
		IsNew:         p.IsNew,
		IsBestSeller:  p.IsBestSeller,
		OriginalPrice: p.OriginalPrice,
	}
}

// excerpt keeps the first n runes of s and always marks the cut with "...",
// even when s is already shorter.
func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r) + "..."
}
