// Package seed carries the bundled catalog and journal used when no
// WooCommerce store is configured or reachable.
package seed

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aura-storefront/server/internal/shop/model"
)

//go:embed data/products.yaml
var productsYAML []byte

//go:embed data/posts.yaml
var postsYAML []byte

// Product is the compact authoring shape of a bundled product. The catalog
// expands it into the WooCommerce shape.
type Product struct {
	ID               int64             `yaml:"id"`
	Name             string            `yaml:"name"`
	Price            int64             `yaml:"price"`
	OriginalPrice    int64             `yaml:"original_price"`
	Category         string            `yaml:"category"`
	Image            string            `yaml:"image"`
	Gallery          []string          `yaml:"gallery"`
	Rating           float64           `yaml:"rating"`
	Reviews          int               `yaml:"reviews"`
	IsNew            bool              `yaml:"is_new"`
	IsBestSeller     bool              `yaml:"is_best_seller"`
	ScarcityText     string            `yaml:"scarcity_text"`
	Description      string            `yaml:"description"`
	ShortDescription string            `yaml:"short_description"`
	Attributes       []model.Attribute `yaml:"attributes"`
}

var (
	loadOnce sync.Once
	products []Product
	posts    []model.BlogPost
	loadErr  error
)

func load() {
	var pf struct {
		Products []Product `yaml:"products"`
	}
	if err := yaml.Unmarshal(productsYAML, &pf); err != nil {
		loadErr = fmt.Errorf("decode bundled products: %w", err)
		return
	}
	var bf struct {
		Posts []model.BlogPost `yaml:"posts"`
	}
	if err := yaml.Unmarshal(postsYAML, &bf); err != nil {
		loadErr = fmt.Errorf("decode bundled posts: %w", err)
		return
	}
	products, posts = pf.Products, bf.Posts
}

// Products returns a copy of the bundled products in authoring order.
func Products() ([]Product, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}
	out := make([]Product, len(products))
	copy(out, products)
	return out, nil
}

// Posts returns a copy of the bundled journal posts in authoring order.
func Posts() ([]model.BlogPost, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}
	out := make([]model.BlogPost, len(posts))
	copy(out, posts)
	return out, nil
}
