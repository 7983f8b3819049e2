// Package model holds the storefront's flat records. Field names follow the
// WooCommerce REST shape so live and bundled catalogs serialize the same way.
package model

// Category is a WooCommerce taxonomy term; tags share the same shape.
type Category struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Slug string `json:"slug" yaml:"slug"`
}

type Image struct {
	ID   int64  `json:"id" yaml:"id"`
	Src  string `json:"src" yaml:"src"`
	Name string `json:"name,omitempty" yaml:"name"`
	Alt  string `json:"alt,omitempty" yaml:"alt"`
}

// Attribute is a selectable product option such as size or colour.
type Attribute struct {
	ID        int64    `json:"id,omitempty" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Position  int      `json:"position,omitempty" yaml:"position"`
	Visible   bool     `json:"visible,omitempty" yaml:"visible"`
	Variation bool     `json:"variation,omitempty" yaml:"variation"`
	Options   []string `json:"options" yaml:"options"`
}

type Dimensions struct {
	Length string `json:"length"`
	Width  string `json:"width"`
	Height string `json:"height"`
}

const (
	StockInStock     = "instock"
	StockOutOfStock  = "outofstock"
	StockOnBackorder = "onbackorder"
)

// Product is a catalog entry. Prices are whole rupiah.
type Product struct {
	ID               int64       `json:"id"`
	Name             string      `json:"name"`
	Slug             string      `json:"slug"`
	Permalink        string      `json:"permalink,omitempty"`
	DateCreated      string      `json:"date_created,omitempty"`
	Type             string      `json:"type,omitempty"`
	Status           string      `json:"status,omitempty"`
	Featured         bool        `json:"featured,omitempty"`
	Description      string      `json:"description"`
	ShortDescription string      `json:"short_description"`
	SKU              string      `json:"sku,omitempty"`
	Price            int64       `json:"price"`
	RegularPrice     int64       `json:"regular_price,omitempty"`
	SalePrice        int64       `json:"sale_price,omitempty"`
	OnSale           bool        `json:"on_sale"`
	Purchasable      bool        `json:"purchasable,omitempty"`
	TotalSales       int         `json:"total_sales,omitempty"`
	StockQuantity    *int        `json:"stock_quantity,omitempty"`
	StockStatus      string      `json:"stock_status,omitempty"`
	Weight           string      `json:"weight,omitempty"`
	Dimensions       *Dimensions `json:"dimensions,omitempty"`
	Categories       []Category  `json:"categories,omitempty"`
	Tags             []Category  `json:"tags"`
	Images           []Image     `json:"images"`
	Attributes       []Attribute `json:"attributes,omitempty"`
	RatingCount      int         `json:"rating_count"`
	AverageRating    string      `json:"average_rating"`

	// Display helpers derived from the fields above.
	Category      string  `json:"category"`
	Image         string  `json:"image"`
	Rating        float64 `json:"rating"`
	Reviews       int     `json:"reviews"`
	ScarcityText  string  `json:"scarcity_text,omitempty"`
	IsNew         bool    `json:"is_new,omitempty"`
	IsBestSeller  bool    `json:"is_best_seller,omitempty"`
	OriginalPrice int64   `json:"original_price,omitempty"`
}

// InStock reports whether the product can be ordered. An empty stock status
// counts as in stock, matching catalogs that do not track inventory.
func (p Product) InStock() bool {
	return p.StockStatus == "" || p.StockStatus == StockInStock || p.StockStatus == StockOnBackorder
}
