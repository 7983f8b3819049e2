package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aura-storefront/server/internal/shop/model"
	logx "github.com/aura-storefront/server/pkg/logger"
)

const (
	productsPath       = "/wp-json/wc/v3/products"
	totalHeader        = "X-WP-Total"
	placeholderImage   = "placeholder.jpg"
	uncategorized      = "Uncategorized"
	maxErrorBodyLength = 512
)

// WooClient talks to the WooCommerce REST API v3.
type WooClient struct {
	baseURL string
	key     string
	secret  string
	http    *http.Client
}

func NewWooClient(cfg Config, hc *http.Client) *WooClient {
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &WooClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		key:     cfg.ConsumerKey,
		secret:  cfg.ConsumerSecret,
		http:    hc,
	}
}

// ProductPage is one page of published products plus the store-wide total
// reported in X-WP-Total.
type ProductPage struct {
	Products []model.Product
	Total    int
}

// FetchProducts requests one page of published products.
func (c *WooClient) FetchProducts(ctx context.Context, page, perPage int) (ProductPage, error) {
	q := url.Values{}
	q.Set("consumer_key", c.key)
	q.Set("consumer_secret", c.secret)
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("status", "publish")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+productsPath+"?"+q.Encode(), nil)
	if err != nil {
		return ProductPage{}, fmt.Errorf("build woocommerce request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return ProductPage{}, fmt.Errorf("woocommerce request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLength))
		return ProductPage{}, fmt.Errorf("woocommerce status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var raw []wcProduct
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return ProductPage{}, fmt.Errorf("decode woocommerce products: %w", err)
	}

	total, err := strconv.Atoi(strings.TrimSpace(resp.Header.Get(totalHeader)))
	if err != nil {
		total = 0
	}

	products := make([]model.Product, 0, len(raw))
	for _, p := range raw {
		products = append(products, p.toProduct())
	}
	return ProductPage{Products: products, Total: total}, nil
}

// WooSource pages through the whole published catalog.
type WooSource struct {
	client   *WooClient
	perPage  int
	maxPages int
}

func NewWooSource(client *WooClient, cfg Config) *WooSource {
	perPage := cfg.PerPage
	if perPage <= 0 || perPage > 100 {
		perPage = 100
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = 20
	}
	return &WooSource{client: client, perPage: perPage, maxPages: maxPages}
}

func (s *WooSource) Products(ctx context.Context) ([]model.Product, error) {
	var all []model.Product
	for page := 1; page <= s.maxPages; page++ {
		res, err := s.client.FetchProducts(ctx, page, s.perPage)
		if err != nil {
			return nil, err
		}
		all = append(all, res.Products...)
		if len(res.Products) == 0 || len(res.Products) < s.perPage || len(all) >= res.Total {
			return all, nil
		}
	}
	logx.Warn().Int("max_pages", s.maxPages).Int("fetched", len(all)).Msg("woocommerce catalog truncated at page limit")
	return all, nil
}

type wcProduct struct {
	ID               int64             `json:"id"`
	Name             string            `json:"name"`
	Slug             string            `json:"slug"`
	Permalink        string            `json:"permalink"`
	DateCreated      string            `json:"date_created"`
	Type             string            `json:"type"`
	Status           string            `json:"status"`
	Featured         bool              `json:"featured"`
	Description      string            `json:"description"`
	ShortDescription string            `json:"short_description"`
	SKU              string            `json:"sku"`
	Price            string            `json:"price"`
	RegularPrice     string            `json:"regular_price"`
	SalePrice        string            `json:"sale_price"`
	OnSale           bool              `json:"on_sale"`
	Purchasable      bool              `json:"purchasable"`
	TotalSales       flexInt           `json:"total_sales"`
	StockQuantity    *int              `json:"stock_quantity"`
	StockStatus      string            `json:"stock_status"`
	Weight           string            `json:"weight"`
	Dimensions       *model.Dimensions `json:"dimensions"`
	Categories       []model.Category  `json:"categories"`
	Tags             []model.Category  `json:"tags"`
	Images           []model.Image     `json:"images"`
	Attributes       []model.Attribute `json:"attributes"`
	AverageRating    string            `json:"average_rating"`
	RatingCount      int               `json:"rating_count"`
}

func (p wcProduct) toProduct() model.Product {
	image := placeholderImage
	if len(p.Images) > 0 && p.Images[0].Src != "" {
		image = p.Images[0].Src
	}
	category := uncategorized
	if len(p.Categories) > 0 && p.Categories[0].Name != "" {
		category = p.Categories[0].Name
	}
	tags := p.Tags
	if tags == nil {
		tags = []model.Category{}
	}
	images := p.Images
	if images == nil {
		images = []model.Image{}
	}
	regular := parsePrice(p.RegularPrice)
	price := parsePrice(p.Price)
	var original int64
	if p.OnSale && regular > price {
		original = regular
	}

	return model.Product{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		Permalink:        p.Permalink,
		DateCreated:      p.DateCreated,
		Type:             p.Type,
		Status:           p.Status,
		Featured:         p.Featured,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		SKU:              p.SKU,
		Price:            price,
		RegularPrice:     regular,
		SalePrice:        parsePrice(p.SalePrice),
		OnSale:           p.OnSale,
		Purchasable:      p.Purchasable,
		TotalSales:       int(p.TotalSales),
		StockQuantity:    p.StockQuantity,
		StockStatus:      p.StockStatus,
		Weight:           p.Weight,
		Dimensions:       p.Dimensions,
		Categories:       p.Categories,
		Tags:             tags,
		Images:           images,
		Attributes:       p.Attributes,
		RatingCount:      p.RatingCount,
		AverageRating:    p.AverageRating,

		Category:      category,
		Image:         image,
		Rating:        parseRating(p.AverageRating),
		Reviews:       p.RatingCount,
		OriginalPrice: original,
	}
}

// parsePrice keeps the whole-rupiah part of a WooCommerce decimal string.
func parsePrice(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(f)
}

func parseRating(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// flexInt accepts both JSON numbers and numeric strings; some WooCommerce
// versions quote counters.
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("flexInt %q: %w", s, err)
	}
	*f = flexInt(n)
	return nil
}
