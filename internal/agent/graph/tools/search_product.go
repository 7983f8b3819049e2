package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/aura-storefront/server/internal/shop/catalog"
	shopmodel "github.com/aura-storefront/server/internal/shop/model"
	"github.com/aura-storefront/server/pkg/money"
)

const (
	defaultMaxResults = 5
	maxMaxResults     = 20
)

type SearchProductInput struct {
	Query      string `json:"query"`
	Category   string `json:"category,omitempty"`
	MaxResults int    `json:"max_results,omitempty"`
}

// ProductSummary is the compact product card returned to the model.
type ProductSummary struct {
	ID         int64   `json:"id"`
	Slug       string  `json:"slug"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Price      int64   `json:"price"`
	PriceLabel string  `json:"price_label"`
	OnSale     bool    `json:"on_sale,omitempty"`
	Rating     float64 `json:"rating"`
	InStock    bool    `json:"in_stock"`
}

type SearchProductOutput struct {
	Products []ProductSummary `json:"products"`
	Total    int              `json:"total"`
	Note     string           `json:"note,omitempty"`
}

func summarize(p shopmodel.Product) ProductSummary {
	return ProductSummary{
		ID:         p.ID,
		Slug:       p.Slug,
		Name:       p.Name,
		Category:   p.Category,
		Price:      p.Price,
		PriceLabel: money.FormatIDR(p.Price),
		OnSale:     p.OnSale,
		Rating:     p.Rating,
		InStock:    p.InStock(),
	}
}

func createSearchProductTool(c Catalog) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolSearchProduct,
			Desc: "Search the Aura catalog by keyword. Matches product names, categories (Mode, Kecantikan, Perhiasan) and descriptions. Returns id, name, price in rupiah and availability. Use it before recommending any product.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     schema.String,
					Desc:     "Plain keywords, e.g. serum, coat, gold hoops, lipstick.",
					Required: true,
				},
				"category": {
					Type: schema.String,
					Desc: "Optional category filter: Mode, Kecantikan or Perhiasan.",
				},
				"max_results": {
					Type: schema.Integer,
					Desc: "Maximum number of products to return (default 5, max 20).",
				},
			}),
		},
		func(ctx context.Context, in *SearchProductInput) (*SearchProductOutput, error) {
			query := strings.TrimSpace(in.Query)
			if query == "" {
				return nil, fmt.Errorf("query is required")
			}
			limit := in.MaxResults
			if limit <= 0 {
				limit = defaultMaxResults
			}
			if limit > maxMaxResults {
				limit = maxMaxResults
			}

			found, err := c.Search(ctx, query)
			if errors.Is(err, catalog.ErrInvalidQuery) {
				return &SearchProductOutput{Products: []ProductSummary{}, Note: "query must use letters, numbers and simple punctuation only"}, nil
			}
			if err != nil {
				return nil, err
			}

			out := &SearchProductOutput{Products: []ProductSummary{}}
			for _, p := range found {
				if in.Category != "" && !strings.EqualFold(p.Category, in.Category) {
					continue
				}
				out.Total++
				if len(out.Products) < limit {
					out.Products = append(out.Products, summarize(p))
				}
			}
			if out.Total == 0 {
				out.Note = "no matching products; offer general styling advice instead"
			}
			return out, nil
		},
	)
}
