package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	shopmodel "github.com/aura-storefront/server/internal/shop/model"
	"github.com/aura-storefront/server/internal/shop/security"
	"github.com/aura-storefront/server/pkg/money"
)

type GetProductDetailsInput struct {
	ProductID string `json:"product_id"`
}

type GetProductDetailsOutput struct {
	ProductSummary
	Description        string              `json:"description"`
	OriginalPriceLabel string              `json:"original_price_label,omitempty"`
	Reviews            int                 `json:"reviews"`
	Scarcity           string              `json:"scarcity,omitempty"`
	Options            map[string][]string `json:"options,omitempty"`
}

func createGetProductDetailsTool(c Catalog) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolGetProductDetails,
			Desc: "Get the full description, price, rating and selectable options (size, colour) of one product. Use it when the customer asks about fit, ingredients, materials or options.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {
					Type:     schema.String,
					Desc:     "Numeric id or slug from search_product results, e.g. 2 or the-structured-wool-coat.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *GetProductDetailsInput) (*GetProductDetailsOutput, error) {
			ref := strings.TrimSpace(in.ProductID)
			if ref == "" {
				return nil, fmt.Errorf("product_id is required")
			}

			var (
				p   shopmodel.Product
				err error
			)
			if id, convErr := strconv.ParseInt(ref, 10, 64); convErr == nil {
				p, err = c.ByID(ctx, id)
			} else {
				p, err = c.BySlug(ctx, ref)
			}
			if err != nil {
				return nil, fmt.Errorf("product %s: %w", ref, err)
			}

			out := &GetProductDetailsOutput{
				ProductSummary: summarize(p),
				Description:    security.PlainText(p.Description),
				Reviews:        p.Reviews,
				Scarcity:       p.ScarcityText,
			}
			if p.OriginalPrice > 0 {
				out.OriginalPriceLabel = money.FormatIDR(p.OriginalPrice)
			}
			if len(p.Attributes) > 0 {
				out.Options = make(map[string][]string, len(p.Attributes))
				for _, a := range p.Attributes {
					out.Options[a.Name] = a.Options
				}
			}
			return out, nil
		},
	)
}
