package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	shopmodel "github.com/aura-storefront/server/internal/shop/model"
)

const (
	ToolSearchProduct     = "search_product"
	ToolGetProductDetails = "get_product_details"
)

// Catalog is the product lookup the stylist tools run against.
type Catalog interface {
	Search(ctx context.Context, q string) ([]shopmodel.Product, error)
	ByID(ctx context.Context, id int64) (shopmodel.Product, error)
	BySlug(ctx context.Context, slug string) (shopmodel.Product, error)
}

// GetQueryTools returns the tools bound to the stylist model.
func GetQueryTools(catalog Catalog) []tool.BaseTool {
	return []tool.BaseTool{
		createSearchProductTool(catalog),
		createGetProductDetailsTool(catalog),
	}
}

// GetToolInfos collects the schema of every tool for BindTools.
func GetToolInfos(ctx context.Context, ts []tool.BaseTool) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(ts))
	for _, t := range ts {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}
