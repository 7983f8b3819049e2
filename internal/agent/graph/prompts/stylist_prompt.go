package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/aura-storefront/server/internal/agent/graph/tools"
	"github.com/aura-storefront/server/internal/agent/model"
	"github.com/aura-storefront/server/internal/shop/cart"
	"github.com/aura-storefront/server/pkg/money"
)

//go:embed template/stylist_prompt.txt
var stylistSystemPrompt string

// RenderStylistSystem renders the persona prompt through the Eino prompt
// component so prompt callbacks fire.
func RenderStylistSystem(ctx context.Context, persona model.PersonaConfig) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(stylistSystemPrompt),
	)
	vars := map[string]any{
		"Name":         persona.Name,
		"BrandName":    persona.BrandName,
		"Language":     persona.Language,
		"SearchTool":   tools.ToolSearchProduct,
		"DetailsTool":  tools.ToolGetProductDetails,
		"FreeShipping": money.FormatIDR(cart.FreeShippingThreshold),
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("stylist prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("stylist prompt render: empty result")
	}
	return msgs[0].Content, nil
}

// UserMessage frames an escaped query with the product the customer is
// viewing, if any.
func UserMessage(query, productContext string) string {
	if productContext == "" {
		return "User asks: " + query
	}
	return fmt.Sprintf("Context: User is looking at product %q. User asks: %s", productContext, query)
}
