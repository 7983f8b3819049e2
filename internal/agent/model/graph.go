package model

import (
	"github.com/cloudwego/eino/schema"
)

// AppState stores per-invocation state for the Eino Graph.
// It is registered via compose.WithGenLocalState and only touched inside
// state handlers or compose.ProcessState, which serialize access.
type AppState struct {
	ConversationID       string
	History              []*schema.Message
	ToolCallCount        int
	ToolCallLimitReached bool
	ToolCallIDSeq        int // synthesizes tool_call_id when the provider omits one

	TotalCostUSD float64
}

// QueryInput is one stylist question. Query and ProductContext must already
// be escaped for prompt embedding.
type QueryInput struct {
	ConversationID string `json:"conversation_id"`
	Query          string `json:"query"`
	ProductContext string `json:"product_context,omitempty"`
}

// QueryOutput is the stylist's final answer for one query.
type QueryOutput struct {
	Content string  `json:"content"`
	CostUSD float64 `json:"cost_usd"`
}
