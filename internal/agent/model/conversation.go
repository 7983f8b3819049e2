package model

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// ConversationRepository persists stylist chat transcripts.
type ConversationRepository interface {
	// AddMessage appends message and refreshes the conversation TTL.
	AddMessage(ctx context.Context, conversationID string, message *schema.Message) error

	// LoadHistory returns the stored transcript, oldest first. Unknown
	// conversations load as empty.
	LoadHistory(ctx context.Context, conversationID string) (*ConversationHistory, error)

	ClearHistory(ctx context.Context, conversationID string) error

	MessageCount(ctx context.Context, conversationID string) (int, error)
}

type ConversationHistory struct {
	ConversationID string
	Messages       []*schema.Message
}
