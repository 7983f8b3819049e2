package conversations

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"github.com/aura-storefront/server/internal/agent/model"
)

// MessagesManager turns stored transcripts into model context.
type MessagesManager struct {
	conversationRepo model.ConversationRepository
	maxTurns         int
}

func NewMessagesManager(conversationRepo model.ConversationRepository, config model.ConversationConfig) *MessagesManager {
	return &MessagesManager{
		conversationRepo: conversationRepo,
		maxTurns:         config.MaxTurns,
	}
}

// SaveUserMessage appends the customer's prompt line to the transcript.
func (cm *MessagesManager) SaveUserMessage(ctx context.Context, conversationID, content string) error {
	return cm.conversationRepo.AddMessage(ctx, conversationID, schema.UserMessage(content))
}

// BuildResponseContext returns the system prompt followed by the most recent
// user and assistant turns.
func (cm *MessagesManager) BuildResponseContext(ctx context.Context, conversationID string, systemPrompt string) ([]*schema.Message, error) {
	history, err := cm.conversationRepo.LoadHistory(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	recent := trimTail(dialogue(history.Messages), cm.maxTurns)
	messages := make([]*schema.Message, 0, len(recent)+1)
	messages = append(messages, schema.SystemMessage(systemPrompt))
	return append(messages, recent...), nil
}

func (cm *MessagesManager) SaveResponse(ctx context.Context, conversationID string, content string) error {
	return cm.conversationRepo.AddMessage(ctx, conversationID, schema.AssistantMessage(content, nil))
}

// dialogue keeps non-empty user and assistant messages.
func dialogue(messages []*schema.Message) []*schema.Message {
	out := make([]*schema.Message, 0, len(messages))
	for _, m := range messages {
		if m == nil || m.Content == "" {
			continue
		}
		if m.Role == schema.User || m.Role == schema.Assistant {
			out = append(out, m)
		}
	}
	return out
}

func trimTail(messages []*schema.Message, maxTurns int) []*schema.Message {
	if maxTurns <= 0 || len(messages) <= maxTurns {
		return messages
	}
	return messages[len(messages)-maxTurns:]
}
