package stylist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/aura-storefront/server/internal/agent/graph"
	"github.com/aura-storefront/server/internal/agent/model"
	errx "github.com/aura-storefront/server/internal/core/error"
	"github.com/aura-storefront/server/internal/shop/security"
	logx "github.com/aura-storefront/server/pkg/logger"
)

const (
	OfflineMessage    = "I'm currently offline (API Key missing). Please check back later!"
	TroubleMessage    = "I'm having trouble connecting to the fashion network right now. Please try again."
	ReflectionMessage = "I'm having a moment of reflection. Could you ask that again?"

	defaultMaxQueryRunes = 500
)

var ErrEmptyQuery = errx.BadRequest(errors.New("stylist: empty query"), "query must not be empty")

// Request is one chat message from the storefront.
type Request struct {
	ConversationID string `json:"conversation_id"`
	Query          string `json:"query"`
	ProductContext string `json:"product_context,omitempty"`
}

// Reply is what the chat widget renders.
type Reply struct {
	ConversationID string  `json:"conversation_id"`
	Message        string  `json:"message"`
	Offline        bool    `json:"offline,omitempty"`
	CostUSD        float64 `json:"cost_usd,omitempty"`
}

// Service fronts the stylist graph. A nil runner means no API key was
// configured and every question gets the offline reply.
type Service struct {
	runner  graph.Runner
	persona model.PersonaConfig
}

func NewService(runner graph.Runner, persona model.PersonaConfig) *Service {
	if persona.Name == "" {
		persona.Name = "Aura"
	}
	if persona.MaxQueryRunes <= 0 {
		persona.MaxQueryRunes = defaultMaxQueryRunes
	}
	return &Service{runner: runner, persona: persona}
}

// Online reports whether a model is wired.
func (s *Service) Online() bool {
	return s.runner != nil
}

// Ask answers one question. Model failures are turned into a friendly reply;
// only a blank query is an error.
func (s *Service) Ask(ctx context.Context, req Request) (Reply, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return Reply{}, ErrEmptyQuery
	}

	convID := strings.TrimSpace(req.ConversationID)
	if convID == "" {
		convID = uuid.NewString()
	}
	reply := Reply{ConversationID: convID}

	if s.runner == nil {
		reply.Message = OfflineMessage
		reply.Offline = true
		return reply, nil
	}

	// Truncate before escaping so entities are never cut in half.
	in := model.QueryInput{
		ConversationID: convID,
		Query:          security.EscapeInput(truncateRunes(query, s.persona.MaxQueryRunes)),
		ProductContext: security.EscapeInput(strings.TrimSpace(req.ProductContext)),
	}

	out, err := s.runner.Invoke(ctx, in)
	if err != nil {
		logx.Error().Err(err).Str("conversation_id", convID).Msg("Stylist graph failed")
		reply.Message = TroubleMessage
		return reply, nil
	}

	reply.CostUSD = out.CostUSD
	reply.Message = out.Content
	if strings.TrimSpace(reply.Message) == "" {
		reply.Message = ReflectionMessage
	}
	return reply, nil
}

// Welcome is the opening line of the chat widget.
func (s *Service) Welcome(product string) string {
	product = strings.TrimSpace(product)
	if product != "" {
		return fmt.Sprintf("Welcome lovely. I see you're admiring the %s. Do you have questions about fit, ingredients, or styling?", product)
	}
	return fmt.Sprintf("Hello! I'm %s, your personal stylist. Looking for something specific or just browsing?", s.persona.Name)
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
