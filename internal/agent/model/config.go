package model

// ================ Config ================
type ConversationConfig struct {
	TTL      string `envconfig:"CONVERSATION_TTL" default:"30m"`
	MaxTurns int    `envconfig:"CONVERSATION_MAX_TURNS" default:"20"`
	Tools    struct {
		MaxCalls int `envconfig:"CONVERSATION_TOOL_MAX_CALLS" default:"4"`
	}
}

type ResponseModelConfig struct {
	Model          string  `envconfig:"STYLIST_MODEL" default:"gemini-2.5-flash"`
	MaxTokens      int     `envconfig:"STYLIST_MAX_TOKENS" default:"1024"`
	Temperature    float32 `envconfig:"STYLIST_TEMPERATURE" default:"0.7"`
	ThinkingBudget int32   `envconfig:"STYLIST_THINKING_BUDGET" default:"512"`
}

// PersonaConfig shapes the stylist's system prompt.
type PersonaConfig struct {
	Name          string `envconfig:"STYLIST_NAME" default:"Aura"`
	BrandName     string `envconfig:"STYLIST_BRAND" default:"Aura"`
	Language      string `envconfig:"STYLIST_LANGUAGE" default:"the customer's language"`
	MaxQueryRunes int    `envconfig:"STYLIST_MAX_QUERY_RUNES" default:"500"`
}
