package main

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/aura-storefront/server/internal/agent/model"
	"github.com/aura-storefront/server/internal/api"
	"github.com/aura-storefront/server/internal/core"
	"github.com/aura-storefront/server/internal/shop/catalog"
	logx "github.com/aura-storefront/server/pkg/logger"
	pkgredis "github.com/aura-storefront/server/pkg/redis"
)

// AppConfig defines all configurable parameters of the storefront,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL"`

	// Infrastructure
	Redis pkgredis.Config
	HTTP  api.Config

	// Storefront
	Catalog         catalog.Config
	CartTTL         time.Duration `envconfig:"CART_TTL" default:"168h"`
	SessionTTL      time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	CheckoutWorkers int           `envconfig:"CHECKOUT_WORKERS" default:"8"`

	// LLM provider; the stylist runs offline without a key.
	APIKey  string `envconfig:"GEMINI_API_KEY"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Stylist configs
	Response     model.ResponseModelConfig
	Persona      model.PersonaConfig
	Conversation model.ConversationConfig
}

func (c AppConfig) Env() core.Environment {
	return core.ParseEnvironment(c.Environment)
}

// ConversationTTL parses CONVERSATION_TTL.
func (c AppConfig) ConversationTTL() (time.Duration, error) {
	ttl, err := time.ParseDuration(c.Conversation.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid CONVERSATION_TTL %q: %w", c.Conversation.TTL, err)
	}
	return ttl, nil
}

// loadConfig reads envFile when present, then the process environment.
func loadConfig(envFile string) (AppConfig, error) {
	if err := godotenv.Load(envFile); err != nil {
		logx.Warn().Err(err).Str("file", envFile).Msg("Could not load env file")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("process environment config: %w", err)
	}
	cfg.HTTP.Production = cfg.Env().IsProduction()
	return cfg, nil
}
