package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/aura-storefront/server/internal/agent/graph"
	"github.com/aura-storefront/server/internal/agent/repo"
	"github.com/aura-storefront/server/internal/agent/stylist"
	"github.com/aura-storefront/server/internal/api"
	"github.com/aura-storefront/server/internal/shop/account"
	"github.com/aura-storefront/server/internal/shop/blog"
	"github.com/aura-storefront/server/internal/shop/cart"
	"github.com/aura-storefront/server/internal/shop/catalog"
	"github.com/aura-storefront/server/internal/shop/checkout"
	"github.com/aura-storefront/server/internal/shop/order"
	logx "github.com/aura-storefront/server/pkg/logger"
)

// app is the wired storefront.
type app struct {
	cfg      AppConfig
	rdb      *redis.Client
	services api.Services
}

func newApp(ctx context.Context, cfg AppConfig) (*app, error) {
	rdb, err := cfg.Redis.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialise Redis client: %w", err)
	}
	logx.Info().Msg("Connected to Redis successfully")

	cat := newCatalog(cfg, rdb)

	st, err := newStylist(ctx, cfg, rdb, cat)
	if err != nil {
		_ = rdb.Close()
		return nil, err
	}

	carts := cart.NewService(cart.NewRedisStore(rdb, cfg.CartTTL), cat)
	orders := order.NewService(order.NewRedisStore(rdb))

	return &app{
		cfg: cfg,
		rdb: rdb,
		services: api.Services{
			Catalog:  cat,
			Blog:     blog.NewService(),
			Cart:     carts,
			Checkout: checkout.NewService(carts, cat, orders, cfg.CheckoutWorkers),
			Orders:   orders,
			Account:  account.NewService(account.NewRedisStore(rdb, cfg.SessionTTL)),
			Stylist:  st,
		},
	}, nil
}

func (a *app) Close() error {
	return a.rdb.Close()
}

// newCatalog serves the bundled catalog unless WooCommerce is configured,
// in which case live pages are cached in Redis.
func newCatalog(cfg AppConfig, rdb *redis.Client) *catalog.Service {
	if !cfg.Catalog.LiveEnabled() {
		logx.Info().Msg("WooCommerce not configured, serving bundled catalog")
		return catalog.NewService(nil, nil)
	}

	client := catalog.NewWooClient(cfg.Catalog, &http.Client{Timeout: cfg.Catalog.Timeout})
	live := catalog.NewCachedSource(catalog.NewWooSource(client, cfg.Catalog), rdb, cfg.Catalog.CacheTTL)
	logx.Info().Str("base_url", cfg.Catalog.BaseURL).Msg("Serving live WooCommerce catalog")
	return catalog.NewService(live, nil)
}

// newStylist builds the Gemini graph, or an offline stylist without a key.
func newStylist(ctx context.Context, cfg AppConfig, rdb *redis.Client, cat *catalog.Service) (*stylist.Service, error) {
	if cfg.APIKey == "" {
		logx.Warn().Msg("GEMINI_API_KEY not set, stylist runs offline")
		return stylist.NewService(nil, cfg.Persona), nil
	}

	ttl, err := cfg.ConversationTTL()
	if err != nil {
		return nil, err
	}

	runner, err := graph.BuildResponseGraph(ctx, graph.Config{
		APIKey:           cfg.APIKey,
		BaseURL:          cfg.BaseURL,
		ResponseModel:    cfg.Response,
		Persona:          cfg.Persona,
		Conversation:     cfg.Conversation,
		ConversationRepo: repo.NewRedisConversationRepository(rdb, ttl, 2*cfg.Conversation.MaxTurns),
		Catalog:          cat,
	})
	if err != nil {
		return nil, fmt.Errorf("build stylist graph: %w", err)
	}
	return stylist.NewService(runner, cfg.Persona), nil
}
