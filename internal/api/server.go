// Package api exposes the storefront over HTTP with gin.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/aura-storefront/server/internal/agent/stylist"
	"github.com/aura-storefront/server/internal/shop/account"
	"github.com/aura-storefront/server/internal/shop/blog"
	"github.com/aura-storefront/server/internal/shop/cart"
	"github.com/aura-storefront/server/internal/shop/catalog"
	"github.com/aura-storefront/server/internal/shop/checkout"
	"github.com/aura-storefront/server/internal/shop/order"
	logx "github.com/aura-storefront/server/pkg/logger"
	"github.com/aura-storefront/server/pkg/ratelimit"
)

// ================ Config ================
type Config struct {
	Addr            string        `envconfig:"HTTP_ADDR" default:":8080"`
	ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
	RateLimitRPS    float64       `envconfig:"RATE_LIMIT_RPS" default:"1"`
	RateLimitBurst  int           `envconfig:"RATE_LIMIT_BURST" default:"5"`
	Production      bool          `ignored:"true"`
}

// Services are the domain services the routes call into.
type Services struct {
	Catalog  *catalog.Service
	Blog     *blog.Service
	Cart     *cart.Service
	Checkout *checkout.Service
	Orders   *order.Service
	Account  *account.Service
	Stylist  *stylist.Service
}

type Server struct {
	http            *http.Server
	shutdownTimeout time.Duration
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(cfg Config, svc Services, metrics *Metrics) *gin.Engine {
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	if metrics == nil {
		metrics = NewMetrics()
	}

	r := gin.New()
	r.Use(recovery(), requestLogger(), metrics.middleware())

	h := &handler{
		svc:     svc,
		metrics: metrics,
		limiter: ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst, 10*time.Minute),
	}
	h.register(r)
	return r
}

func NewServer(cfg Config, svc Services, metrics *Metrics) *Server {
	shutdown := cfg.ShutdownTimeout
	if shutdown <= 0 {
		shutdown = 10 * time.Second
	}
	return &Server{
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           NewRouter(cfg, svc, metrics),
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      cfg.WriteTimeout,
		},
		shutdownTimeout: shutdown,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logx.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", s.http.Addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		logx.Info().Msg("Shutting down HTTP server")
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
