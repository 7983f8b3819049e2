package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aura-storefront/server/internal/api"
	logx "github.com/aura-storefront/server/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func runServe(ctx context.Context) error {
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	logx.Info().
		Str("environment", cfg.Env().String()).
		Bool("stylist_online", a.services.Stylist.Online()).
		Msg("Aura storefront starting")

	return api.NewServer(cfg.HTTP, a.services, api.NewMetrics()).Run(ctx)
}
