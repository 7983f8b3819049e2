// Command aura runs the Aura storefront backend.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/aura-storefront/server/internal/core"
	logx "github.com/aura-storefront/server/pkg/logger"
)

var (
	envFile string
	cfg     AppConfig
)

var rootCmd = &cobra.Command{
	Use:           "aura",
	Short:         "Aura storefront backend",
	Long:          "Aura serves the storefront API (catalog, cart, checkout, accounts) and the AI stylist.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logx.Init()
		loaded, err := loadConfig(envFile)
		if err != nil {
			return err
		}
		cfg = loaded
		logx.Init(logx.LoggerOpts{Environment: cfg.Env(), Level: cfg.LogLevel})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.AddCommand(serveCmd, askCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logx.Init(logx.LoggerOpts{Environment: core.Development})
		logx.Error().Err(err).Msg("aura failed")
		os.Exit(1)
	}
}
