package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/invisible-wallet/internal/config"
	"github.com/MKhiriev/invisible-wallet/internal/logger"
	"github.com/MKhiriev/invisible-wallet/internal/store"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "walletctl",
	Short:         "Administrative tool of the invisible wallet service",
	Long:          `walletctl runs schema migrations, mints platform tokens and inspects or removes custodial wallets directly in the wallet database.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "JSON config file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "walletctl: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the configuration from .env, the environment and the
// --config file.
func loadConfig() (*config.StructuredConfig, *logger.Logger, error) {
	cfg, err := config.GetCLIConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("error getting configs: %w", err)
	}
	return cfg, logger.NewLogger("walletctl", cfg.App.LogLevel), nil
}

// openStore connects to the configured database. The caller closes the
// returned DB.
func openStore(ctx context.Context) (*store.DB, *logger.Logger, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, nil, fmt.Errorf("error connecting to database: %w", err)
	}
	return db, log, nil
}
