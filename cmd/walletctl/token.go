package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/invisible-wallet/internal/config"
	"github.com/MKhiriev/invisible-wallet/internal/utils"
	"github.com/spf13/cobra"
)

var tokenDuration time.Duration

func init() {
	tokenCmd.Flags().DurationVarP(&tokenDuration, "duration", "d", 0, "token lifetime (default is the configured token duration)")
	rootCmd.AddCommand(tokenCmd)
}

// tokenCmd mints the bearer token a platform presents to the wallet API.
var tokenCmd = &cobra.Command{
	Use:   "token <platform-id>",
	Short: "Mint a platform bearer token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		token, err := mintToken(cfg.App, args[0], tokenDuration)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func mintToken(cfg config.App, platformID string, duration time.Duration) (string, error) {
	if platformID == "" {
		return "", errors.New("platform id is required")
	}
	if duration <= 0 {
		duration = cfg.TokenDuration
	}

	token, err := utils.GenerateJWTToken(cfg.TokenIssuer, platformID, duration, cfg.TokenSignKey)
	if err != nil {
		return "", err
	}
	return token.SignedString, nil
}
