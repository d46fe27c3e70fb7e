package config

import "time"

// Default values applied for every field left empty by other sources.
const (
	DefaultTestnetURL   = "https://horizon-testnet.stellar.org"
	DefaultMainnetURL   = "https://horizon.stellar.org"
	DefaultFriendbotURL = "https://friendbot.stellar.org"
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "invisible-wallet",
			TokenDuration: 30 * 24 * time.Hour,
			LogLevel:      "info",
			Version:       "dev",
		},
		Crypto: Crypto{
			Iterations: 100_000,
			SaltLength: 16,
		},
		Ledger: Ledger{
			TestnetURL:     DefaultTestnetURL,
			MainnetURL:     DefaultMainnetURL,
			FriendbotURL:   DefaultFriendbotURL,
			RequestTimeout: 10 * time.Second,
		},
		Cache: Cache{
			MaxFailedAttempts: 5,
			LockoutWindow:     15 * time.Minute,
		},
		Conversion: Conversion{
			QuoteTTL:      30 * time.Second,
			NominalFee:    100,
			EstimatedTime: 5 * time.Second,
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Workers: Workers{
			TaskTimeout:  30 * time.Second,
			AuditTimeout: 5 * time.Second,
		},
	}
}
