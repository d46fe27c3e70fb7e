// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// invisible-wallet service. It aggregates all sub-configurations and is
// populated by merging values from a .env file, environment variables,
// command-line flags, an optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix : prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token parameters,
	// passphrase policy and the application version.
	App App `envPrefix:"APP_"`

	// Crypto holds the key derivation parameters of wallet envelopes.
	Crypto Crypto `envPrefix:"CRYPTO_"`

	// Storage holds configuration for the wallet database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Ledger holds the Horizon endpoints of both networks.
	Ledger Ledger `envPrefix:"LEDGER_"`

	// Cache holds the Redis settings of the failed-passphrase limiter.
	Cache Cache `envPrefix:"CACHE_"`

	// Conversion holds the quoting parameters of the conversion estimator.
	Conversion Conversion `envPrefix:"CONVERSION_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds timeouts of best-effort background work.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret key used to sign and verify platform
	// bearer tokens. Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued platform
	// token and checked on every authenticated request.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a platform token minted by walletctl
	// remains valid (e.g. "720h").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// MinPassphraseScore is the lowest accepted zxcvbn score (0-4) of a new
	// wallet passphrase. Zero accepts any non-empty passphrase.
	// Env: APP_MIN_PASSPHRASE_SCORE
	MinPassphraseScore int `env:"MIN_PASSPHRASE_SCORE"`

	// LogLevel is the zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Version is the semantic version string of the running application.
	// Exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Crypto holds PBKDF2 parameters. Changing Iterations makes existing
// envelopes undecryptable.
type Crypto struct {
	// Env: CRYPTO_ITERATIONS
	Iterations int `env:"ITERATIONS"`

	// SaltLength is the salt size in bytes; at least 16.
	// Env: CRYPTO_SALT_LENGTH
	SaltLength int `env:"SALT_LENGTH"`
}

// Storage groups the configuration for storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects the driver: "postgres://..." opens PostgreSQL through
	// pgx, "sqlite://path" or "file:path" opens SQLite.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Ledger holds Horizon endpoints.
type Ledger struct {
	// Env: LEDGER_TESTNET_URL
	TestnetURL string `env:"TESTNET_URL"`

	// Env: LEDGER_MAINNET_URL
	MainnetURL string `env:"MAINNET_URL"`

	// FriendbotURL is the testnet faucet.
	// Env: LEDGER_FRIENDBOT_URL
	FriendbotURL string `env:"FRIENDBOT_URL"`

	// RequestTimeout bounds every single Horizon call.
	// Env: LEDGER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Cache holds failed-passphrase limiter settings. The limiter is disabled
// when RedisAddress is empty.
type Cache struct {
	// Env: CACHE_REDIS_ADDRESS
	RedisAddress string `env:"REDIS_ADDRESS"`

	// Env: CACHE_REDIS_PASSWORD
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Env: CACHE_REDIS_DB
	RedisDB int `env:"REDIS_DB"`

	// MaxFailedAttempts is the number of wrong passphrases tolerated per
	// wallet within LockoutWindow.
	// Env: CACHE_MAX_FAILED_ATTEMPTS
	MaxFailedAttempts int `env:"MAX_FAILED_ATTEMPTS"`

	// Env: CACHE_LOCKOUT_WINDOW
	LockoutWindow time.Duration `env:"LOCKOUT_WINDOW"`
}

// Conversion holds estimator parameters.
type Conversion struct {
	// QuoteTTL is how long an estimate stays valid.
	// Env: CONVERSION_QUOTE_TTL
	QuoteTTL time.Duration `env:"QUOTE_TTL"`

	// NominalFee is the per-operation fee in stroops used when the fee
	// query fails.
	// Env: CONVERSION_NOMINAL_FEE
	NominalFee int64 `env:"NOMINAL_FEE"`

	// EstimatedTime is the expected settlement time reported on estimates.
	// Env: CONVERSION_ESTIMATED_TIME
	EstimatedTime time.Duration `env:"ESTIMATED_TIME"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds timeouts of best-effort side effects.
type Workers struct {
	// TaskTimeout bounds background tasks such as testnet funding.
	// Env: WORKERS_TASK_TIMEOUT
	TaskTimeout time.Duration `env:"TASK_TIMEOUT"`

	// AuditTimeout bounds a single audit write.
	// Env: WORKERS_AUDIT_TIMEOUT
	AuditTimeout time.Duration `env:"AUDIT_TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order (earlier
// sources win for non-zero fields):
//  1. Environment variables (a .env file in the working directory is loaded
//     first and never overrides variables that are already set)
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		withDefaults().
		build()
}

// GetCLIConfig is [GetStructuredConfig] for tools that own their command
// line. jsonPath may be empty.
func GetCLIConfig(jsonPath string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv().
		withEnv().
		with(&StructuredConfig{JSONFilePath: jsonPath}).
		withJSON().
		withDefaults().
		build()
}
