package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a missing token sign key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidCryptoConfigs indicates unsafe key derivation parameters.
	ErrInvalidCryptoConfigs = errors.New("invalid crypto configuration")
	// ErrInvalidLedgerConfigs indicates missing Horizon endpoints or timeout.
	ErrInvalidLedgerConfigs = errors.New("invalid ledger configuration")
	// ErrInvalidCacheConfigs indicates a Redis address without usable
	// limiter thresholds.
	ErrInvalidCacheConfigs = errors.New("invalid cache configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, a zero task timeout).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
